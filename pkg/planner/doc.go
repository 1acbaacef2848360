// Package planner holds the member abstraction of the semantic query planner.
//
// Every concrete kind of query member (dimension, measure, time dimension,
// calculated member, or kinds defined elsewhere) satisfies the Member
// interface. The rest of the planner only ever handles []Member and the batch
// helpers in this package, so member rendering and aliasing have a single
// access path and alias uniqueness can be enforced in one place.
//
// Rendering is a synchronous tree walk over immutable inputs: QueryTools,
// VisitorContext, Templates and core.MemberSymbol values are built before
// rendering starts and are never mutated by this package.
package planner
