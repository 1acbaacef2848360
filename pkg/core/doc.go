// Package core defines the shared language of the leapcube planner.
//
// This package contains:
//   - Semantic leaf entities (MemberSymbol, Expression, SymbolKind)
//   - Dialect configuration data (DialectConfig, IdentifierConfig)
//   - Configuration types shared by the CLI and adapters (TargetConfig)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
