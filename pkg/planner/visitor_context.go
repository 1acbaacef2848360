package planner

// DefaultMaxDepth bounds how many symbol references one render may follow.
const DefaultMaxDepth = 32

// VisitorContext is the render-time state threaded through every ToSQL call.
// It is immutable: Nested returns a new context one level deeper.
type VisitorContext struct {
	depth    int
	maxDepth int
	inFilter bool
	security map[string]string
}

// VisitorOption configures a VisitorContext.
type VisitorOption func(*VisitorContext)

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) VisitorOption {
	return func(c *VisitorContext) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithSecurityContext sets the values {SECURITY_CONTEXT.key} expressions resolve to.
// The map is copied.
func WithSecurityContext(values map[string]string) VisitorOption {
	return func(c *VisitorContext) {
		c.security = make(map[string]string, len(values))
		for k, v := range values {
			c.security[k] = v
		}
	}
}

// NewVisitorContext creates a root render context.
func NewVisitorContext(opts ...VisitorOption) *VisitorContext {
	c := &VisitorContext{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InFilter reports whether the render happens inside a WHERE or HAVING clause.
func (c *VisitorContext) InFilter() bool {
	return c.inFilter
}

// ForFilter returns a copy of the context marked as rendering a filter.
func (c *VisitorContext) ForFilter() *VisitorContext {
	next := *c
	next.inFilter = true
	return &next
}

// Depth returns the number of symbol references followed to reach this context.
func (c *VisitorContext) Depth() int {
	return c.depth
}

// MaxDepth returns the nesting limit.
func (c *VisitorContext) MaxDepth() int {
	return c.maxDepth
}

// Exceeded reports whether the context is deeper than its limit.
func (c *VisitorContext) Exceeded() bool {
	return c.depth > c.maxDepth
}

// Nested returns a copy of the context one reference deeper.
// The security map is shared; neither copy ever writes to it.
func (c *VisitorContext) Nested() *VisitorContext {
	next := *c
	next.depth++
	return &next
}

// SecurityValue returns a security context value.
func (c *VisitorContext) SecurityValue(key string) (string, bool) {
	v, ok := c.security[key]
	return v, ok
}

// orDefault lets callers pass a nil context.
func (c *VisitorContext) orDefault() *VisitorContext {
	if c == nil {
		return NewVisitorContext()
	}
	return c
}
