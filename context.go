package cogcmp

import "github.com/cogstack/cogcmp/lib/tabular"

// RenderSink is the host's enqueue boundary. Each widget call hands exactly
// one completed wire element to it; what happens next (diffing, transport,
// rendering) belongs to the host runtime.
type RenderSink interface {
	Enqueue(kind string, element any) error
}

// TableCodec encodes tables for the wire and decodes tabular payloads the
// frontend reports back. lib/tabular provides the default implementation.
type TableCodec interface {
	Encode(t *tabular.Table) ([]byte, error)
	Decode(buf []byte) (*tabular.Table, error)
}

// Context bundles the collaborators for one script run: the session state
// store, the component registry, the render sink, the table codec, and the
// enclosing scope id. It replaces ambient global state — every widget call
// receives its Context explicitly.
//
// A Context is used by a single script run; it is not safe for concurrent
// use and does not need to be: one invocation runs to completion
// synchronously within the enclosing script evaluation.
type Context struct {
	session  *Session
	registry *Registry
	sink     RenderSink
	codec    TableCodec
	scopeID  string
}

// ContextOption customizes a Context at construction.
type ContextOption func(*Context)

// WithTableCodec replaces the default table codec. Passing nil disables
// tabular support: table arguments then fail with a missing-dependency
// error.
func WithTableCodec(c TableCodec) ContextOption {
	return func(ctx *Context) {
		ctx.codec = c
	}
}

// NewContext creates the context for one script run. The default table
// codec is tabular.Codec.
func NewContext(session *Session, registry *Registry, sink RenderSink, opts ...ContextOption) *Context {
	ctx := &Context{
		session:  session,
		registry: registry,
		sink:     sink,
		codec:    tabular.Codec{},
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// WithScope derives a context for an enclosing input-grouping (a form or a
// modal region). The scope id participates in widget identity so widgets in
// different scopes never collide.
func (c *Context) WithScope(id string) *Context {
	scoped := *c
	scoped.scopeID = id
	return &scoped
}

// ScopeID returns the current scope id, empty outside any scope.
func (c *Context) ScopeID() string { return c.scopeID }

// Session returns the session state store.
func (c *Context) Session() *Session { return c.session }

// Registry returns the component registry.
func (c *Context) Registry() *Registry { return c.registry }

// Enqueue hands an element to the render sink.
func (c *Context) Enqueue(kind string, element any) error {
	return c.sink.Enqueue(kind, element)
}
