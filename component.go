package cogcmp

import "path/filepath"

// Component describes one declared component: a module-qualified name and
// the source its frontend is served from — a local asset directory or a
// remote URL, exactly one of the two. Descriptors are immutable after
// Declare.
type Component struct {
	name string
	path string
	url  string
}

// DeclareOption configures a component declaration.
type DeclareOption func(*Component)

// WithPath declares the component's frontend as a local asset directory.
func WithPath(path string) DeclareOption {
	return func(c *Component) {
		c.path = filepath.Clean(path)
	}
}

// WithURL declares the component's frontend as served from a remote URL.
func WithURL(url string) DeclareOption {
	return func(c *Component) {
		c.url = url
	}
}

// Declare creates a component descriptor and registers it.
//
// The module name is passed explicitly — the component's qualified name is
// "module.name" — rather than discovered from the call stack, so identity
// never depends on where in the program the declaration happens to live.
// Exactly one of WithPath or WithURL must be given. Declare is called once
// per component at program startup.
func Declare(reg *Registry, module, name string, opts ...DeclareOption) (*Component, error) {
	if module == "" || name == "" {
		return nil, usageErrorf("component module and name must be non-empty")
	}
	c := &Component{name: module + "." + name}
	for _, opt := range opts {
		opt(c)
	}
	if (c.path == "") == (c.url == "") {
		return nil, usageErrorf("component %q: exactly one of WithPath or WithURL must be set", c.name)
	}
	if err := reg.register(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Name returns the module-qualified component name.
func (c *Component) Name() string { return c.name }

// Path returns the local asset directory, empty for url-declared components.
func (c *Component) Path() string { return c.path }

// URL returns the remote URL, empty for path-declared components.
func (c *Component) URL() string { return c.url }

// locator returns the declared source locator (path or URL). The locator is
// part of every identity digest, so two same-named components declared from
// different sources never collide.
func (c *Component) locator() string {
	if c.url != "" {
		return c.url
	}
	return c.path
}
