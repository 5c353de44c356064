package cogcmp

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// Registry holds declared components, keyed by module-qualified name, and
// resolves the source each component's frontend is served from.
//
// The registry is shared across sessions and safe for concurrent use;
// components are declared once at program startup.
type Registry struct {
	mu         sync.RWMutex
	cfg        Config
	components map[string]*Component
}

// NewRegistry creates a registry. A nil config uses DefaultConfig.
func NewRegistry(cfg *Config) *Registry {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	return &Registry{
		cfg:        c,
		components: make(map[string]*Component),
	}
}

// register adds a declared component, rejecting name collisions.
func (r *Registry) register(c *Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.components[c.name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateComponent, c.name)
	}
	r.components[c.name] = c
	return nil
}

// Lookup returns the component registered under the module-qualified name.
func (r *Registry) Lookup(name string) (*Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	return c, ok
}

// Names returns the registered component names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	return names
}

// ResolveSource returns the URL the frontend of a rendered component is
// served from: the declared URL for url-declared components; for
// path-declared components, the dev-server override when configured,
// otherwise the registry's asset mount.
func (r *Registry) ResolveSource(c *Component) string {
	if c.url != "" {
		return c.url
	}
	if r.cfg.DevServerURL != "" {
		return strings.TrimSuffix(r.cfg.DevServerURL, "/") + "/" + c.name
	}
	return r.cfg.AssetMount + "/" + c.name
}

// Handler serves the frontend assets of path-declared components. Mount it
// at the configured asset mount:
//
//	http.Handle(cfg.AssetMount+"/", http.StripPrefix(cfg.AssetMount, reg.Handler()))
//
// Requests are routed by the first path segment (the component name) and
// served from the component's declared directory.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/")
		name, file, _ := strings.Cut(rest, "/")
		c, ok := r.Lookup(name)
		if !ok || c.path == "" {
			http.NotFound(w, req)
			return
		}
		req2 := req.Clone(req.Context())
		// FileServer redirects any */index.html path back to the directory,
		// so the index (explicit or fallback) must be requested as "/".
		if file == "" || file == "index.html" {
			req2.URL.Path = "/"
		} else {
			req2.URL.Path = "/" + file
		}
		http.FileServer(http.Dir(c.path)).ServeHTTP(w, req2)
	})
}
