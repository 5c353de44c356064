// Package conceptsearch provides the concept-search widget: the embedded
// frontend searches a hierarchical terminology and reports the search state
// and selected concept back to the host script.
package conceptsearch

import (
	"encoding/json"
	"fmt"

	"github.com/cogstack/cogcmp"
)

// Concept is one node of the terminology tree.
type Concept struct {
	Code       string         `json:"code"`
	Label      string         `json:"label"`
	Children   []Concept      `json:"children,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Result is the search state the frontend reports: the typed text, the
// derived search terms, the matching concepts, and the selected concept if
// any.
type Result struct {
	SearchText  string    `json:"searchText"`
	SearchTerms []string  `json:"searchTerms"`
	Results     []Concept `json:"results"`
	Selected    *Concept  `json:"selected"`
}

// Widget is a declared concept-search component bound to a registry.
type Widget struct {
	c *cogcmp.Component
}

// New declares the concept-search component. assetPath is the directory
// holding the built frontend.
func New(reg *cogcmp.Registry, assetPath string) (*Widget, error) {
	c, err := cogcmp.Declare(reg, "cogcmp.widgets", "conceptsearch", cogcmp.WithPath(assetPath))
	if err != nil {
		return nil, err
	}
	return &Widget{c: c}, nil
}

type options struct {
	key            string
	onChange       cogcmp.WidgetCallback
	onChangeArgs   cogcmp.CallbackArgs
	onChangeKwargs cogcmp.CallbackKwargs
}

// Option customizes one Render call.
type Option func(*options)

// WithKey gives the widget a stable identity across argument changes.
func WithKey(key string) Option {
	return func(o *options) { o.key = key }
}

// WithOnChange registers a callback fired once per search-state change, with
// the given bound arguments, before the script observes the new value.
func WithOnChange(cb cogcmp.WidgetCallback, args cogcmp.CallbackArgs, kwargs cogcmp.CallbackKwargs) Option {
	return func(o *options) {
		o.onChange = cb
		o.onChangeArgs = args
		o.onChangeKwargs = kwargs
	}
}

// Render invokes the widget with the concept tree as the search database.
// It returns nil until the frontend reports a search state.
func (w *Widget) Render(ctx *cogcmp.Context, concepts []Concept, opts ...Option) (*Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	args := cogcmp.NewArgs().Set("concepts", cogcmp.JSON(concepts))
	value, err := w.c.Invoke(ctx, args, cogcmp.CallSpec{
		Default:        cogcmp.JSON(nil),
		Key:            o.key,
		OnChange:       o.onChange,
		OnChangeArgs:   o.onChangeArgs,
		OnChangeKwargs: o.onChangeKwargs,
	})
	if err != nil {
		return nil, err
	}
	return decodeResult(value)
}

// decodeResult converts the frontend's reported object into a Result.
func decodeResult(v any) (*Result, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("conceptsearch: unexpected value shape %T", v)
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("conceptsearch: decode result: %w", err)
	}
	return &r, nil
}
