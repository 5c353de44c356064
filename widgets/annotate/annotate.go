// Package annotate provides the entity-annotation widget: it renders a text
// with highlighted entity spans in the embedded frontend and returns the
// entity list as the user edits it.
package annotate

import (
	"encoding/json"
	"fmt"

	"github.com/cogstack/cogcmp"
)

// Entity is one annotated span of the text. Start and End are rune offsets,
// Label is the entity class shown on the highlight.
type Entity struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
	Text  string `json:"text,omitempty"`
}

// LabelDetail customizes how one entity label renders: an optional badge,
// a hover tooltip, and CSS style overrides.
type LabelDetail struct {
	Badge   string            `json:"badge,omitempty"`
	Tooltip string            `json:"tooltip,omitempty"`
	Style   map[string]string `json:"style,omitempty"`
}

// Widget is a declared annotate component bound to a registry.
type Widget struct {
	c *cogcmp.Component
}

// New declares the annotate component. assetPath is the directory holding
// the built frontend.
func New(reg *cogcmp.Registry, assetPath string) (*Widget, error) {
	c, err := cogcmp.Declare(reg, "cogcmp.widgets", "annotate", cogcmp.WithPath(assetPath))
	if err != nil {
		return nil, err
	}
	return &Widget{c: c}, nil
}

type options struct {
	key            string
	labelDetails   map[string]LabelDetail
	badgeField     string
	tooltipField   string
	entityStyles   map[string]string
	onChange       cogcmp.WidgetCallback
	onChangeArgs   cogcmp.CallbackArgs
	onChangeKwargs cogcmp.CallbackKwargs
}

// Option customizes one Render call.
type Option func(*options)

// WithKey gives the widget a stable identity: changing arguments no longer
// remounts the frontend (and loses its local state).
func WithKey(key string) Option {
	return func(o *options) { o.key = key }
}

// WithLabelDetails customizes rendering per entity label.
func WithLabelDetails(details map[string]LabelDetail) Option {
	return func(o *options) { o.labelDetails = details }
}

// WithBadgeField names an entity field whose value renders as the badge.
func WithBadgeField(field string) Option {
	return func(o *options) { o.badgeField = field }
}

// WithTooltipField names an entity field whose value renders as the tooltip.
func WithTooltipField(field string) Option {
	return func(o *options) { o.tooltipField = field }
}

// WithEntityStyles sets CSS style overrides applied to every entity highlight.
func WithEntityStyles(styles map[string]string) Option {
	return func(o *options) { o.entityStyles = styles }
}

// WithOnChange registers a callback fired once per annotation change, with
// the given bound arguments, before the script observes the new value.
func WithOnChange(cb cogcmp.WidgetCallback, args cogcmp.CallbackArgs, kwargs cogcmp.CallbackKwargs) Option {
	return func(o *options) {
		o.onChange = cb
		o.onChangeArgs = args
		o.onChangeKwargs = kwargs
	}
}

// Render invokes the widget. The default value is the input entity list, so
// the first render returns it unchanged; afterwards the frontend's reported
// list of entity dicts is returned with its shape untouched.
func (w *Widget) Render(ctx *cogcmp.Context, label, text string, entities []Entity, opts ...Option) ([]map[string]any, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ents := entityMaps(entities)
	args := cogcmp.NewArgs().
		Set("label", cogcmp.JSON(label)).
		Set("text", cogcmp.JSON(text)).
		Set("ents", cogcmp.JSON(ents))
	if o.labelDetails != nil {
		args.Set("label_details", cogcmp.JSON(o.labelDetails))
	}
	if o.badgeField != "" {
		args.Set("badge_field", cogcmp.JSON(o.badgeField))
	}
	if o.tooltipField != "" {
		args.Set("tooltip_field", cogcmp.JSON(o.tooltipField))
	}
	if o.entityStyles != nil {
		args.Set("ents_styles", cogcmp.JSON(o.entityStyles))
	}

	value, err := w.c.Invoke(ctx, args, cogcmp.CallSpec{
		Default:        cogcmp.JSON(ents),
		Key:            o.key,
		OnChange:       o.onChange,
		OnChangeArgs:   o.onChangeArgs,
		OnChangeKwargs: o.onChangeKwargs,
	})
	if err != nil {
		return nil, err
	}
	return coerceEntityList(value)
}

// entityMaps converts typed entities to the list-of-dicts shape the frontend
// exchanges, so defaults and reported values share one representation.
func entityMaps(entities []Entity) []map[string]any {
	out := make([]map[string]any, len(entities))
	for i, e := range entities {
		m := map[string]any{
			"start": e.Start,
			"end":   e.End,
			"label": e.Label,
		}
		if e.Text != "" {
			m["text"] = e.Text
		}
		out[i] = m
	}
	return out
}

// coerceEntityList accepts the shapes a reported value can arrive in and
// returns the list-of-dicts unchanged in content.
func coerceEntityList(v any) ([]map[string]any, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []map[string]any:
		return list, nil
	case []any:
		out := make([]map[string]any, len(list))
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("annotate: entity %d is %T, want an object", i, item)
			}
			out[i] = m
		}
		return out, nil
	default:
		// Tolerate json.RawMessage-ish reports from alternative hosts.
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("annotate: unexpected value shape %T", v)
		}
		var out []map[string]any
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("annotate: unexpected value shape %T", v)
		}
		return out, nil
	}
}
