package cogcmp

import "fmt"

// Framework-reserved argument names, merged into every call.
const (
	argDefault = "default"
	argKey     = "key"
)

// CallSpec carries the framework-level parameters of a widget call,
// alongside the widget's own arguments.
type CallSpec struct {
	// Default is returned verbatim while the frontend has not reported a
	// value yet. It participates in classification like any other argument.
	Default Value

	// Key, when non-empty, switches identity to stable mode: the widget
	// keeps its identity (and frontend state) when arguments change.
	Key string

	// TabIndex controls the tab order of the component's iframe: nil for
	// browser default, -1 to remove it from the natural tab order, zero or
	// positive to include it.
	TabIndex *int

	// OnChange fires once per detected value change, with the bound
	// arguments below, before the new value is observed by the script.
	OnChange       WidgetCallback
	OnChangeArgs   CallbackArgs
	OnChangeKwargs CallbackKwargs
}

// Invoke runs one widget call: classify arguments, resolve identity,
// register with the session state bridge, enqueue the wire element exactly
// once, and resolve the returned value.
//
// The element carries the resolved source URL for the frontend to load,
// while identity digests the declared locator, so a dev-server override
// never changes widget identity.
func (c *Component) Invoke(ctx *Context, args *Args, spec CallSpec) (any, error) {
	if args == nil {
		args = NewArgs()
	}

	// Fail fast on malformed calls before any encoding work begins.
	for _, name := range args.Names() {
		if name == "" {
			return nil, usageErrorf("component %q: argument needs a label", c.name)
		}
		if name == argDefault || name == argKey {
			return nil, usageErrorf("component %q: argument name %q is reserved", c.name, name)
		}
	}
	if spec.TabIndex != nil && *spec.TabIndex < -1 {
		return nil, usageErrorf("tab index must be nil, -1, or a non-negative integer, got %d", *spec.TabIndex)
	}

	// The reserved params travel to the frontend with the user arguments.
	all := args.clone()
	all.Set(argDefault, spec.Default)
	if spec.Key != "" {
		all.Set(argKey, JSON(spec.Key))
	} else {
		all.Set(argKey, JSON(nil))
	}

	cls, err := classify(all, ctx.codec)
	if err != nil {
		return nil, err
	}
	jsonArgs, err := serializeJSONArgs(cls)
	if err != nil {
		return nil, err
	}

	scope := ctx.ScopeID()
	element := &ComponentInstance{
		Name:     c.name,
		Source:   ctx.registry.ResolveSource(c),
		ScopeID:  scope,
		TabIndex: spec.TabIndex,
	}

	// Without a key, identity fingerprints every argument: any change
	// remounts the widget. With a key, identity covers only name, locator,
	// scope, and key, and the arguments are attached to the element only
	// after identity and prior value are resolved.
	var id string
	if spec.Key == "" {
		element.JSONArgs = jsonArgs
		element.SpecialArgs = cls.special
		id = fullFingerprintID(c.name, c.locator(), scope, jsonArgs, cls.special)
	} else {
		id = stableID(c.name, c.locator(), scope, spec.Key)
	}
	element.ID = id

	value, has, err := ctx.session.RegisterWidget(id, WidgetConfig{
		Deserialize:    c.deserializer(ctx),
		Serialize:      func(v any) any { return v },
		OnChange:       spec.OnChange,
		OnChangeArgs:   spec.OnChangeArgs,
		OnChangeKwargs: spec.OnChangeKwargs,
	})
	if err != nil {
		return nil, err
	}

	if spec.Key != "" {
		element.JSONArgs = jsonArgs
		element.SpecialArgs = cls.special
	}

	if err := ctx.Enqueue(ElementKindComponent, element); err != nil {
		return nil, err
	}

	if !has {
		return spec.Default.raw(), nil
	}
	return value, nil
}

// deserializer builds the pass-through deserializer for frontend-reported
// values: JSON-decoded values and byte payloads pass through unchanged,
// tabular-tagged payloads decode through the context's table codec.
func (c *Component) deserializer(ctx *Context) Deserializer {
	return func(raw any) (any, error) {
		var data []byte
		switch tp := raw.(type) {
		case *TablePayload:
			data = tp.Data
		case TablePayload:
			data = tp.Data
		default:
			return raw, nil
		}
		if ctx.codec == nil {
			return nil, fmt.Errorf(
				"%w: component %q reported a tabular value but the context has no table codec",
				ErrMissingDependency, c.name)
		}
		t, err := ctx.codec.Decode(data)
		if err != nil {
			return nil, wrapTabularError(err)
		}
		return t, nil
	}
}
