package cogcmp

// CallbackArgs are positional arguments bound to a change callback at
// registration time.
type CallbackArgs []any

// CallbackKwargs are named arguments bound to a change callback at
// registration time.
type CallbackKwargs map[string]any

// WidgetCallback is invoked when a widget's reported value changes.
//
// The session invokes it exactly once per detected change, with the args and
// kwargs bound at registration, before the re-registering call observes the
// new value. Either argument may be nil when nothing was bound.
type WidgetCallback func(args CallbackArgs, kwargs CallbackKwargs)
