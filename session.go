package cogcmp

import (
	"reflect"

	"github.com/google/uuid"
)

// TablePayload tags a frontend-reported value as tabular. The widget state
// bridge decodes it through the table codec before handing it to the caller;
// every other reported value passes through as already decoded.
type TablePayload struct {
	Data []byte
}

// Deserializer converts a raw frontend-reported value into the value the
// caller receives.
type Deserializer func(raw any) (any, error)

// Serializer converts a stored value back to its wire form, used when the
// host echoes widget state to the frontend.
type Serializer func(v any) any

// WidgetConfig carries the per-registration collaborators for a widget
// entry: pass-through (de)serializers and an optional change callback with
// bound arguments.
type WidgetConfig struct {
	Deserialize    Deserializer
	Serialize      Serializer
	OnChange       WidgetCallback
	OnChangeArgs   CallbackArgs
	OnChangeKwargs CallbackKwargs
}

// widgetEntry holds the last value the frontend reported for one identity.
type widgetEntry struct {
	raw       any
	has       bool
	changed   bool
	serialize Serializer
}

// Session is the per-session state store: a serially accessed key→value
// table holding widget entries and free-form session state. Concurrent
// sessions are isolated by construction — each gets its own Session, with an
// externally visible id. A Session lives for one user session; widget
// entries live across script re-runs within it.
type Session struct {
	id      string
	state   map[string]any
	widgets map[string]*widgetEntry

	rerunRequests int
	inRun         bool
	seen          map[string]bool
}

// NewSession creates an empty session with a fresh id.
func NewSession() *Session {
	return &Session{
		id:      uuid.NewString(),
		state:   make(map[string]any),
		widgets: make(map[string]*widgetEntry),
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Get returns a free-form session state value.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.state[key]
	return v, ok
}

// GetBool returns a boolean session state value, false when absent or not a
// bool.
func (s *Session) GetBool(key string) bool {
	v, _ := s.state[key].(bool)
	return v
}

// Set stores a free-form session state value.
func (s *Session) Set(key string, v any) {
	s.state[key] = v
}

// RegisterWidget registers a widget identity for the current run and returns
// the last value the frontend reported for it.
//
// If the reported value changed since the previous run, the configured
// change callback fires here — exactly once, with its bound args and kwargs —
// before the value is returned, so downstream script logic never observes a
// new value whose callback has not run. A first-time identity is not an
// error: it reports no value (has == false) and the caller falls back to its
// default.
func (s *Session) RegisterWidget(id string, cfg WidgetConfig) (value any, has bool, err error) {
	e, ok := s.widgets[id]
	if !ok {
		e = &widgetEntry{}
		s.widgets[id] = e
	}
	e.serialize = cfg.Serialize
	if s.inRun {
		s.seen[id] = true
	}

	if e.changed {
		e.changed = false
		if cfg.OnChange != nil {
			cfg.OnChange(cfg.OnChangeArgs, cfg.OnChangeKwargs)
		}
	}

	if !e.has {
		return nil, false, nil
	}
	if cfg.Deserialize == nil {
		return e.raw, true, nil
	}
	v, err := cfg.Deserialize(e.raw)
	if err != nil {
		return nil, true, err
	}
	return v, true, nil
}

// SetWidgetValue records a value reported by the frontend for an identity.
// A change is detected when the identity had no value yet or the new raw
// value differs from the stored one; the change is consumed by the next
// RegisterWidget call for that identity.
func (s *Session) SetWidgetValue(id string, raw any) {
	e, ok := s.widgets[id]
	if !ok {
		e = &widgetEntry{}
		s.widgets[id] = e
	}
	if !e.has || !reflect.DeepEqual(e.raw, raw) {
		e.changed = true
	}
	e.raw = raw
	e.has = true
}

// WireValue returns the stored value for an identity in its wire form,
// passed through the serializer registered for it.
func (s *Session) WireValue(id string) (any, bool) {
	e, ok := s.widgets[id]
	if !ok || !e.has {
		return nil, false
	}
	if e.serialize == nil {
		return e.raw, true
	}
	return e.serialize(e.raw), true
}

// RequestRerun signals the host that the script should re-run. The host
// consumes the counter between runs.
func (s *Session) RequestRerun() {
	s.rerunRequests++
}

// RerunRequests returns the number of rerun signals raised since the counter
// was last consumed.
func (s *Session) RerunRequests() int {
	return s.rerunRequests
}

// ConsumeRerunRequests returns the pending rerun signals and resets the
// counter.
func (s *Session) ConsumeRerunRequests() int {
	n := s.rerunRequests
	s.rerunRequests = 0
	return n
}

// BeginRun starts widget bookkeeping for one script run.
func (s *Session) BeginRun() {
	s.inRun = true
	s.seen = make(map[string]bool)
}

// EndRun finishes a run and destroys entries whose identity was not produced
// during it, matching the widget lifecycle: an identity that disappears from
// the script loses its state.
func (s *Session) EndRun() {
	if !s.inRun {
		return
	}
	for id := range s.widgets {
		if !s.seen[id] {
			delete(s.widgets, id)
		}
	}
	s.inRun = false
	s.seen = nil
}
