package cogcmp

// Test helpers for exercising widget calls without a real host runtime.
// The recorder stands in for the render sink; frontend reports are simulated
// through Session.SetWidgetValue against recorded element ids.

// RecordedElement is one element handed to a SinkRecorder.
type RecordedElement struct {
	Kind    string
	Element any
}

// SinkRecorder is a RenderSink that records every enqueued element in order.
type SinkRecorder struct {
	Elements []RecordedElement
}

// Enqueue records the element and always succeeds.
func (r *SinkRecorder) Enqueue(kind string, element any) error {
	r.Elements = append(r.Elements, RecordedElement{Kind: kind, Element: element})
	return nil
}

// Components returns the recorded component instances, in enqueue order.
func (r *SinkRecorder) Components() []*ComponentInstance {
	var out []*ComponentInstance
	for _, e := range r.Elements {
		if ci, ok := e.Element.(*ComponentInstance); ok {
			out = append(out, ci)
		}
	}
	return out
}

// LastComponent returns the most recently enqueued component instance, or
// nil when none was enqueued.
func (r *SinkRecorder) LastComponent() *ComponentInstance {
	cs := r.Components()
	if len(cs) == 0 {
		return nil
	}
	return cs[len(cs)-1]
}

// Reset discards recorded elements, typically between simulated re-runs.
func (r *SinkRecorder) Reset() {
	r.Elements = nil
}

// NewTestContext wires a fresh session, an empty registry with default
// config, and a SinkRecorder into a Context.
func NewTestContext() (*Context, *SinkRecorder) {
	rec := &SinkRecorder{}
	ctx := NewContext(NewSession(), NewRegistry(nil), rec)
	return ctx, rec
}
