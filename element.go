package cogcmp

// ComponentInstance is the wire element handed to the render sink for a
// widget call. The frontend host consumes it to mount (or update) the
// component's iframe and deliver its arguments.
type ComponentInstance struct {
	Name        string       `json:"component_name"`
	Source      string       `json:"source"`
	ScopeID     string       `json:"scope_id"`
	ID          string       `json:"id"`
	JSONArgs    string       `json:"json_args"`
	SpecialArgs []SpecialArg `json:"special_args,omitempty"`
	TabIndex    *int         `json:"tab_index,omitempty"`
}

// HTMLBlock is a raw HTML wire element, used by helpers that inject markup
// (for example the modal's style and iframe-marker blocks).
type HTMLBlock struct {
	HTML string `json:"html"`
}

// Element kinds accepted by the render sink.
const (
	// ElementKindHTML marks an HTMLBlock element.
	ElementKindHTML = "html"
)
