// Package modal provides a modal dialog helper: an overlay region whose
// open/closed state persists in session state, with a scoped container for
// the dialog's content.
//
// The emitted stylesheet includes hooks for a close button in the dialog's
// header row, but the control itself is the host's to render: place a button
// in the second header column and wire it to Close.
package modal

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/cogstack/cogcmp"
)

// Modal is a modal dialog identified by a session-unique key. The open flag
// lives in session state under "{key}-opened" and survives script re-runs.
type Modal struct {
	Title string
	Key   string

	padding  string
	maxWidth string
}

// Option customizes a modal's presentation.
type Option func(*Modal)

// WithPadding sets the content padding as a CSS length.
func WithPadding(css string) Option {
	return func(m *Modal) { m.padding = css }
}

// WithPaddingPx sets the content padding in pixels.
func WithPaddingPx(px int) Option {
	return func(m *Modal) { m.padding = fmt.Sprintf("%dpx", px) }
}

// WithMaxWidth sets the maximum dialog width as a CSS length.
func WithMaxWidth(css string) Option {
	return func(m *Modal) { m.maxWidth = css }
}

// WithMaxWidthPx sets the maximum dialog width in pixels.
func WithMaxWidthPx(px int) Option {
	return func(m *Modal) { m.maxWidth = fmt.Sprintf("%dpx", px) }
}

// New creates a modal. The key must be unique within the session.
func New(title, key string, opts ...Option) *Modal {
	m := &Modal{
		Title:    title,
		Key:      key,
		padding:  "20px",
		maxWidth: "744px",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Modal) flagKey() string {
	return m.Key + "-opened"
}

// IsOpen reports whether the modal is open in this session.
func (m *Modal) IsOpen(ctx *cogcmp.Context) bool {
	return ctx.Session().GetBool(m.flagKey())
}

// Open marks the modal open and raises one rerun signal so the current run
// is restarted with the modal visible.
func (m *Modal) Open(ctx *cogcmp.Context) {
	ctx.Session().Set(m.flagKey(), true)
	ctx.Session().RequestRerun()
}

// Close marks the modal closed and raises one rerun signal.
func (m *Modal) Close(ctx *cogcmp.Context) {
	ctx.Session().Set(m.flagKey(), false)
	ctx.Session().RequestRerun()
}

// CloseSilently marks the modal closed without requesting a rerun, for
// callers that are about to raise their own.
func (m *Modal) CloseSilently(ctx *cogcmp.Context) {
	ctx.Session().Set(m.flagKey(), false)
}

// Container renders the modal chrome and runs body inside the modal's
// scope. The scope id participates in widget identity, so widgets inside
// the dialog never collide with same-looking widgets outside it.
//
// The region is released on every path: the closing marker is emitted even
// when body returns early with an error.
func (m *Modal) Container(ctx *cogcmp.Context, body func(*cogcmp.Context) error) error {
	style, err := renderHTML(m.styleBlock())
	if err != nil {
		return err
	}
	if err := ctx.Enqueue(cogcmp.ElementKindHTML, &cogcmp.HTMLBlock{HTML: style}); err != nil {
		return err
	}

	marker, err := renderHTML(m.frameMarker())
	if err != nil {
		return err
	}
	if err := ctx.Enqueue(cogcmp.ElementKindHTML, &cogcmp.HTMLBlock{HTML: marker}); err != nil {
		return err
	}

	defer func() {
		end := fmt.Sprintf(`<div data-modal-end=%q></div>`, m.Key)
		_ = ctx.Enqueue(cogcmp.ElementKindHTML, &cogcmp.HTMLBlock{HTML: end})
	}()

	return body(ctx.WithScope(m.Key))
}

// styleBlock emits the overlay and dialog CSS, parameterized by the modal's
// padding and max width.
func (m *Modal) styleBlock() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString("<style>\n")
		sb.WriteString(".cog-modal {\n")
		sb.WriteString("  position: fixed;\n  width: 100vw !important;\n  left: 0;\n  z-index: 999999;\n}\n")
		sb.WriteString(".cog-modal::before {\n")
		sb.WriteString("  position: fixed;\n  content: ' ';\n  left: 0;\n  right: 0;\n  top: 0;\n  bottom: 0;\n")
		sb.WriteString("  z-index: 0;\n  background-color: rgba(50, 50, 50, 0.8);\n}\n")
		fmt.Fprintf(&sb, ".cog-modal > div:first-child {\n  margin: auto;\n  max-width: %s;\n}\n", m.maxWidth)
		fmt.Fprintf(&sb, ".cog-modal > div:first-child > div:first-child {\n")
		fmt.Fprintf(&sb, "  width: unset !important;\n  background-color: #FFFFFF;\n  padding: %s;\n", m.padding)
		fmt.Fprintf(&sb, "  border-radius: 5px;\n  overflow-y: auto;\n  max-height: 80vh;\n  overflow-x: hidden;\n  max-width: %s;\n}\n", m.maxWidth)
		fmt.Fprintf(&sb, ".cog-modal > div:first-child > div:first-child > div:first-child {\n")
		fmt.Fprintf(&sb, "  padding-bottom: %s;\n  border-bottom: 1px solid rgba(250, 250, 250, 0.2);\n}\n", m.padding)
		sb.WriteString(".cog-modal > div:first-child > div:first-child > div:first-child > div:nth-child(2) button {\n")
		sb.WriteString("  float: right;\n  min-width: 38.4px;\n}\n")
		sb.WriteString(".cog-modal > div:first-child > div:first-child div:nth-child(2) button p {\n")
		sb.WriteString("  font-size: .5rem;\n  font-weight: bold;\n}\n")
		sb.WriteString(".cog-modal .title {\n  padding: 0;\n  font-size: 2rem;\n}\n")
		sb.WriteString(".cog-modal .title a {\n  display: none;\n}\n")
		sb.WriteString(".cog-modal .separator {\n  margin: 1em 0;\n}\n")
		sb.WriteString("</style>")
		if m.Title != "" {
			fmt.Fprintf(&sb, "\n<h2 class=\"title\">%s</h2>", html.EscapeString(m.Title))
		}
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// frameMarker emits the script that locates the modal's host iframe by a
// key-bearing comment and promotes its container to the overlay.
func (m *Modal) frameMarker() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		script := fmt.Sprintf(`<script>
// COG-MODAL-IFRAME-%[1]s <- marker used to find this iframe
const iframes = parent.document.body.getElementsByTagName('iframe');
for (const iframe of iframes) {
    if (iframe.srcdoc.indexOf("COG-MODAL-IFRAME-%[1]s") >= 0) {
        const container = iframe.parentNode.previousSibling;
        container.classList.add('cog-modal');
        container.dataset.modalKey = '%[1]s';
        const contentDiv = container.querySelector('div:first-child > div:first-child');
        contentDiv.style.backgroundColor = getComputedStyle(parent.document.body).backgroundColor;
    }
}
</script>`, m.Key)
		_, err := io.WriteString(w, script)
		return err
	})
}

// renderHTML renders a templ component to a string.
func renderHTML(c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
