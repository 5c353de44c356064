// Package cogcmp provides reusable widgets for a reactive, re-run-per-event
// web-app host, plus the protocol that carries widget arguments into a
// sandboxed HTML/JS frontend and the reported value back to the host script.
//
// A widget call is synchronous glue: arguments are classified into JSON-safe
// values and special values (binary blobs, columnar tables), a stable widget
// identity is resolved, the widget is registered with the session state
// store, the wire element is handed to the render sink, and the last value
// reported by the frontend (or the caller's default) is returned.
//
// # Identity
//
// A widget's identity correlates it across script re-runs. Two modes exist:
//
//   - Full fingerprint (no key): the identity digests the component name,
//     source locator, scope id, and every argument. Changing any argument
//     produces a new identity and the frontend remounts the widget.
//   - Stable (user key): the identity digests only the component name,
//     source locator, scope id, and key. Arguments may change freely without
//     remounting the embedded frontend.
//
// # Arguments
//
// Callers construct arguments as explicit tagged values:
//
//	args := cogcmp.NewArgs().
//	    Set("text", cogcmp.JSON("hello")).
//	    Set("thumbnail", cogcmp.Bytes(png)).
//	    Set("rows", cogcmp.Table(table))
//
// JSON values travel as a single serialized JSON object; bytes and tables
// travel out-of-band as special-arg records, tables encoded through the
// columnar codec in lib/tabular.
//
// # Host collaborators
//
// The host's re-run loop, element diffing, and serving are external. This
// package models the seams explicitly instead of through ambient globals:
// a Registry holds declared components, a Session holds per-session widget
// state, and a Context bundles both with the render sink for one script run.
//
//	reg := cogcmp.NewRegistry(nil)
//	comp, _ := cogcmp.Declare(reg, "myapp.widgets", "annotate",
//	    cogcmp.WithPath("frontend/public"))
//
//	ctx := cogcmp.NewContext(cogcmp.NewSession(), reg, sink)
//	value, err := comp.Invoke(ctx, args, cogcmp.CallSpec{Default: cogcmp.JSON(nil)})
//
// # Widgets
//
// Ready-made widgets live under widgets/: entity annotation
// (widgets/annotate), hierarchical concept search (widgets/conceptsearch),
// and a modal dialog helper (widgets/modal).
package cogcmp
