package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request data renderers use without mutating the
// form.
type RenderOptions struct {
	// Action is the form's submit target. Empty renders no action attribute.
	Action string
	// Method defaults to POST when empty.
	Method string
	// Values pre-populates controls keyed by field name. Composite children are
	// addressed with dotted paths ("address.city").
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field path.
	// Use MapErrors to normalise raw payloads first.
	Errors map[string][]string
	// FormErrors are rendered above the fields.
	FormErrors []string
	// Theme is the resolved theme selection. Nil keeps the built-in chrome.
	Theme *theme.RendererConfig
}
