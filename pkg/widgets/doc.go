// Package widgets provides the input widgets that own a field's attribute bag
// and render it as HTML through the pongo2 template engine. Choice groups
// (radio buttons and checkbox lists) delegate per-option markup to a
// model.ChoiceRenderer so decorators can adjust each option. The Registry picks
// a default widget for a field from its kind.
package widgets
