// Package fields offers constructors for the common field kinds. Each
// constructor fixes the field's model.Kind and assigns the default widget from
// the widgets registry unless one is supplied with WithWidget.
package fields
