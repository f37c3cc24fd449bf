// Package model defines the form and field descriptors the parsley binder
// decorates. A Field carries its semantic Kind (resolved once when the field is
// constructed), bounds, regex pattern and error messages, plus the Widget that
// owns the attribute bag rendered onto the input element. A Form groups fields
// in declaration order and resolves the HTML identifiers renderers emit, which
// is how cross-field rules such as `equalto` point at another input.
package model
