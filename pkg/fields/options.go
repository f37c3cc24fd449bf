package fields

import (
	"github.com/goliatone/go-parsley/pkg/model"
)

// Option configures a field under construction.
type Option func(*builder)

type builder struct {
	field *model.Field
	attrs model.Attrs
}

// Required marks the field as required.
func Required() Option {
	return func(b *builder) { b.field.Required = true }
}

// Label sets the display label.
func Label(label string) Option {
	return func(b *builder) { b.field.Label = label }
}

// HelpText sets the help text rendered below the input.
func HelpText(text string) Option {
	return func(b *builder) { b.field.HelpText = text }
}

// Initial sets the value rendered when no submitted value is available.
func Initial(value any) Option {
	return func(b *builder) { b.field.Initial = value }
}

// MinLength sets the minimum length bound.
func MinLength(n int) Option {
	return func(b *builder) { b.field.MinLength = n }
}

// MaxLength sets the maximum length bound.
func MaxLength(n int) Option {
	return func(b *builder) { b.field.MaxLength = n }
}

// MinValue sets the minimum value bound.
func MinValue(v float64) Option {
	return func(b *builder) { b.field.MinValue = &v }
}

// MaxValue sets the maximum value bound.
func MaxValue(v float64) Option {
	return func(b *builder) { b.field.MaxValue = &v }
}

// Message registers a custom error message for a validation kind (see the
// model.Message* constants).
func Message(kind, message string) Option {
	return func(b *builder) {
		if b.field.Messages == nil {
			b.field.Messages = make(map[string]string)
		}
		b.field.Messages[kind] = message
	}
}

// Messages registers several custom error messages at once.
func Messages(messages map[string]string) Option {
	return func(b *builder) {
		for kind, message := range messages {
			Message(kind, message)(b)
		}
	}
}

// IgnoreCase makes a regex field's pattern case-insensitive.
func IgnoreCase() Option {
	return func(b *builder) {
		if b.field.Pattern != nil {
			b.field.Pattern.IgnoreCase = true
		}
	}
}

// WithWidget overrides the default widget.
func WithWidget(widget model.Widget) Option {
	return func(b *builder) { b.field.Widget = widget }
}

// WithAttrs merges attrs into the widget bag once the widget is assigned.
func WithAttrs(attrs model.Attrs) Option {
	return func(b *builder) { b.attrs = b.attrs.Merge(attrs) }
}
