package fields

import (
	"github.com/goliatone/go-parsley/pkg/model"
	"github.com/goliatone/go-parsley/pkg/widgets"
)

var defaultRegistry = widgets.NewRegistry()

// New builds a field of kind, applying options and assigning a default widget.
func New(name string, kind model.Kind, options ...Option) *model.Field {
	field := &model.Field{Name: name, Kind: kind}
	return finish(field, options)
}

// Char builds a free text field.
func Char(name string, options ...Option) *model.Field {
	return New(name, model.KindText, options...)
}

// Integer builds a whole number field.
func Integer(name string, options ...Option) *model.Field {
	return New(name, model.KindInteger, options...)
}

// Decimal builds a fixed precision number field.
func Decimal(name string, options ...Option) *model.Field {
	return New(name, model.KindDecimal, options...)
}

// Float builds a floating point number field.
func Float(name string, options ...Option) *model.Field {
	return New(name, model.KindFloat, options...)
}

// URL builds a URL field.
func URL(name string, options ...Option) *model.Field {
	return New(name, model.KindURL, options...)
}

// Email builds an email field.
func Email(name string, options ...Option) *model.Field {
	return New(name, model.KindEmail, options...)
}

// Boolean builds a checkbox field.
func Boolean(name string, options ...Option) *model.Field {
	return New(name, model.KindBoolean, options...)
}

// Regex builds a text field constrained by expr. A leading (?i) flag becomes
// IgnoreCase. Invalid expressions return model.ErrInvalidPattern.
func Regex(name, expr string, options ...Option) (*model.Field, error) {
	pattern, err := model.ParsePattern(expr)
	if err != nil {
		return nil, err
	}
	field := &model.Field{Name: name, Kind: model.KindRegex, Pattern: pattern}
	return finish(field, options), nil
}

// MustRegex is like Regex but panics on invalid expressions.
func MustRegex(name, expr string, options ...Option) *model.Field {
	field, err := Regex(name, expr, options...)
	if err != nil {
		panic(err)
	}
	return field
}

// Choice builds a single-choice field.
func Choice(name string, choices []model.Choice, options ...Option) *model.Field {
	field := &model.Field{Name: name, Kind: model.KindChoice, Choices: choices}
	return finish(field, options)
}

// MultipleChoice builds a multi-choice field.
func MultipleChoice(name string, choices []model.Choice, options ...Option) *model.Field {
	field := &model.Field{Name: name, Kind: model.KindMultipleChoice, Choices: choices}
	return finish(field, options)
}

// Composite builds a field made of child fields rendered side by side.
func Composite(name string, children []*model.Field, options ...Option) *model.Field {
	field := &model.Field{Name: name, Kind: model.KindComposite, Fields: children}
	return finish(field, options)
}

// Choices converts value/label pairs into model.Choice entries.
func Choices(pairs ...string) []model.Choice {
	out := make([]model.Choice, 0, len(pairs)/2)
	for idx := 0; idx+1 < len(pairs); idx += 2 {
		out = append(out, model.Choice{Value: pairs[idx], Label: pairs[idx+1]})
	}
	return out
}

func finish(field *model.Field, options []Option) *model.Field {
	b := &builder{field: field}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	defaultRegistry.Assign(field)
	if len(b.attrs) > 0 && field.Widget != nil {
		field.Widget.Attrs().Merge(b.attrs)
	}
	return field
}
