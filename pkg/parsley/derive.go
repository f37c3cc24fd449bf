package parsley

import (
	"github.com/goliatone/go-parsley/pkg/model"
)

// DefaultNamespace prefixes every attribute unless a form overrides it.
const DefaultNamespace = "data-parsley"

type typeMarker struct {
	kind   model.Kind
	marker string
}

// typeMarkers is ordered; the first entry matching a field's kind wins.
var typeMarkers = []typeMarker{
	{kind: model.KindURL, marker: "url"},
	{kind: model.KindEmail, marker: "email"},
	{kind: model.KindInteger, marker: "digits"},
	{kind: model.KindDecimal, marker: "number"},
	{kind: model.KindFloat, marker: "number"},
}

type boundAttr struct {
	attr    string
	message string
	value   func(*model.Field) (any, bool)
}

var boundAttrs = []boundAttr{
	{attr: "minlength", message: model.MessageMinLength, value: func(f *model.Field) (any, bool) {
		return f.MinLength, f.MinLength != 0
	}},
	{attr: "maxlength", message: model.MessageMaxLength, value: func(f *model.Field) (any, bool) {
		return f.MaxLength, f.MaxLength != 0
	}},
	{attr: "min", message: model.MessageMinValue, value: func(f *model.Field) (any, bool) {
		return floatBound(f.MinValue)
	}},
	{attr: "max", message: model.MessageMaxValue, value: func(f *model.Field) (any, bool) {
		return floatBound(f.MaxValue)
	}},
}

func floatBound(value *float64) (any, bool) {
	if value == nil || *value == 0 {
		return nil, false
	}
	return *value, true
}

// TypeMarker returns the Parsley type marker for kind.
func TypeMarker(kind model.Kind) (string, bool) {
	for _, entry := range typeMarkers {
		if entry.kind == kind {
			return entry.marker, true
		}
	}
	return "", false
}

// Derive writes the validation attributes implied by field into its widget
// attribute bag, prefixing every key with prefix. Child fields of composites
// are derived with DefaultNamespace.
func Derive(field *model.Field, prefix string) {
	if field == nil {
		return
	}
	attrs := field.Attrs()
	key := func(name string) string { return prefix + "-" + name }

	if field.Required {
		if !wrapChoiceRenderer(field, prefix) {
			attrs.Set(key("required"), true)
			if msg, ok := field.Message(model.MessageRequired); ok {
				attrs.Set(key("required-message"), msg)
			}
		}
	}

	if field.Kind == model.KindRegex && field.Pattern != nil {
		attrs.Set(key("regexp"), field.Pattern.Source)
		if msg, ok := field.Message(model.MessageInvalid); ok {
			attrs.Set(key("regexp-message"), msg)
		}
		if field.Pattern.IgnoreCase {
			attrs.Set(key("regexp-flag"), "i")
		}
	}

	if field.IsComposite() {
		for _, child := range field.Fields {
			Derive(child, DefaultNamespace)
		}
	}

	for _, bound := range boundAttrs {
		value, ok := bound.value(field)
		if !ok {
			continue
		}
		attrs.Set(key(bound.attr), value)
		if msg, ok := field.Message(bound.message); ok {
			attrs.Set(key(bound.attr+"-message"), msg)
		}
	}

	if marker, ok := TypeMarker(field.Kind); ok {
		attrs.Set(key("type"), marker)
		if msg, ok := field.Message(model.MessageInvalid); ok {
			attrs.Set(key("type-"+marker+"-message"), msg)
		}
	}
}

// wrapChoiceRenderer moves the required marker onto each rendered option when
// the widget delegates option rendering. It reports whether it did so.
func wrapChoiceRenderer(field *model.Field, prefix string) bool {
	widget, ok := field.Widget.(model.ChoiceWidget)
	if !ok {
		return false
	}
	renderer := widget.Renderer()
	if renderer == nil {
		return false
	}
	if wrapped, ok := renderer.(*RequiredChoiceRenderer); ok && wrapped.Namespace == prefix {
		return true
	}
	widget.SetRenderer(NewRequiredChoiceRenderer(renderer, prefix))
	return true
}
