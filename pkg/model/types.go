package model

import "strings"

// Kind is the tagged classification of a field. Each field has exactly one kind
// so type markers resolve without inspecting the field's shape at bind time.
type Kind string

const (
	KindText           Kind = "text"
	KindRegex          Kind = "regex"
	KindURL            Kind = "url"
	KindEmail          Kind = "email"
	KindInteger        Kind = "integer"
	KindDecimal        Kind = "decimal"
	KindFloat          Kind = "float"
	KindBoolean        Kind = "boolean"
	KindChoice         Kind = "choice"
	KindMultipleChoice Kind = "multiple-choice"
	KindComposite      Kind = "composite"
)

// Validation kinds used as keys of Field.Messages.
const (
	MessageRequired  = "required"
	MessageInvalid   = "invalid"
	MessageMinLength = "min_length"
	MessageMaxLength = "max_length"
	MessageMinValue  = "min_value"
	MessageMaxValue  = "max_value"
)

// Pattern is a regular expression constraint. Source is emitted verbatim and
// must therefore not carry inline flags; case-insensitivity travels separately.
type Pattern struct {
	Source     string `json:"source"`
	IgnoreCase bool   `json:"ignoreCase,omitempty"`
}

// Choice is a single selectable value for choice fields.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field models one form input. Zero bounds are treated as unset.
type Field struct {
	Name      string            `json:"name"`
	Kind      Kind              `json:"kind"`
	Required  bool              `json:"required"`
	Label     string            `json:"label,omitempty"`
	HelpText  string            `json:"helpText,omitempty"`
	Initial   any               `json:"initial,omitempty"`
	MinLength int               `json:"minLength,omitempty"`
	MaxLength int               `json:"maxLength,omitempty"`
	MinValue  *float64          `json:"minValue,omitempty"`
	MaxValue  *float64          `json:"maxValue,omitempty"`
	Pattern   *Pattern          `json:"pattern,omitempty"`
	Messages  map[string]string `json:"messages,omitempty"`
	Choices   []Choice          `json:"choices,omitempty"`
	Fields    []*Field          `json:"fields,omitempty"`
	Widget    Widget            `json:"-"`
}

// Message returns the custom error message registered for kind, if any.
func (f *Field) Message(kind string) (string, bool) {
	if f == nil || len(f.Messages) == 0 {
		return "", false
	}
	msg, ok := f.Messages[kind]
	if !ok || strings.TrimSpace(msg) == "" {
		return "", false
	}
	return msg, true
}

// IsComposite reports whether the field owns child fields.
func (f *Field) IsComposite() bool {
	return f != nil && (f.Kind == KindComposite || len(f.Fields) > 0)
}

// Attrs returns the widget attribute bag, or nil when the field has no widget.
func (f *Field) Attrs() Attrs {
	if f == nil || f.Widget == nil {
		return nil
	}
	return f.Widget.Attrs()
}

// Meta carries per-form binding configuration.
type Meta struct {
	// Namespace overrides the attribute prefix (defaults to data-parsley).
	Namespace string `json:"namespace,omitempty" yaml:"namespace" toml:"namespace"`
	// Extras maps field names to additional rules applied verbatim.
	Extras map[string]map[string]any `json:"extras,omitempty" yaml:"extras" toml:"extras"`
}

// Clone returns a deep copy of the metadata block.
func (m *Meta) Clone() *Meta {
	if m == nil {
		return nil
	}
	out := &Meta{Namespace: m.Namespace}
	if len(m.Extras) > 0 {
		out.Extras = make(map[string]map[string]any, len(m.Extras))
		for field, rules := range m.Extras {
			copied := make(map[string]any, len(rules))
			for key, value := range rules {
				copied[key] = value
			}
			out.Extras[field] = copied
		}
	}
	return out
}
