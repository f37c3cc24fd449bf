package model

import (
	"fmt"
	"strings"
)

// DefaultAutoID is the id template NewForm assigns; %s receives the HTML name.
const DefaultAutoID = "id_%s"

// Form is an ordered, name-keyed collection of fields. AutoID controls the ids
// rendered for each input: a template containing %s is formatted with the
// field's HTML name, any other non-empty value uses the HTML name verbatim and
// an empty value disables generated ids.
type Form struct {
	Name   string   `json:"name"`
	Prefix string   `json:"prefix,omitempty"`
	AutoID string   `json:"autoId,omitempty"`
	Fields []*Field `json:"fields"`
	Meta   *Meta    `json:"meta,omitempty"`
}

// NewForm builds a form with the default id template, rejecting duplicate or
// empty field names.
func NewForm(name string, fields ...*Field) (*Form, error) {
	form := &Form{Name: name, AutoID: DefaultAutoID}
	for _, field := range fields {
		if err := form.Add(field); err != nil {
			return nil, err
		}
	}
	return form, nil
}

// Add appends field, keeping names unique.
func (f *Form) Add(field *Field) error {
	if field == nil {
		return fmt.Errorf("model: form %q: field is nil", f.Name)
	}
	name := strings.TrimSpace(field.Name)
	if name == "" {
		return fmt.Errorf("model: form %q: field name is required", f.Name)
	}
	if _, exists := f.Field(name); exists {
		return fmt.Errorf("model: form %q: %w: %q", f.Name, ErrDuplicateField, name)
	}
	f.Fields = append(f.Fields, field)
	return nil
}

// BoundForm returns the receiver. The method is promoted through embedding, so
// a struct embedding *Form reaches the descriptor without naming the field.
func (f *Form) BoundForm() *Form {
	return f
}

// Field looks up a field by name.
func (f *Form) Field(name string) (*Field, bool) {
	if f == nil {
		return nil, false
	}
	for _, field := range f.Fields {
		if field != nil && field.Name == name {
			return field, true
		}
	}
	return nil, false
}

// HTMLName returns the submitted name of a field, honouring the form prefix.
func (f *Form) HTMLName(name string) string {
	if f == nil || strings.TrimSpace(f.Prefix) == "" {
		return name
	}
	return strings.TrimSpace(f.Prefix) + "-" + name
}

// AutoIDFor returns the generated id for name, or "" when ids are disabled.
func (f *Form) AutoIDFor(name string) string {
	if f == nil {
		return ""
	}
	htmlName := f.HTMLName(name)
	switch {
	case strings.Contains(f.AutoID, "%s"):
		return fmt.Sprintf(f.AutoID, htmlName)
	case f.AutoID != "":
		return htmlName
	default:
		return ""
	}
}

// WidgetID returns the id rendered on the field's element: an explicit "id"
// attribute wins over the generated one.
func (f *Form) WidgetID(field *Field) string {
	if field == nil {
		return ""
	}
	if id, ok := field.Attrs().Get("id"); ok && strings.TrimSpace(id) != "" {
		return id
	}
	return f.AutoIDFor(field.Name)
}

// IDForLabel resolves the id a label (or an equalto rule) should reference for
// the named field. It fails with ErrFieldNotFound for unknown names.
func (f *Form) IDForLabel(name string) (string, error) {
	field, ok := f.Field(name)
	if !ok {
		formName := ""
		if f != nil {
			formName = f.Name
		}
		return "", fmt.Errorf("model: form %q: %w: %q", formName, ErrFieldNotFound, name)
	}
	id := f.WidgetID(field)
	if field.Widget == nil {
		return id, nil
	}
	return field.Widget.IDForLabel(id), nil
}
