package widgets

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-parsley/internal/markup"
	"github.com/goliatone/go-parsley/pkg/model"
	"github.com/goliatone/go-parsley/pkg/render/template"
)

// Option configures a widget at construction.
type Option func(*settings)

type settings struct {
	attrs     model.Attrs
	templates template.TemplateRenderer
	renderer  model.ChoiceRenderer
}

// WithAttrs seeds the widget attribute bag. The map is copied.
func WithAttrs(attrs model.Attrs) Option {
	return func(s *settings) {
		s.attrs = s.attrs.Merge(attrs)
	}
}

// WithTemplates overrides the template engine used to render the widget.
func WithTemplates(renderer template.TemplateRenderer) Option {
	return func(s *settings) {
		if renderer != nil {
			s.templates = renderer
		}
	}
}

// WithChoiceRenderer sets the option renderer of a choice group widget.
func WithChoiceRenderer(renderer model.ChoiceRenderer) Option {
	return func(s *settings) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

func newSettings(options []Option) settings {
	s := settings{attrs: model.Attrs{}}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&s)
	}
	return s
}

type base struct {
	attrs     model.Attrs
	templates template.TemplateRenderer
}

func newBase(s settings) base {
	return base{attrs: s.attrs, templates: s.templates}
}

// Attrs returns the live attribute bag.
func (b *base) Attrs() model.Attrs {
	if b.attrs == nil {
		b.attrs = model.Attrs{}
	}
	return b.attrs
}

// IDForLabel returns id unchanged.
func (b *base) IDForLabel(id string) string {
	return id
}

func (b *base) merged(extra model.Attrs) model.Attrs {
	return b.Attrs().Clone().Merge(extra)
}

func (b *base) engine() (template.TemplateRenderer, error) {
	if b.templates != nil {
		return b.templates, nil
	}
	return DefaultTemplates()
}

func (b *base) render(name string, data map[string]any) (string, error) {
	engine, err := b.engine()
	if err != nil {
		return "", err
	}
	out, err := engine.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("widgets: render %s: %w", name, err)
	}
	return out, nil
}

// Input renders a single <input> element of InputType.
type Input struct {
	base
	InputType string
}

var _ model.Widget = (*Input)(nil)

// NewInput constructs an input widget of the given HTML type.
func NewInput(inputType string, options ...Option) *Input {
	return &Input{base: newBase(newSettings(options)), InputType: inputType}
}

// TextInput renders <input type="text">.
func TextInput(options ...Option) *Input { return NewInput("text", options...) }

// NumberInput renders <input type="number">.
func NumberInput(options ...Option) *Input { return NewInput("number", options...) }

// EmailInput renders <input type="email">.
func EmailInput(options ...Option) *Input { return NewInput("email", options...) }

// URLInput renders <input type="url">.
func URLInput(options ...Option) *Input { return NewInput("url", options...) }

// PasswordInput renders <input type="password">.
func PasswordInput(options ...Option) *Input { return NewInput("password", options...) }

// Render implements model.Widget.
func (w *Input) Render(name string, value any, attrs model.Attrs) (string, error) {
	return w.render("input", map[string]any{
		"type":  w.InputType,
		"name":  name,
		"value": model.FormatValue(value),
		"attrs": w.merged(attrs),
	})
}

// CheckboxInput renders a single boolean checkbox.
type CheckboxInput struct {
	base
}

var _ model.Widget = (*CheckboxInput)(nil)

// Checkbox constructs a checkbox widget.
func Checkbox(options ...Option) *CheckboxInput {
	return &CheckboxInput{base: newBase(newSettings(options))}
}

// Render implements model.Widget; the box is checked for truthy values.
func (w *CheckboxInput) Render(name string, value any, attrs model.Attrs) (string, error) {
	return w.render("checkbox", map[string]any{
		"name":    name,
		"checked": truthy(value),
		"attrs":   w.merged(attrs),
	})
}

// Select renders a <select> element.
type Select struct {
	base
	Choices  []model.Choice
	Multiple bool
}

var _ model.Widget = (*Select)(nil)

// NewSelect constructs a single-value select.
func NewSelect(choices []model.Choice, options ...Option) *Select {
	return &Select{base: newBase(newSettings(options)), Choices: choices}
}

// SelectMultiple constructs a multi-value select.
func SelectMultiple(choices []model.Choice, options ...Option) *Select {
	w := NewSelect(choices, options...)
	w.Multiple = true
	return w
}

// Render implements model.Widget.
func (w *Select) Render(name string, value any, attrs model.Attrs) (string, error) {
	selected := valueSet(value)
	options := make([]map[string]any, 0, len(w.Choices))
	for _, choice := range w.Choices {
		_, isSelected := selected[choice.Value]
		options = append(options, map[string]any{
			"value":    choice.Value,
			"label":    markup.Inline(choice.Label),
			"selected": isSelected,
		})
	}
	return w.render("select", map[string]any{
		"name":     name,
		"multiple": w.Multiple,
		"options":  options,
		"attrs":    w.merged(attrs),
	})
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "0", "false", "off", "no":
			return false
		}
		return true
	default:
		return model.FormatValue(v) != ""
	}
}

func valueSet(value any) map[string]struct{} {
	set := make(map[string]struct{})
	switch v := value.(type) {
	case nil:
	case []string:
		for _, item := range v {
			set[item] = struct{}{}
		}
	case []any:
		for _, item := range v {
			set[model.FormatValue(item)] = struct{}{}
		}
	default:
		set[model.FormatValue(v)] = struct{}{}
	}
	return set
}
