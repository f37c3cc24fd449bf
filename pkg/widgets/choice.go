package widgets

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-parsley/internal/markup"
	"github.com/goliatone/go-parsley/pkg/model"
	"github.com/goliatone/go-parsley/pkg/render/template"
)

// ChoiceGroup renders one input per choice (radio buttons or a checkbox list),
// delegating each option and the surrounding container to its renderer.
type ChoiceGroup struct {
	base
	InputType string
	Choices   []model.Choice
	renderer  model.ChoiceRenderer
}

var _ model.ChoiceWidget = (*ChoiceGroup)(nil)

// RadioSelect constructs a radio button group.
func RadioSelect(choices []model.Choice, options ...Option) *ChoiceGroup {
	return newChoiceGroup("radio", choices, options)
}

// CheckboxSelectMultiple constructs a checkbox list.
func CheckboxSelectMultiple(choices []model.Choice, options ...Option) *ChoiceGroup {
	return newChoiceGroup("checkbox", choices, options)
}

func newChoiceGroup(inputType string, choices []model.Choice, options []Option) *ChoiceGroup {
	s := newSettings(options)
	renderer := s.renderer
	if renderer == nil {
		renderer = &ListRenderer{Templates: s.templates}
	}
	return &ChoiceGroup{
		base:      newBase(s),
		InputType: inputType,
		Choices:   choices,
		renderer:  renderer,
	}
}

// Renderer returns the configured option renderer.
func (w *ChoiceGroup) Renderer() model.ChoiceRenderer {
	return w.renderer
}

// SetRenderer replaces the option renderer.
func (w *ChoiceGroup) SetRenderer(renderer model.ChoiceRenderer) {
	w.renderer = renderer
}

// IDForLabel targets the first option.
func (w *ChoiceGroup) IDForLabel(id string) string {
	if id == "" {
		return ""
	}
	return id + "_0"
}

// Render enumerates the choices, asks the renderer for each option and wraps
// the results. Option ids are derived from the group id as id_<index>.
func (w *ChoiceGroup) Render(name string, value any, attrs model.Attrs) (string, error) {
	if w.renderer == nil {
		return "", fmt.Errorf("widgets: choice group %q has no renderer", name)
	}
	merged := w.merged(attrs)
	id := merged["id"]
	selected := valueSet(value)

	rendered := make([]string, 0, len(w.Choices))
	for idx, choice := range w.Choices {
		optionAttrs := merged.Clone()
		delete(optionAttrs, "id")
		if id != "" {
			optionAttrs["id"] = fmt.Sprintf("%s_%d", id, idx)
		}
		_, checked := selected[choice.Value]
		out, err := w.renderer.RenderOption(model.ChoiceOption{
			Name:      name,
			InputType: w.InputType,
			Choice:    choice,
			Index:     idx,
			Checked:   checked,
			Attrs:     optionAttrs,
		})
		if err != nil {
			return "", fmt.Errorf("widgets: render option %d of %q: %w", idx, name, err)
		}
		rendered = append(rendered, out)
	}

	return w.renderer.Wrap(model.ChoiceGroup{ID: id, Name: name, Attrs: merged}, rendered)
}

// ListRenderer is the default choice renderer: each option is a labelled input
// inside an <li>, the group an <ul>.
type ListRenderer struct {
	Templates template.TemplateRenderer
}

var _ model.ChoiceRenderer = (*ListRenderer)(nil)

// RenderOption implements model.ChoiceRenderer.
func (r *ListRenderer) RenderOption(option model.ChoiceOption) (string, error) {
	engine, err := r.engine()
	if err != nil {
		return "", err
	}
	return engine.RenderTemplate("choice_option", map[string]any{
		"id":      option.Attrs["id"],
		"type":    option.InputType,
		"name":    option.Name,
		"value":   option.Choice.Value,
		"label":   markup.Inline(option.Choice.Label),
		"checked": option.Checked,
		"attrs":   option.Attrs,
	})
}

// Wrap implements model.ChoiceRenderer.
func (r *ListRenderer) Wrap(group model.ChoiceGroup, options []string) (string, error) {
	engine, err := r.engine()
	if err != nil {
		return "", err
	}
	return engine.RenderTemplate("choice_group", map[string]any{
		"id":      strings.TrimSpace(group.ID),
		"options": options,
	})
}

func (r *ListRenderer) engine() (template.TemplateRenderer, error) {
	if r != nil && r.Templates != nil {
		return r.Templates, nil
	}
	return DefaultTemplates()
}
