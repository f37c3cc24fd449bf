package model

// Widget renders a field's input element and owns its attribute bag.
type Widget interface {
	// Attrs returns the live attribute bag; callers mutate it in place.
	Attrs() Attrs
	// Render produces the element markup. attrs holds per-render extras (such
	// as the resolved id) merged over the widget's own bag.
	Render(name string, value any, attrs Attrs) (string, error)
	// IDForLabel maps the widget id to the id a <label for> should target.
	IDForLabel(id string) string
}

// ChoiceOption describes one option a choice widget asks its renderer to draw.
// Attrs is a copy owned by this option.
type ChoiceOption struct {
	Name      string
	InputType string
	Choice    Choice
	Index     int
	Checked   bool
	Attrs     Attrs
}

// ChoiceGroup describes the container the rendered options are wrapped in.
type ChoiceGroup struct {
	ID    string
	Name  string
	Attrs Attrs
}

// ChoiceRenderer draws the options of a radio or checkbox group. Widgets own
// option enumeration and call RenderOption once per choice, then Wrap.
type ChoiceRenderer interface {
	RenderOption(option ChoiceOption) (string, error)
	Wrap(group ChoiceGroup, options []string) (string, error)
}

// ChoiceWidget is implemented by widgets that delegate option rendering.
type ChoiceWidget interface {
	Widget
	Renderer() ChoiceRenderer
	SetRenderer(ChoiceRenderer)
}

// CompositeWidget is implemented by widgets that render one sub-widget per
// child field.
type CompositeWidget interface {
	Widget
	Widgets() []Widget
}
