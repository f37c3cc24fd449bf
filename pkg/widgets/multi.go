package widgets

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-parsley/pkg/model"
)

// MultiWidget renders one sub-widget per child field of a composite. The
// sub-widgets keep their own attribute bags.
type MultiWidget struct {
	base
	widgets []model.Widget
}

var _ model.CompositeWidget = (*MultiWidget)(nil)

// Multi constructs a composite widget over the given sub-widgets.
func Multi(widgets []model.Widget, options ...Option) *MultiWidget {
	return &MultiWidget{base: newBase(newSettings(options)), widgets: widgets}
}

// Widgets returns the sub-widgets in render order.
func (w *MultiWidget) Widgets() []model.Widget {
	return w.widgets
}

// IDForLabel targets the first sub-widget.
func (w *MultiWidget) IDForLabel(id string) string {
	if id == "" {
		return ""
	}
	return id + "_0"
}

// Render renders every sub-widget as name_<index> with id_<index> ids. value
// may be a slice holding one entry per sub-widget.
func (w *MultiWidget) Render(name string, value any, attrs model.Attrs) (string, error) {
	merged := w.merged(attrs)
	id := merged["id"]
	values := splitValues(value)

	var builder strings.Builder
	for idx, widget := range w.widgets {
		if widget == nil {
			continue
		}
		childAttrs := merged.Clone()
		delete(childAttrs, "id")
		if id != "" {
			childAttrs["id"] = fmt.Sprintf("%s_%d", id, idx)
		}
		var childValue any
		if idx < len(values) {
			childValue = values[idx]
		}
		out, err := widget.Render(fmt.Sprintf("%s_%d", name, idx), childValue, childAttrs)
		if err != nil {
			return "", fmt.Errorf("widgets: render part %d of %q: %w", idx, name, err)
		}
		builder.WriteString(out)
	}
	return builder.String(), nil
}

func splitValues(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for idx, item := range v {
			out[idx] = item
		}
		return out
	default:
		return []any{v}
	}
}
