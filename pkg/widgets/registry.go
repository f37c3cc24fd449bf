package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-parsley/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText           = "text"
	WidgetNumber         = "number"
	WidgetEmail          = "email"
	WidgetURL            = "url"
	WidgetCheckbox       = "checkbox"
	WidgetSelect         = "select"
	WidgetSelectMultiple = "select-multiple"
	WidgetMulti          = "multi"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field *model.Field) bool

// Factory builds a widget for a field.
type Factory func(field *model.Field) model.Widget

type rule struct {
	name     string
	priority int
	match    Matcher
	build    Factory
	order    int
}

// Registry selects default widgets for fields using registered matchers.
// Higher priority wins; ties fall back to registration order. An empty registry
// never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher. The latest registration of a name wins only
// through priority; callers should avoid duplicate names.
func (r *Registry) Register(name string, priority int, matcher Matcher, factory Factory) {
	if r == nil || matcher == nil || factory == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		build:    factory,
		order:    len(r.rules),
	})
}

func (r *Registry) resolve(field *model.Field) (rule, bool) {
	if r == nil || field == nil {
		return rule{}, false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return rule{}, false
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry, true
		}
	}
	return rule{}, false
}

// Resolve returns the name of the widget the registry would build for field.
func (r *Registry) Resolve(field *model.Field) (string, bool) {
	entry, ok := r.resolve(field)
	return entry.name, ok
}

// Build constructs the default widget for field. Composite children must have
// their widgets assigned first; Decorate takes care of that ordering.
func (r *Registry) Build(field *model.Field) (model.Widget, bool) {
	entry, ok := r.resolve(field)
	if !ok {
		return nil, false
	}
	return entry.build(field), true
}

// Decorate implements model.Decorator by assigning default widgets to every
// field (and composite child) that has none.
func (r *Registry) Decorate(form *model.Form) error {
	if r == nil || form == nil {
		return nil
	}
	for _, field := range form.Fields {
		r.Assign(field)
	}
	return nil
}

// Assign gives field and its children a default widget when they lack one.
func (r *Registry) Assign(field *model.Field) {
	if field == nil {
		return
	}
	for _, child := range field.Fields {
		r.Assign(child)
	}
	if field.Widget != nil {
		return
	}
	if widget, ok := r.Build(field); ok {
		field.Widget = widget
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetMulti, 100, func(field *model.Field) bool {
		return field.IsComposite()
	}, func(field *model.Field) model.Widget {
		children := make([]model.Widget, 0, len(field.Fields))
		for _, child := range field.Fields {
			if child != nil && child.Widget != nil {
				children = append(children, child.Widget)
			}
		}
		return Multi(children)
	})

	r.Register(WidgetSelectMultiple, 90, func(field *model.Field) bool {
		return field.Kind == model.KindMultipleChoice
	}, func(field *model.Field) model.Widget {
		return SelectMultiple(field.Choices)
	})

	r.Register(WidgetSelect, 80, func(field *model.Field) bool {
		return field.Kind == model.KindChoice
	}, func(field *model.Field) model.Widget {
		return NewSelect(field.Choices)
	})

	r.Register(WidgetCheckbox, 70, func(field *model.Field) bool {
		return field.Kind == model.KindBoolean
	}, func(*model.Field) model.Widget {
		return Checkbox()
	})

	r.Register(WidgetEmail, 60, func(field *model.Field) bool {
		return field.Kind == model.KindEmail
	}, func(*model.Field) model.Widget {
		return EmailInput()
	})

	r.Register(WidgetURL, 60, func(field *model.Field) bool {
		return field.Kind == model.KindURL
	}, func(*model.Field) model.Widget {
		return URLInput()
	})

	r.Register(WidgetNumber, 50, func(field *model.Field) bool {
		switch field.Kind {
		case model.KindInteger, model.KindDecimal, model.KindFloat:
			return true
		}
		return false
	}, func(field *model.Field) model.Widget {
		if field.Kind == model.KindInteger {
			return NumberInput()
		}
		return NumberInput(WithAttrs(model.Attrs{"step": "any"}))
	})

	r.Register(WidgetText, 0, func(*model.Field) bool {
		return true
	}, func(*model.Field) model.Widget {
		return TextInput()
	})
}
