package parsley

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-parsley/pkg/model"
)

// RuleEqualTo names the extras rule whose value is another field of the form.
const RuleEqualTo = "equalto"

// Option configures a Binder.
type Option func(*Binder)

// WithNamespace sets the prefix used for forms whose metadata does not declare
// one.
func WithNamespace(namespace string) Option {
	return func(b *Binder) {
		if trimmed := strings.TrimSpace(namespace); trimmed != "" {
			b.namespace = trimmed
		}
	}
}

// WithExtras sets the extras applied to forms that carry no metadata block.
func WithExtras(extras map[string]map[string]any) Option {
	return func(b *Binder) {
		b.extras = extras
	}
}

// Binder applies Derive to every field of a form and then the form's extras.
// It satisfies model.Decorator so it can run inside a decoration chain.
type Binder struct {
	namespace string
	extras    map[string]map[string]any
}

var _ model.Decorator = (*Binder)(nil)

// NewBinder constructs a Binder.
func NewBinder(options ...Option) *Binder {
	b := &Binder{namespace: DefaultNamespace}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Namespace returns the prefix a default Binder uses for form.
func Namespace(form *model.Form) string {
	return NewBinder().Namespace(form)
}

// Bind binds form using a Binder with default options.
func Bind(form *model.Form) error {
	return NewBinder().Bind(form)
}

// Decorate implements model.Decorator.
func (b *Binder) Decorate(form *model.Form) error {
	return b.Bind(form)
}

// Namespace returns the prefix Bind would use for form.
func (b *Binder) Namespace(form *model.Form) string {
	if form != nil && form.Meta != nil {
		if ns := strings.TrimSpace(form.Meta.Namespace); ns != "" {
			return ns
		}
	}
	if b == nil || b.namespace == "" {
		return DefaultNamespace
	}
	return b.namespace
}

// Bind derives attributes for every field in declaration order, then applies
// extras rules. Extras naming unknown fields are skipped; an equalto rule that
// references an unknown field fails with model.ErrFieldNotFound.
func (b *Binder) Bind(form *model.Form) error {
	if form == nil {
		return fmt.Errorf("parsley: form is nil")
	}
	prefix := b.Namespace(form)
	for _, field := range form.Fields {
		Derive(field, prefix)
	}
	return b.applyExtras(form, prefix)
}

func (b *Binder) extrasFor(form *model.Form) map[string]map[string]any {
	if form.Meta != nil {
		return form.Meta.Extras
	}
	if b == nil {
		return nil
	}
	return b.extras
}

func (b *Binder) applyExtras(form *model.Form, prefix string) error {
	extras := b.extrasFor(form)
	if len(extras) == 0 {
		return nil
	}

	for _, name := range sortedKeys(extras) {
		field, ok := form.Field(name)
		if !ok {
			continue
		}
		rules := extras[name]
		attrs := field.Attrs()
		for _, key := range sortedKeys(rules) {
			if strings.TrimSpace(key) == "" {
				continue
			}
			value := rules[key]
			if key == RuleEqualTo {
				target := model.FormatValue(value)
				id, err := form.IDForLabel(target)
				if err != nil {
					return fmt.Errorf("parsley: %s rule on %q: %w", RuleEqualTo, name, err)
				}
				value = "#" + id
			}
			attrs.Set(prefix+"-"+key, value)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
