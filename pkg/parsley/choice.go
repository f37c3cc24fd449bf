package parsley

import (
	"github.com/goliatone/go-parsley/pkg/model"
)

// RequiredChoiceRenderer decorates a choice renderer so every rendered option
// carries the required marker. Parsley validates radio and checkbox groups
// through their option inputs, so the attribute cannot live on the container.
type RequiredChoiceRenderer struct {
	Base      model.ChoiceRenderer
	Namespace string
}

var _ model.ChoiceRenderer = (*RequiredChoiceRenderer)(nil)

// NewRequiredChoiceRenderer wraps base, emitting attributes under namespace.
func NewRequiredChoiceRenderer(base model.ChoiceRenderer, namespace string) *RequiredChoiceRenderer {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &RequiredChoiceRenderer{Base: base, Namespace: namespace}
}

// RenderOption adds the required marker to a copy of the option attributes and
// delegates to the wrapped renderer.
func (r *RequiredChoiceRenderer) RenderOption(option model.ChoiceOption) (string, error) {
	attrs := option.Attrs.Clone()
	attrs.Set(r.Namespace+"-required", true)
	option.Attrs = attrs
	return r.Base.RenderOption(option)
}

// Wrap delegates unchanged.
func (r *RequiredChoiceRenderer) Wrap(group model.ChoiceGroup, options []string) (string, error) {
	return r.Base.Wrap(group, options)
}

// Unwrap returns the decorated renderer.
func (r *RequiredChoiceRenderer) Unwrap() model.ChoiceRenderer {
	return r.Base
}
