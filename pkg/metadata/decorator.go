package metadata

import (
	"github.com/goliatone/go-parsley/pkg/model"
)

// Decorator applies stored metadata to forms by name.
type Decorator struct {
	store *Store
}

var _ model.Decorator = (*Decorator)(nil)

// NewDecorator builds a Decorator backed by store. A nil or empty store makes
// the decorator a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate attaches the stored metadata to form. When the form already carries
// metadata the two are merged and the form's own values win.
func (d *Decorator) Decorate(form *model.Form) error {
	if d == nil || form == nil {
		return nil
	}
	meta, ok := d.store.Meta(form.Name)
	if !ok {
		return nil
	}
	form.Meta = Merge(meta, form.Meta)
	return nil
}

// Merge overlays override on base: a non-empty namespace replaces the base one
// and override rules replace base rules of the same field and key.
func Merge(base, override *model.Meta) *model.Meta {
	if override == nil {
		return base.Clone()
	}
	if base == nil {
		return override.Clone()
	}
	out := base.Clone()
	if override.Namespace != "" {
		out.Namespace = override.Namespace
	}
	for field, rules := range override.Extras {
		if out.Extras == nil {
			out.Extras = make(map[string]map[string]any)
		}
		merged := out.Extras[field]
		if merged == nil {
			merged = make(map[string]any, len(rules))
		}
		for key, value := range rules {
			merged[key] = value
		}
		out.Extras[field] = merged
	}
	return out
}
