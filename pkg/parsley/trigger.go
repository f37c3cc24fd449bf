package parsley

import (
	"fmt"

	"github.com/goliatone/go-parsley/pkg/model"
)

// Bindable is satisfied by *model.Form and by any type embedding it.
type Bindable interface {
	BoundForm() *model.Form
}

// Parsleyfy wraps a form constructor: the returned function runs build to
// completion and then binds the result before handing it back. Each call binds
// the freshly built form only.
func Parsleyfy[A any, F Bindable](build func(A) (F, error), options ...Option) func(A) (F, error) {
	binder := NewBinder(options...)
	return func(args A) (F, error) {
		form, err := build(args)
		if err != nil {
			return form, err
		}
		if err := bindBuilt(binder, form); err != nil {
			var zero F
			return zero, err
		}
		return form, nil
	}
}

// Build runs a zero-argument constructor and binds its result.
func Build[F Bindable](build func() (F, error), options ...Option) (F, error) {
	wrapped := Parsleyfy(func(struct{}) (F, error) { return build() }, options...)
	return wrapped(struct{}{})
}

// MustBuild is like Build but panics on error.
func MustBuild[F Bindable](build func() (F, error), options ...Option) F {
	form, err := Build(build, options...)
	if err != nil {
		panic(err)
	}
	return form
}

func bindBuilt(binder *Binder, built Bindable) error {
	form := built.BoundForm()
	if form == nil {
		return fmt.Errorf("parsley: constructor returned a nil form")
	}
	return binder.Bind(form)
}

// MustParsleyfy is like Parsleyfy but the returned constructor panics on error.
func MustParsleyfy[A any, F Bindable](build func(A) (F, error), options ...Option) func(A) F {
	wrapped := Parsleyfy(build, options...)
	return func(args A) F {
		form, err := wrapped(args)
		if err != nil {
			panic(err)
		}
		return form
	}
}
