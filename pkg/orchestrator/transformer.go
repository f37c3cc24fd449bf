package orchestrator

import (
	"context"

	"github.com/goliatone/go-parsley/pkg/model"
)

// Transformer mutates a form after it is built and before metadata and binding
// run. Implementations can relabel fields, swap widgets or add fields.
type Transformer interface {
	Transform(ctx context.Context, form *model.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}
