package render

import (
	"context"

	"github.com/goliatone/go-parsley/pkg/model"
)

// Renderer converts a bound form into a byte representation (HTML, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form *model.Form, options RenderOptions) ([]byte, error)
}
