// Package parsley turns OpenAPI request bodies into HTML forms whose inputs
// carry Parsley validation attributes (data-parsley-*).
//
// Most callers need a single call:
//
//	html, err := parsley.GenerateHTML(ctx, openapi.SourceFromFile("api.yaml"), "createAccount", "")
//
// The building blocks live under pkg/: model and fields describe forms,
// pkg/parsley derives and binds the attributes, widgets and renderers produce
// markup, metadata supplies per-form rules and orchestrator wires them up.
package parsley

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-parsley/pkg/model"
	pkgopenapi "github.com/goliatone/go-parsley/pkg/openapi"
	"github.com/goliatone/go-parsley/pkg/orchestrator"
	"github.com/goliatone/go-parsley/pkg/render"
	"github.com/goliatone/go-parsley/pkg/renderers/vanilla"
	"github.com/goliatone/go-parsley/pkg/widgets"
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describes per-request overrides that renderers use to prefill
// values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the module root.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme and variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// GenerateHTML loads source, builds and binds the form for operationID and
// renders it with the named renderer (vanilla when empty).
func GenerateHTML(ctx context.Context, source pkgopenapi.Source, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// GenerateHTMLFromDocument renders a form from a pre-loaded document.
func GenerateHTMLFromDocument(ctx context.Context, doc pkgopenapi.Document, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document:    &doc,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// ParseForms parses an OpenAPI document and returns one unbound form per
// operation with a form-shaped request body, keyed by operation id.
func ParseForms(ctx context.Context, data []byte, options ...pkgopenapi.ParserOption) (map[string]*model.Form, error) {
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFS("document"), data)
	if err != nil {
		return nil, err
	}
	operations, err := NewParser(options...).Operations(ctx, doc)
	if err != nil {
		return nil, err
	}
	return pkgopenapi.Forms(operations)
}

// EmbeddedTemplates exposes the built-in form templates so callers can copy
// or extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// WidgetTemplates exposes the built-in widget templates.
func WidgetTemplates() fs.FS {
	return widgets.TemplatesFS()
}
