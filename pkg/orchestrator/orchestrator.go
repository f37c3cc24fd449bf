package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	internalLoader "github.com/goliatone/go-parsley/internal/openapi/loader"
	internalParser "github.com/goliatone/go-parsley/internal/openapi/parser"
	"github.com/goliatone/go-parsley/pkg/metadata"
	"github.com/goliatone/go-parsley/pkg/model"
	pkgopenapi "github.com/goliatone/go-parsley/pkg/openapi"
	"github.com/goliatone/go-parsley/pkg/parsley"
	"github.com/goliatone/go-parsley/pkg/render"
	"github.com/goliatone/go-parsley/pkg/renderers/jsonattrs"
	"github.com/goliatone/go-parsley/pkg/renderers/vanilla"
	theme "github.com/goliatone/go-theme"
)

const defaultRendererName = vanilla.Name

// ErrOperationNotFound is returned when the requested operation is absent
// from the document.
var ErrOperationNotFound = errors.New("orchestrator: operation not found")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that runs right after the form is
// built.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run after metadata and before
// binding.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithMetadata sets the decorator that attaches per-form metadata, typically
// a *metadata.Decorator or a *metadata.Live.
func WithMetadata(decorator model.Decorator) Option {
	return func(o *Orchestrator) {
		o.metadata = decorator
	}
}

// WithMetadataFS loads metadata documents from fsys.
func WithMetadataFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.metadataFS = fsys
	}
}

// WithBinderOptions configures the binder that runs last.
func WithBinderOptions(options ...parsley.Option) Option {
	return func(o *Orchestrator) {
		o.binderOptions = append(o.binderOptions, options...)
	}
}

// Orchestrator coordinates the pipeline from OpenAPI document to rendered
// output: load, parse, build, transform, metadata, decorators, bind, render.
type Orchestrator struct {
	loader          pkgopenapi.Loader
	parser          pkgopenapi.Parser
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	decorators      []model.Decorator
	metadata        model.Decorator
	metadataFS      fs.FS
	binderOptions   []parsley.Option
	binder          *parsley.Binder
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	initialiseErr   error
}

// New constructs an Orchestrator. Missing dependencies get the built-in
// implementations: the kin-openapi loader and parser, and a registry holding
// the vanilla and attrs renderers.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form from an OpenAPI
// operation.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when Document
	// is supplied.
	Source pkgopenapi.Source

	// Document bypasses the loader.
	Document *pkgopenapi.Document

	// OperationID selects the operation whose request body becomes the form.
	OperationID string

	// Renderer names the renderer to use; empty selects the default.
	Renderer string

	// RenderOptions carries the action, method, values and server-side errors.
	RenderOptions render.RenderOptions

	// ThemeName and ThemeVariant are passed to the theme selector. Empty values
	// select its defaults.
	ThemeName    string
	ThemeVariant string
}

// Generate builds the bound form for req and renders it. The operation's
// method and path fill in RenderOptions.Method and Action when unset.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, op, err := o.build(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}
	options := req.RenderOptions
	if options.Method == "" {
		options.Method = op.Method
	}
	if options.Action == "" {
		options.Action = op.Path
	}
	if options.Theme == nil {
		if options.Theme, err = o.resolveTheme(req); err != nil {
			return nil, err
		}
	}
	output, err := renderer.Render(ctx, form, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Build runs every stage except rendering and returns the bound form.
func (o *Orchestrator) Build(ctx context.Context, req Request) (*model.Form, error) {
	form, _, err := o.build(ctx, req)
	return form, err
}

func (o *Orchestrator) build(ctx context.Context, req Request) (*model.Form, pkgopenapi.Operation, error) {
	var none pkgopenapi.Operation
	if ctx == nil {
		return nil, none, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, none, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, none, err
	}
	if req.OperationID == "" {
		return nil, none, errors.New("orchestrator: operation id is required")
	}

	operations, err := o.operations(ctx, req)
	if err != nil {
		return nil, none, err
	}
	op, ok := operations[req.OperationID]
	if !ok {
		return nil, none, fmt.Errorf("%w: %q", ErrOperationNotFound, req.OperationID)
	}

	form, err := pkgopenapi.FormFromOperation(op)
	if err != nil {
		return nil, none, fmt.Errorf("orchestrator: build form: %w", err)
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, form); err != nil {
			return nil, none, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}

	chain := make([]model.Decorator, 0, len(o.decorators)+2)
	chain = append(chain, o.metadata)
	chain = append(chain, o.decorators...)
	chain = append(chain, o.binder)
	if err := model.Decorate(form, chain...); err != nil {
		return nil, none, fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	return form, op, nil
}

// Operations lists, in sorted order, the operations of req's document that
// have a form-shaped request body.
func (o *Orchestrator) Operations(ctx context.Context, req Request) ([]string, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	operations, err := o.operations(ctx, req)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(operations))
	for id, op := range operations {
		if len(op.RequestBody.Properties) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Renderer resolves a renderer by name, falling back to the default.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err != nil {
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
		if renderer, err = o.registry.Get(""); err != nil {
			return nil, errors.New("orchestrator: no renderers registered")
		}
	}
	return renderer, nil
}

func (o *Orchestrator) operations(ctx context.Context, req Request) (map[string]pkgopenapi.Operation, error) {
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse operations: %w", err)
	}
	return operations, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
		o.registry.MustRegister(jsonattrs.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.metadata == nil && o.metadataFS != nil {
		store, err := metadata.LoadFS(o.metadataFS)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load metadata: %w", err)
			return
		}
		o.metadata = metadata.NewDecorator(store)
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = defaultThemeFallbacks()
	}
	o.binder = parsley.NewBinder(o.binderOptions...)
}
