package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-parsley/internal/markup"
	"github.com/goliatone/go-parsley/pkg/model"
	"github.com/goliatone/go-parsley/pkg/parsley"
	"github.com/goliatone/go-parsley/pkg/render"
	rendertemplate "github.com/goliatone/go-parsley/pkg/render/template"
	gotemplate "github.com/goliatone/go-parsley/pkg/render/template/gotemplate"
	theme "github.com/goliatone/go-theme"
)

// Name is the registry key of the vanilla renderer.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	submitLabel      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide form.tmpl and field.tmpl, plus any partial a theme names.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// Renderer writes a bound form as an HTML <form> whose inputs carry the
// widget attribute bags, so Parsley picks the constraints up client side.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	submitLabel string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), submitLabel: "Submit"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, submitLabel: cfg.submitLabel}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, form *model.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if form == nil {
		return nil, fmt.Errorf("vanilla renderer: form is nil")
	}

	errs := render.MapErrors(form, options.Errors)
	classes := chromeClasses(options.Theme)
	fields := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		view, err := fieldView(form, field, options.Values, errs.Fields, classes)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		fields = append(fields, view)
	}

	formTemplate := partial(options.Theme, PartialForm, "form")
	method, override := resolveMethod(options.Method)
	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"form":            form,
		"fields":          fields,
		"field_template":  withExtension(partial(options.Theme, PartialField, "field")),
		"action":          options.Action,
		"method":          method,
		"method_override": override,
		"namespace":       parsley.Namespace(form),
		"form_errors":     render.MergeFormErrors(options.FormErrors, errs.Form...),
		"submit":          r.submitLabel,
		"classes":         classes,
		"theme":           themeView(options.Theme),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template %q: %w", formTemplate, err)
	}
	return []byte(result), nil
}

// partial returns the template the theme maps key to, or fallback.
func partial(cfg *theme.RendererConfig, key, fallback string) string {
	if cfg == nil {
		return fallback
	}
	if name := strings.TrimSpace(cfg.Partials[key]); name != "" {
		return name
	}
	return fallback
}

func withExtension(name string) string {
	if strings.HasSuffix(name, ".tmpl") {
		return name
	}
	return name + ".tmpl"
}

func themeView(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil {
		return map[string]string{}
	}
	view := map[string]string{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"style":   cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		view["stylesheet"] = cfg.AssetURL(AssetStylesheet)
	}
	return view
}

// cssVarsStyle joins custom properties into an inline style in key order.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.HasPrefix(key, "--") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}

// resolveMethod maps verbs browsers cannot submit onto POST plus a hidden
// _method input.
func resolveMethod(raw string) (method, override string) {
	switch verb := strings.ToLower(strings.TrimSpace(raw)); verb {
	case "":
		return "post", ""
	case "get", "post":
		return verb, ""
	default:
		return "post", strings.ToUpper(verb)
	}
}

func fieldView(form *model.Form, field *model.Field, values map[string]any, errs map[string][]string, chrome map[string]string) (map[string]any, error) {
	if field.Widget == nil {
		return nil, fmt.Errorf("field %q has no widget", field.Name)
	}

	var extra model.Attrs
	if id := form.WidgetID(field); id != "" {
		extra = model.Attrs{"id": id}
	}
	control, err := field.Widget.Render(form.HTMLName(field.Name), fieldValue(field, values), extra)
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", field.Name, err)
	}

	labelFor, err := form.IDForLabel(field.Name)
	if err != nil {
		return nil, err
	}

	classes := []string{chrome["field"]}
	if field.Required {
		classes = append(classes, chrome["required"])
	}
	messages := fieldErrors(field, errs)
	if len(messages) > 0 {
		classes = append(classes, chrome["invalid"])
	}

	return map[string]any{
		"name":      field.Name,
		"class":     strings.Join(classes, " "),
		"label":     markup.Inline(field.LabelText()),
		"label_for": labelFor,
		"control":   control,
		"help":      markup.Inline(field.HelpText),
		"errors":    messages,
	}, nil
}

// fieldValue prefers a submitted value over the field's initial one. Composite
// fields collect dotted child values in declaration order.
func fieldValue(field *model.Field, values map[string]any) any {
	if value, ok := values[field.Name]; ok {
		return value
	}
	if field.IsComposite() {
		parts := make([]any, len(field.Fields))
		found := false
		for idx, child := range field.Fields {
			if value, ok := values[field.Name+"."+child.Name]; ok {
				parts[idx] = value
				found = true
				continue
			}
			parts[idx] = child.Initial
		}
		if found {
			return parts
		}
	}
	return field.Initial
}

func fieldErrors(field *model.Field, errs map[string][]string) []string {
	messages := append([]string(nil), errs[field.Name]...)
	for _, child := range field.Fields {
		messages = append(messages, errs[field.Name+"."+child.Name]...)
	}
	return messages
}
