package vanilla_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-parsley/pkg/fields"
	"github.com/goliatone/go-parsley/pkg/model"
	"github.com/goliatone/go-parsley/pkg/parsley"
	"github.com/goliatone/go-parsley/pkg/render"
	"github.com/goliatone/go-parsley/pkg/renderers/vanilla"
	"github.com/goliatone/go-parsley/pkg/widgets"
)

func boundForm(t *testing.T) *model.Form {
	t.Helper()
	form, err := parsley.Build(func() (*model.Form, error) {
		return model.NewForm("profile",
			fields.Email("email",
				fields.Required(),
				fields.Label("E-mail <b>address</b>"),
				fields.HelpText("<script>alert(1)</script>We never share it"),
			),
			fields.Char("name", fields.MaxLength(10)),
			fields.Choice("color", fields.Choices("r", "Red", "g", "Green"),
				fields.Required(),
				fields.WithWidget(widgets.RadioSelect(fields.Choices("r", "Red", "g", "Green"))),
			),
		)
	})
	if err != nil {
		t.Fatalf("build form: %v", err)
	}
	return form
}

func renderForm(t *testing.T, form *model.Form, options render.RenderOptions) string {
	t.Helper()
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), form, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderer_WritesBoundAttributes(t *testing.T) {
	html := renderForm(t, boundForm(t), render.RenderOptions{Action: "/profile"})

	for _, fragment := range []string{
		`method="post" action="/profile" data-parsley-validate novalidate`,
		`<label for="id_email">E-mail <b>address</b></label>`,
		`<input type="email" name="email" data-parsley-required="true" data-parsley-type="email" id="id_email">`,
		`<input type="text" name="name" data-parsley-maxlength="10" id="id_name">`,
		`<label for="id_color_0">Color</label>`,
		`id="id_color_0"`,
		`We never share it`,
		`<button type="submit">Submit</button>`,
	} {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected fragment %q in:\n%s", fragment, html)
		}
	}
	if strings.Contains(html, "<script") {
		t.Fatalf("help text must be sanitized:\n%s", html)
	}
	if got := strings.Count(html, `data-parsley-required="true"`); got != 3 {
		t.Fatalf("expected required on email and both radio options, got %d:\n%s", got, html)
	}
}

func TestRenderer_ValuesAndErrors(t *testing.T) {
	html := renderForm(t, boundForm(t), render.RenderOptions{
		Method: "patch",
		Values: map[string]any{"name": "Ada", "color": "g"},
		Errors: map[string][]string{
			"email":   {"Already registered"},
			"__all__": {"Please fix the errors below"},
		},
	})

	for _, fragment := range []string{
		`<input type="hidden" name="_method" value="PATCH">`,
		`value="Ada"`,
		`<li>Please fix the errors below</li>`,
		`<li>Already registered</li>`,
		`class="parsley-field parsley-field-required parsley-field-invalid"`,
		`value="g" checked`,
	} {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected fragment %q in:\n%s", fragment, html)
		}
	}
}

func TestRenderer_NamespaceFromMeta(t *testing.T) {
	form, err := parsley.Build(func() (*model.Form, error) {
		form, err := model.NewForm("login", fields.Char("user", fields.Required()))
		if err != nil {
			return nil, err
		}
		form.Meta = &model.Meta{Namespace: "data-check"}
		return form, nil
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	html := renderForm(t, form, render.RenderOptions{Method: "get"})
	if !strings.Contains(html, `method="get" data-check-validate`) {
		t.Fatalf("expected namespaced validate marker:\n%s", html)
	}
	if !strings.Contains(html, `data-check-required="true"`) {
		t.Fatalf("expected namespaced required attr:\n%s", html)
	}
}

func TestRenderer_FieldWithoutWidget(t *testing.T) {
	form := &model.Form{Name: "bare", AutoID: model.DefaultAutoID, Fields: []*model.Field{{Name: "x", Kind: model.KindText}}}
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render(context.Background(), form, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for field without widget")
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer, err := vanilla.New(vanilla.WithSubmitLabel("Save"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != vanilla.Name || !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected renderer identity %q %q", renderer.Name(), renderer.ContentType())
	}
}

func TestRenderer_Theme(t *testing.T) {
	files := fstest.MapFS{
		"acme/field.tmpl": &fstest.MapFile{Data: []byte(`<p class="{{ field.class }}" data-acme>{{ field.control|safe }}</p>`)},
	}
	for _, name := range []string{"form.tmpl", "field.tmpl"} {
		data, err := fs.ReadFile(vanilla.TemplatesFS(), name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		files[name] = &fstest.MapFile{Data: data}
	}
	renderer, err := vanilla.New(vanilla.WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form, err := parsley.Build(func() (*model.Form, error) {
		return model.NewForm("login",
			fields.Email("email", fields.Required()),
			fields.Char("name"),
		)
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	out, err := renderer.Render(context.Background(), form, render.RenderOptions{Theme: &theme.RendererConfig{
		Theme:    "acme",
		Variant:  "dark",
		Partials: map[string]string{vanilla.PartialField: "acme/field.tmpl"},
		Tokens: map[string]string{
			vanilla.ClassTokenPrefix + "field":    "acme-row",
			vanilla.ClassTokenPrefix + "required": "acme-req",
		},
		CSSVars:  map[string]string{"--brand": "#654321"},
		AssetURL: func(key string) string { return "/themes/acme/" + key },
	}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, fragment := range []string{
		`<link rel="stylesheet" href="/themes/acme/forms.stylesheet">`,
		`<form class="parsley-form"`,
		`novalidate data-theme="acme" data-theme-variant="dark" style="--brand: #654321">`,
		`<p class="acme-row acme-req" data-acme><input type="email"`,
		`<p class="acme-row" data-acme><input type="text"`,
	} {
		if !strings.Contains(html, fragment) {
			t.Errorf("expected fragment %q in:\n%s", fragment, html)
		}
	}
	if strings.Contains(html, "parsley-field") {
		t.Fatalf("theme tokens should replace the default field classes:\n%s", html)
	}
}
