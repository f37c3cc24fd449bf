package parsley

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-parsley/pkg/openapi"
	binding "github.com/goliatone/go-parsley/pkg/parsley"
	"github.com/goliatone/go-parsley/pkg/testsupport"
)

func TestParseForms(t *testing.T) {
	forms, err := ParseForms(context.Background(), testsupport.SignupYAML)
	if err != nil {
		t.Fatalf("parse forms: %v", err)
	}

	names := make([]string, 0, len(forms))
	for name := range forms {
		names = append(names, name)
	}
	if len(names) != 2 || forms["createAccount"] == nil || forms["updatePreferences"] == nil {
		t.Fatalf("unexpected forms %v", names)
	}

	form := forms["createAccount"]
	if len(form.Fields[0].Attrs()) != 0 {
		t.Fatalf("parsed forms must not be bound yet")
	}
	if err := binding.Bind(form); err != nil {
		t.Fatalf("bind: %v", err)
	}
	email, _ := form.Field("email")
	want := map[string]string{
		"data-parsley-required":         "true",
		"data-parsley-required-message": "We need your e-mail",
		"data-parsley-type":             "email",
	}
	if diff := cmp.Diff(want, map[string]string(email.Attrs())); diff != "" {
		t.Fatalf("email attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(context.Background(), pkgopenapi.SourceFromFile(testsupport.WriteSignupFixture(t)), "updatePreferences", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `action="/accounts/{id}/preferences"`) || !strings.Contains(html, `value="PUT"`) || !strings.Contains(html, `name="period_1"`) {
		t.Fatalf("unexpected output:\n%s", html)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	for name, fsys := range map[string]fs.FS{"form.tmpl": EmbeddedTemplates(), "input.tmpl": WidgetTemplates()} {
		if _, err := fs.ReadFile(fsys, name); err != nil {
			t.Fatalf("expected %s to be embedded: %v", name, err)
		}
	}
}
