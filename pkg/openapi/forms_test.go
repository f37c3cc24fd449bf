package openapi_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-parsley/pkg/model"
	"github.com/goliatone/go-parsley/pkg/openapi"
	"github.com/goliatone/go-parsley/pkg/parsley"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func signupOperation() openapi.Operation {
	return openapi.Operation{
		ID:     "createAccount",
		Method: "POST",
		Path:   "/accounts",
		Extensions: map[string]any{openapi.ExtensionKey: map[string]any{
			"namespace": "data-acct",
			"extras":    map[string]any{"confirm": map[string]any{"equalto": "password"}},
		}},
		RequestBody: openapi.Schema{
			Type:     "object",
			Required: []string{"email", "password"},
			Extensions: map[string]any{openapi.ExtensionKey: map[string]any{
				"order": []any{"email", "password", "confirm"},
			}},
			Properties: map[string]openapi.Schema{
				"email": {Type: "string", Format: "email", Extensions: map[string]any{
					openapi.ExtensionKey: map[string]any{"messages": map[string]any{"required": "Need it"}},
				}},
				"password": {Type: "string", Format: "password", MinLength: intPtr(8)},
				"confirm":  {Type: "string", Format: "password"},
				"username": {Type: "string", Pattern: "^[a-z]+$", Extensions: map[string]any{
					openapi.ExtensionKey: map[string]any{"flags": "i"},
				}},
				"site":   {Type: "string", Format: "uri"},
				"age":    {Type: "integer", Minimum: floatPtr(13)},
				"ratio":  {Type: "number", Format: "float"},
				"budget": {Type: "number", Maximum: floatPtr(1000)},
				"agree":  {Type: "boolean", Title: "I agree"},
				"plan": {Type: "string", Enum: []any{"free", "pro"}, Extensions: map[string]any{
					openapi.ExtensionKey: map[string]any{"labels": map[string]any{"pro": "Professional"}},
				}},
				"topics": {Type: "array", Items: &openapi.Schema{Type: "string", Enum: []any{"go", "zig"}}},
				"files":  {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"period": {Type: "object", Required: []string{"start"}, Properties: map[string]openapi.Schema{
					"start": {Type: "integer"},
					"end":   {Type: "integer"},
				}},
			},
		},
	}
}

func TestFormFromOperation_Kinds(t *testing.T) {
	form, err := openapi.FormFromOperation(signupOperation())
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	names := make([]string, 0, len(form.Fields))
	kinds := make(map[string]model.Kind, len(form.Fields))
	for _, field := range form.Fields {
		names = append(names, field.Name)
		kinds[field.Name] = field.Kind
	}

	wantNames := []string{"email", "password", "confirm", "age", "agree", "budget", "period", "plan", "ratio", "site", "topics", "username"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	wantKinds := map[string]model.Kind{
		"email":    model.KindEmail,
		"password": model.KindText,
		"confirm":  model.KindText,
		"age":      model.KindInteger,
		"agree":    model.KindBoolean,
		"budget":   model.KindDecimal,
		"period":   model.KindComposite,
		"plan":     model.KindChoice,
		"ratio":    model.KindFloat,
		"site":     model.KindURL,
		"topics":   model.KindMultipleChoice,
		"username": model.KindRegex,
	}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}

	plan, _ := form.Field("plan")
	wantChoices := []model.Choice{{Value: "free", Label: "free"}, {Value: "pro", Label: "Professional"}}
	if diff := cmp.Diff(wantChoices, plan.Choices); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}

	username, _ := form.Field("username")
	if username.Pattern == nil || !username.Pattern.IgnoreCase {
		t.Fatalf("expected case-insensitive pattern, got %#v", username.Pattern)
	}

	agree, _ := form.Field("agree")
	if agree.Label != "I agree" {
		t.Fatalf("title should become the label, got %q", agree.Label)
	}

	if form.Meta == nil || form.Meta.Namespace != "data-acct" || form.Meta.Extras["confirm"]["equalto"] != "password" {
		t.Fatalf("operation extension not mapped: %#v", form.Meta)
	}
}

func TestFormFromOperation_Binds(t *testing.T) {
	form, err := openapi.FormFromOperation(signupOperation())
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if err := parsley.Bind(form); err != nil {
		t.Fatalf("bind: %v", err)
	}

	cases := map[string]model.Attrs{
		"email": {
			"data-acct-required":         "true",
			"data-acct-required-message": "Need it",
			"data-acct-type":             "email",
		},
		"password": {
			"data-acct-required":  "true",
			"data-acct-minlength": "8",
		},
		"confirm": {"data-acct-equalto": "#id_password"},
		"age":     {"data-acct-min": "13", "data-acct-type": "digits"},
		"budget":  {"data-acct-max": "1000", "data-acct-type": "number", "step": "any"},
		"username": {
			"data-acct-regexp":      "^[a-z]+$",
			"data-acct-regexp-flag": "i",
		},
	}

	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			field, ok := form.Field(name)
			if !ok {
				t.Fatalf("field %q missing", name)
			}
			if diff := cmp.Diff(want, field.Attrs()); diff != "" {
				t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
			}
		})
	}

	period, _ := form.Field("period")
	start := period.Fields[1]
	if start.Name != "start" || start.Attrs()["data-parsley-required"] != "true" {
		t.Fatalf("composite children bind with the default prefix, got %v", start.Attrs())
	}
}

func TestForms(t *testing.T) {
	forms, err := openapi.Forms(map[string]openapi.Operation{
		"createAccount": signupOperation(),
		"listAccounts":  {ID: "listAccounts", Method: "GET", Path: "/accounts"},
	})
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	if _, ok := forms["listAccounts"]; ok {
		t.Fatalf("operations without a body should be skipped")
	}
	if _, ok := forms["createAccount"]; !ok {
		t.Fatalf("createAccount form missing")
	}
}

func TestFieldFromSchema_InvalidPattern(t *testing.T) {
	_, err := openapi.FieldFromSchema("code", openapi.Schema{Type: "string", Pattern: "(["}, false)
	if !errors.Is(err, model.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestSourceFor(t *testing.T) {
	remote, err := openapi.SourceFor("https://example.com/api.yaml")
	if err != nil || remote.Kind() != openapi.SourceKindURL {
		t.Fatalf("expected url source, got %v %v", remote, err)
	}
	local, err := openapi.SourceFor("./api.yaml")
	if err != nil || local.Kind() != openapi.SourceKindFile || local.Location() != "api.yaml" {
		t.Fatalf("expected file source, got %v %v", local, err)
	}
	if _, err := openapi.SourceFor(" "); err == nil {
		t.Fatalf("expected error for empty location")
	}
}
