package openapi_test

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-parsley/pkg/openapi"
)

func TestLint_CleanOperation(t *testing.T) {
	ops := map[string]openapi.Operation{"createAccount": signupOperation()}
	if got := openapi.Lint(ops); len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}

func TestLint_Violations(t *testing.T) {
	op := openapi.Operation{
		ID: "broken",
		Extensions: map[string]any{
			"x-parsley": map[string]any{
				"namespace": 3,
				"theme":     "dark",
				"extras": map[string]any{
					"confirm": map[string]any{"equalto": "missing"},
					"ghost":   map[string]any{"trigger": "change"},
				},
			},
		},
		RequestBody: openapi.Schema{
			Type: "object",
			Extensions: map[string]any{
				"x-parsley": map[string]any{"order": []any{"confirm", "nope"}},
			},
			Properties: map[string]openapi.Schema{
				"confirm": {Type: "string"},
				"code": {
					Type:    "string",
					Pattern: "[a-z",
					Extensions: map[string]any{
						"x-parsley": map[string]any{
							"flags":    "ig",
							"messages": map[string]any{"required": "Needed", "typo": "x"},
						},
					},
				},
				"plan": {
					Type: "string",
					Enum: []any{"free"},
					Extensions: map[string]any{
						"x-parsley": map[string]any{"labels": map[string]any{"free": "Free", "gold": "Gold"}},
					},
				},
				"nickname": {
					Type:       "string",
					Extensions: map[string]any{"x-parsley": "oops"},
				},
			},
		},
	}

	_, patternErr := regexp.Compile("[a-z")

	var got []string
	for _, v := range openapi.Lint(map[string]openapi.Operation{"broken": op}) {
		got = append(got, v.String())
	}
	want := []string{
		`operation > broken > requestBody > properties.code > pattern -> invalid pattern: ` + patternErr.Error(),
		`operation > broken > requestBody > properties.code > x-parsley > flags -> unsupported flags "ig" (supported: i)`,
		`operation > broken > requestBody > properties.code > x-parsley > messages -> unknown message kind "typo" (supported: invalid, max_length, max_value, min_length, min_value, required)`,
		`operation > broken > requestBody > properties.nickname > x-parsley -> x-parsley must be an object, found string`,
		`operation > broken > requestBody > properties.plan > x-parsley > labels -> label for "gold" does not match an enum value`,
		`operation > broken > requestBody > x-parsley > order -> property "nope" does not exist`,
		`operation > broken > x-parsley -> unsupported x-parsley key "theme" (supported: extras, namespace)`,
		`operation > broken > x-parsley > extras > confirm > equalto -> target field "missing" does not exist`,
		`operation > broken > x-parsley > extras > ghost -> field "ghost" is not a request body property`,
		`operation > broken > x-parsley > namespace -> must be a string, found int`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}
