package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAttrs_SetStringifies(t *testing.T) {
	attrs := Attrs{}
	attrs.Set("flag", true)
	attrs.Set("off", false)
	attrs.Set("count", 10)
	attrs.Set("ratio", 2.5)
	attrs.Set("whole", float64(3))
	attrs.Set("text", "hello")

	want := Attrs{
		"flag":  "true",
		"off":   "false",
		"count": "10",
		"ratio": "2.5",
		"whole": "3",
		"text":  "hello",
	}
	if diff := cmp.Diff(want, attrs); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestAttrs_HTMLSortedAndEscaped(t *testing.T) {
	attrs := Attrs{
		"data-parsley-required-message": `Say "hi" & go`,
		"class":                         "input",
		"":                              "skipped",
	}
	want := ` class="input" data-parsley-required-message="Say &#34;hi&#34; &amp; go"`
	if got := attrs.HTML(); got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestAttrs_CloneIsIndependent(t *testing.T) {
	attrs := Attrs{"a": "1"}
	clone := attrs.Clone()
	clone["b"] = "2"
	if _, ok := attrs["b"]; ok {
		t.Fatalf("clone mutated original")
	}
}

func TestParsePattern(t *testing.T) {
	pattern, err := ParsePattern(`(?i)^[a-z]+$`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(&Pattern{Source: `^[a-z]+$`, IgnoreCase: true}, pattern); diff != "" {
		t.Fatalf("pattern mismatch (-want +got):\n%s", diff)
	}
	re, err := pattern.Compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !re.MatchString("ABC") {
		t.Fatalf("expected case-insensitive match")
	}

	if _, err := ParsePattern(`([a-z`); !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestPrettyName(t *testing.T) {
	cases := map[string]string{
		"confirm_password": "Confirm password",
		"firstName":        "First name",
		"zip-code":         "Zip code",
		"":                 "",
	}
	for input, want := range cases {
		if got := PrettyName(input); got != want {
			t.Fatalf("PrettyName(%q): want %q, got %q", input, want, got)
		}
	}
}
