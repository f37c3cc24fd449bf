package metadata_test

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-parsley/pkg/fields"
	"github.com/goliatone/go-parsley/pkg/metadata"
	"github.com/goliatone/go-parsley/pkg/model"
	"github.com/goliatone/go-parsley/pkg/parsley"
)

func TestLoadFS_MixedFormats(t *testing.T) {
	store, err := metadata.LoadFS(os.DirFS("testdata/basic"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"contact", "settings", "signup"}, store.Forms()); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}

	signup, ok := store.Meta("signup")
	if !ok {
		t.Fatalf("signup metadata missing")
	}
	want := &model.Meta{
		Namespace: "data-parsley",
		Extras: map[string]map[string]any{
			"confirm": {"equalto": "password", "equalto-message": "Passwords must match"},
		},
	}
	if diff := cmp.Diff(want, signup); diff != "" {
		t.Fatalf("signup mismatch (-want +got):\n%s", diff)
	}

	contact, _ := store.Meta("contact")
	if contact.Namespace != "" || contact.Extras["message"]["required"] != true {
		t.Fatalf("contact metadata not parsed: %#v", contact)
	}

	settings, _ := store.Meta("settings")
	if settings.Namespace != "data-check" || model.FormatValue(settings.Extras["retries"]["min"]) != "1" {
		t.Fatalf("toml metadata not parsed: %#v", settings)
	}
	if source, _ := store.Source("settings"); source != "settings.toml" {
		t.Fatalf("source mismatch: %q", source)
	}
}

func TestLoadFS_MetaIsCopied(t *testing.T) {
	store, err := metadata.LoadFS(os.DirFS("testdata/basic"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first, _ := store.Meta("signup")
	first.Extras["confirm"]["equalto"] = "mutated"

	second, _ := store.Meta("signup")
	if second.Extras["confirm"]["equalto"] != "password" {
		t.Fatalf("store leaked a mutable reference")
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := []struct {
		name string
		fsys fstest.MapFS
		want string
	}{
		{
			name: "duplicate across files",
			want: "duplicate form",
		},
		{
			name: "empty file",
			fsys: fstest.MapFS{"empty.yaml": &fstest.MapFile{Data: []byte("  \n")}},
			want: "is empty",
		},
		{
			name: "invalid json",
			fsys: fstest.MapFS{"broken.json": &fstest.MapFile{Data: []byte("{forms:")}},
			want: "parse broken.json",
		},
		{
			name: "empty form name",
			fsys: fstest.MapFS{"blank.json": &fstest.MapFile{Data: []byte(`{"forms":{" ":{}}}`)}},
			want: "empty form name",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			if tc.fsys == nil {
				_, err = metadata.LoadFS(os.DirFS("testdata/duplicate"))
			} else {
				_, err = metadata.LoadFS(tc.fsys)
			}
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	store, err := metadata.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func TestParse(t *testing.T) {
	store, err := metadata.Parse([]byte("[forms.login]\nnamespace = \"data-login\"\n"), "toml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	meta, ok := store.Meta("login")
	if !ok || meta.Namespace != "data-login" {
		t.Fatalf("unexpected meta %#v", meta)
	}
	if _, err := metadata.Parse([]byte("x"), "ini"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestDecorator_FeedsBinder(t *testing.T) {
	store, err := metadata.LoadFS(os.DirFS("testdata/basic"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form, err := model.NewForm("settings", fields.Integer("retries"))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	if err := model.Decorate(form, metadata.NewDecorator(store), parsley.NewBinder()); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	retries, _ := form.Field("retries")
	want := model.Attrs{"data-check-min": "1", "data-check-type": "digits"}
	if diff := cmp.Diff(want, retries.Attrs()); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge(t *testing.T) {
	base := &model.Meta{Namespace: "data-a", Extras: map[string]map[string]any{
		"x": {"trigger": "change", "min": 1},
	}}
	override := &model.Meta{Extras: map[string]map[string]any{
		"x": {"min": 2},
		"y": {"required": true},
	}}

	got := metadata.Merge(base, override)
	want := &model.Meta{Namespace: "data-a", Extras: map[string]map[string]any{
		"x": {"trigger": "change", "min": 2},
		"y": {"required": true},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
	if base.Extras["x"]["min"] != 1 {
		t.Fatalf("merge mutated its input")
	}
}
