package fields

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-parsley/pkg/model"
	"github.com/goliatone/go-parsley/pkg/widgets"
)

func TestConstructors_AssignKindAndWidget(t *testing.T) {
	cases := []struct {
		name   string
		field  *model.Field
		kind   model.Kind
		widget any
	}{
		{name: "char", field: Char("title"), kind: model.KindText, widget: &widgets.Input{}},
		{name: "integer", field: Integer("age"), kind: model.KindInteger, widget: &widgets.Input{}},
		{name: "email", field: Email("email"), kind: model.KindEmail, widget: &widgets.Input{}},
		{name: "boolean", field: Boolean("terms"), kind: model.KindBoolean, widget: &widgets.CheckboxInput{}},
		{name: "choice", field: Choice("size", Choices("s", "Small")), kind: model.KindChoice, widget: &widgets.Select{}},
		{name: "composite", field: Composite("born", []*model.Field{Integer("day")}), kind: model.KindComposite, widget: &widgets.MultiWidget{}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if tc.field.Kind != tc.kind {
				t.Fatalf("kind: want %q, got %q", tc.kind, tc.field.Kind)
			}
			if tc.field.Widget == nil {
				t.Fatalf("expected a default widget")
			}
			gotType := typeName(tc.field.Widget)
			wantType := typeName(tc.widget)
			if gotType != wantType {
				t.Fatalf("widget: want %s, got %s", wantType, gotType)
			}
		})
	}
}

func TestOptions_ApplyBoundsAndMessages(t *testing.T) {
	field := Decimal("price",
		Required(),
		MinValue(1.5),
		MaxValue(100),
		Message(model.MessageRequired, "Price please"),
		Messages(map[string]string{model.MessageMinValue: "Too cheap"}),
	)

	if !field.Required {
		t.Fatalf("expected required")
	}
	if field.MinValue == nil || *field.MinValue != 1.5 || field.MaxValue == nil || *field.MaxValue != 100 {
		t.Fatalf("unexpected bounds %v %v", field.MinValue, field.MaxValue)
	}
	want := map[string]string{
		model.MessageRequired: "Price please",
		model.MessageMinValue: "Too cheap",
	}
	if diff := cmp.Diff(want, field.Messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if step := field.Attrs()["step"]; step != "any" {
		t.Fatalf("decimal widget should allow any step, got %q", step)
	}
}

func TestWithAttrs_AppliesAfterWidgetResolution(t *testing.T) {
	field := Char("nick", WithAttrs(model.Attrs{"id": "nickname", "class": "wide"}))
	want := model.Attrs{"id": "nickname", "class": "wide"}
	if diff := cmp.Diff(want, field.Attrs()); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}

	radio := widgets.RadioSelect(Choices("a", "A"))
	custom := Choice("pick", Choices("a", "A"), WithAttrs(model.Attrs{"class": "inline"}), WithWidget(radio))
	if custom.Widget != radio {
		t.Fatalf("explicit widget should be kept")
	}
	if radio.Attrs()["class"] != "inline" {
		t.Fatalf("attrs should land on the explicit widget")
	}
}

func TestRegex(t *testing.T) {
	field, err := Regex("code", `(?i)^[a-z]{3}$`, Message(model.MessageInvalid, "Three letters"))
	if err != nil {
		t.Fatalf("regex: %v", err)
	}
	if field.Kind != model.KindRegex {
		t.Fatalf("kind: want regex, got %q", field.Kind)
	}
	if diff := cmp.Diff(&model.Pattern{Source: `^[a-z]{3}$`, IgnoreCase: true}, field.Pattern); diff != "" {
		t.Fatalf("pattern mismatch (-want +got):\n%s", diff)
	}

	sensitive := MustRegex("slug", `^[a-z-]+$`, IgnoreCase())
	if !sensitive.Pattern.IgnoreCase {
		t.Fatalf("IgnoreCase option should set the flag")
	}

	if _, err := Regex("bad", `(`); !errors.Is(err, model.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestChoices_IgnoresDanglingValue(t *testing.T) {
	got := Choices("a", "Alpha", "b")
	want := []model.Choice{{Value: "a", Label: "Alpha"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *widgets.Input:
		return "Input"
	case *widgets.CheckboxInput:
		return "CheckboxInput"
	case *widgets.Select:
		return "Select"
	case *widgets.MultiWidget:
		return "MultiWidget"
	case *widgets.ChoiceGroup:
		return "ChoiceGroup"
	default:
		return "unknown"
	}
}
