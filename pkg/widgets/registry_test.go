package widgets

import (
	"testing"

	"github.com/goliatone/go-parsley/pkg/model"
)

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  *model.Field
		expect string
	}{
		{name: "text fallback", field: &model.Field{Kind: model.KindText}, expect: WidgetText},
		{name: "regex as text", field: &model.Field{Kind: model.KindRegex}, expect: WidgetText},
		{name: "email", field: &model.Field{Kind: model.KindEmail}, expect: WidgetEmail},
		{name: "url", field: &model.Field{Kind: model.KindURL}, expect: WidgetURL},
		{name: "integer", field: &model.Field{Kind: model.KindInteger}, expect: WidgetNumber},
		{name: "float", field: &model.Field{Kind: model.KindFloat}, expect: WidgetNumber},
		{name: "boolean", field: &model.Field{Kind: model.KindBoolean}, expect: WidgetCheckbox},
		{name: "choice", field: &model.Field{Kind: model.KindChoice}, expect: WidgetSelect},
		{name: "multiple choice", field: &model.Field{Kind: model.KindMultipleChoice}, expect: WidgetSelectMultiple},
		{
			name:   "composite by children",
			field:  &model.Field{Kind: model.KindText, Fields: []*model.Field{{Name: "a"}}},
			expect: WidgetMulti,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(tc.field)
			if !ok {
				t.Fatalf("expected resolution for %s", tc.name)
			}
			if got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.expect, got)
			}
		})
	}
}

func TestResolve_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register("radio", 999, func(field *model.Field) bool {
		return field.Kind == model.KindChoice
	}, func(field *model.Field) model.Widget {
		return RadioSelect(field.Choices)
	})

	field := &model.Field{Kind: model.KindChoice}
	got, ok := reg.Resolve(field)
	if !ok || got != "radio" {
		t.Fatalf("priority matcher should win, got %q (ok=%v)", got, ok)
	}
	widget, ok := reg.Build(field)
	if !ok {
		t.Fatalf("expected widget")
	}
	if _, isGroup := widget.(model.ChoiceWidget); !isGroup {
		t.Fatalf("expected choice widget, got %T", widget)
	}
}

func TestResolve_EmptyRegistry(t *testing.T) {
	reg := &Registry{}
	if _, ok := reg.Resolve(&model.Field{Kind: model.KindText}); ok {
		t.Fatalf("empty registry should not resolve")
	}
}

func TestDecorate_AssignsWidgetsBottomUp(t *testing.T) {
	reg := NewRegistry()
	day := &model.Field{Name: "day", Kind: model.KindInteger}
	month := &model.Field{Name: "month", Kind: model.KindInteger}
	custom := EmailInput()

	form := &model.Form{Fields: []*model.Field{
		{Name: "born", Kind: model.KindComposite, Fields: []*model.Field{day, month}},
		{Name: "contact", Kind: model.KindText, Widget: custom},
	}}

	if err := reg.Decorate(form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	multi, ok := form.Fields[0].Widget.(*MultiWidget)
	if !ok {
		t.Fatalf("expected multi widget, got %T", form.Fields[0].Widget)
	}
	if len(multi.Widgets()) != 2 || multi.Widgets()[0] != day.Widget || multi.Widgets()[1] != month.Widget {
		t.Fatalf("multi widget should share child widgets")
	}
	if form.Fields[1].Widget != custom {
		t.Fatalf("existing widget must be preserved")
	}
	if step := day.Attrs()["step"]; step != "" {
		t.Fatalf("integer widget should not carry step, got %q", step)
	}
}
