package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/validation"
)

func TestMapViewErrors_OnlyVisibleMessages(t *testing.T) {
	view := model.FormView{
		Fields: []model.FieldView{
			{FieldSpec: model.FieldSpec{Name: model.FieldNameName}, Error: validation.MsgNameRequired, Touched: true, ShowError: true},
			{FieldSpec: model.FieldSpec{Name: model.FieldNameEmail}, Error: validation.MsgEmailInvalid},
			{FieldSpec: model.FieldSpec{Name: model.FieldNamePhone}, Touched: true},
		},
	}

	mapped := render.MapViewErrors(view, " Too many attempts. ", "", "Too many attempts.")

	want := render.ErrorMapping{
		Fields: map[string]string{"name": validation.MsgNameRequired},
		Form:   []string{"Too many attempts."},
	}
	if diff := cmp.Diff(want, mapped); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
	if mapped.Empty() {
		t.Fatalf("expected mapping to be non-empty")
	}
}

func TestMapViewErrors_Empty(t *testing.T) {
	mapped := render.MapViewErrors(model.FormView{})
	if !mapped.Empty() {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := render.MergeFormErrors([]string{"a", " b "}, "b", "", "c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
	if got := render.MergeFormErrors(nil, " "); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}
}
