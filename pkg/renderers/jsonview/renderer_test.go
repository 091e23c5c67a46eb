package jsonview_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signupform/pkg/formstate"
	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/renderers/jsonview"
	"github.com/goliatone/go-signupform/pkg/testsupport"
	"github.com/goliatone/go-signupform/pkg/validation"
)

type decoded struct {
	Phase     string            `json:"phase"`
	Title     string            `json:"title"`
	CanSubmit bool              `json:"can_submit"`
	Hidden    map[string]string `json:"hidden"`
	Fields    []struct {
		Name      string `json:"name"`
		Value     string `json:"value"`
		Error     string `json:"error"`
		ShowError bool   `json:"show_error"`
	} `json:"fields"`
	Submitted map[string]string `json:"submitted"`
}

func renderJSON(t *testing.T, m *formstate.Machine, opts render.RenderOptions) (decoded, string) {
	t.Helper()
	out, err := jsonview.New().Render(testsupport.Context(), m.View(model.DefaultFieldSpecs()), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var doc decoded
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	return doc, string(out)
}

func TestRender_EditingView(t *testing.T) {
	m := formstate.New()
	_ = m.Blur(model.FieldNameEmail, "nope")
	_ = m.Blur(model.FieldNamePassword, "secret")

	doc, raw := renderJSON(t, m, render.RenderOptions{Hidden: map[string]string{render.SessionTokenField: "tok"}})

	if doc.Phase != "editing" || doc.CanSubmit || doc.Title != "Create your account" {
		t.Fatalf("unexpected header: %+v", doc)
	}
	if diff := cmp.Diff(map[string]string{"_session": "tok"}, doc.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
	if doc.Fields[1].Error != validation.MsgEmailInvalid || !doc.Fields[1].ShowError {
		t.Fatalf("expected visible email error, got %+v", doc.Fields[1])
	}
	if strings.Contains(raw, "secret") {
		t.Fatalf("password leaked into JSON: %s", raw)
	}
}

func TestRender_SubmittedView(t *testing.T) {
	m := formstate.New()
	for field, value := range testsupport.ValidValues() {
		_ = m.Change(field, value)
	}
	if ok, err := m.Submit(); !ok || err != nil {
		t.Fatalf("submit: %v %v", ok, err)
	}

	doc, raw := renderJSON(t, m, render.RenderOptions{})
	want := map[string]string{
		"name":  testsupport.ValidName,
		"email": testsupport.ValidEmail,
		"phone": testsupport.ValidPhone,
	}
	if diff := cmp.Diff(want, doc.Submitted); diff != "" {
		t.Fatalf("submitted mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(raw, testsupport.ValidPassword) {
		t.Fatalf("password leaked into JSON")
	}
	if doc.Title != "Account created" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
}
