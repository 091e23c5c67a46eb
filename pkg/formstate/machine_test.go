package formstate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/validation"
)

func fillValid(t *testing.T, m *Machine) {
	t.Helper()
	valid := model.Values{
		model.FieldNameName:     "Ada Lovelace",
		model.FieldNameEmail:    "ada@example.com",
		model.FieldNamePhone:    "123 456 7890",
		model.FieldNamePassword: "Abcdef1!",
	}
	for _, field := range model.Fields() {
		if err := m.Change(field, valid[field]); err != nil {
			t.Fatalf("change %s: %v", field, err)
		}
	}
}

func TestMachine_InitialState(t *testing.T) {
	m := New()

	if m.Phase() != model.PhaseEditing {
		t.Fatalf("expected editing phase, got %s", m.Phase())
	}
	if diff := cmp.Diff(model.NewValues(), m.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(m.Errors()) != 0 || len(m.Touched()) != 0 {
		t.Fatalf("expected no errors and no touched fields")
	}
	if m.CanSubmit() {
		t.Fatalf("empty form must not be submittable")
	}
}

func TestMachine_ChangeOnUntouchedFieldHidesError(t *testing.T) {
	m := New()

	if err := m.Change(model.FieldNameEmail, "not-an-email"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if _, ok := m.Errors()[model.FieldNameEmail]; ok {
		t.Fatalf("untouched field must not be validated on change")
	}
	field, _ := m.View(nil).Field(model.FieldNameEmail)
	if field.ShowError || field.Success {
		t.Fatalf("untouched field should show neither error nor success: %+v", field)
	}
}

func TestMachine_BlurRevealsAndChangeUpdatesLive(t *testing.T) {
	m := New()

	if err := m.Blur(model.FieldNameEmail, "abc"); err != nil {
		t.Fatalf("blur: %v", err)
	}
	field, _ := m.View(nil).Field(model.FieldNameEmail)
	if !field.ShowError || field.Error != validation.MsgEmailInvalid {
		t.Fatalf("expected invalid email to be shown, got %+v", field)
	}

	if err := m.Change(model.FieldNameEmail, "a@b.c"); err != nil {
		t.Fatalf("change: %v", err)
	}
	field, _ = m.View(nil).Field(model.FieldNameEmail)
	if field.ShowError || !field.Success {
		t.Fatalf("expected live revalidation to clear the error, got %+v", field)
	}

	if err := m.Change(model.FieldNameEmail, ""); err != nil {
		t.Fatalf("change: %v", err)
	}
	field, _ = m.View(nil).Field(model.FieldNameEmail)
	if field.Error != validation.MsgEmailRequired || !field.ShowError {
		t.Fatalf("expected required message after clearing, got %+v", field)
	}
}

func TestMachine_SubmitInvalidMarksAllTouched(t *testing.T) {
	m := New()
	if err := m.Change(model.FieldNameName, "Ada"); err != nil {
		t.Fatalf("change: %v", err)
	}

	ok, err := m.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ok {
		t.Fatalf("expected submit to fail")
	}
	if m.Phase() != model.PhaseEditing {
		t.Fatalf("expected to stay editing")
	}

	wantTouched := model.Touched{
		model.FieldNameName:     true,
		model.FieldNameEmail:    true,
		model.FieldNamePhone:    true,
		model.FieldNamePassword: true,
	}
	if diff := cmp.Diff(wantTouched, m.Touched()); diff != "" {
		t.Fatalf("touched mismatch (-want +got):\n%s", diff)
	}

	wantVisible := model.Errors{
		model.FieldNameEmail:    validation.MsgEmailRequired,
		model.FieldNamePhone:    validation.MsgPhoneRequired,
		model.FieldNamePassword: validation.MsgPasswordRequired,
	}
	if diff := cmp.Diff(wantVisible, m.View(nil).VisibleErrors()); diff != "" {
		t.Fatalf("visible errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMachine_SubmitValidTransitions(t *testing.T) {
	var recorded []model.Values
	m := New(WithSubmitHook(func(values model.Values) {
		recorded = append(recorded, values)
	}))
	fillValid(t, m)

	if !m.CanSubmit() {
		t.Fatalf("expected form to be submittable")
	}
	ok, err := m.Submit()
	if err != nil || !ok {
		t.Fatalf("expected successful submit, got ok=%v err=%v", ok, err)
	}
	if m.Phase() != model.PhaseSubmitted {
		t.Fatalf("expected submitted phase")
	}
	view := m.View(nil)
	if len(view.VisibleErrors()) != 0 {
		t.Fatalf("expected no visible errors, got %v", view.VisibleErrors())
	}
	if len(recorded) != 1 || recorded[0][model.FieldNameEmail] != "ada@example.com" {
		t.Fatalf("submit hook not called with values: %v", recorded)
	}
	if view.Submitted[model.FieldNameName] != "Ada Lovelace" {
		t.Fatalf("expected submitted values in view")
	}
}

func TestMachine_ResetFromSubmitted(t *testing.T) {
	m := New()
	fillValid(t, m)
	if _, err := m.TogglePasswordVisibility(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if ok, err := m.Submit(); err != nil || !ok {
		t.Fatalf("submit: ok=%v err=%v", ok, err)
	}

	if err := m.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if m.Phase() != model.PhaseEditing {
		t.Fatalf("expected editing after reset")
	}
	if diff := cmp.Diff(model.NewValues(), m.Values()); diff != "" {
		t.Fatalf("values not cleared (-want +got):\n%s", diff)
	}
	if len(m.Errors()) != 0 || len(m.Touched()) != 0 {
		t.Fatalf("expected errors and touched set cleared")
	}
	if m.PasswordVisible() {
		t.Fatalf("expected password hidden after reset")
	}
}

func TestMachine_IllegalTransitions(t *testing.T) {
	m := New()

	if err := m.Reset(); !errors.Is(err, ErrNotSubmitted) {
		t.Fatalf("expected ErrNotSubmitted, got %v", err)
	}
	if err := m.Change(model.FieldName("nickname"), "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}

	fillValid(t, m)
	if ok, err := m.Submit(); err != nil || !ok {
		t.Fatalf("submit: ok=%v err=%v", ok, err)
	}
	if err := m.Change(model.FieldNameName, "Bob"); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing on change, got %v", err)
	}
	if err := m.Blur(model.FieldNameName, "Bob"); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing on blur, got %v", err)
	}
	if _, err := m.Submit(); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing on submit, got %v", err)
	}
	if _, err := m.TogglePasswordVisibility(); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing on toggle, got %v", err)
	}
}

func TestMachine_CanSubmitRejectsBlankValues(t *testing.T) {
	m := New(WithValidator(func(model.FieldName, string) string { return "" }))
	fillValid(t, m)
	if err := m.Change(model.FieldNameEmail, "   "); err != nil {
		t.Fatalf("change: %v", err)
	}
	if m.CanSubmit() {
		t.Fatalf("whitespace-only value must block submit enablement")
	}
}

func TestMachine_ViewUsesPasswordVisibility(t *testing.T) {
	m := New()
	specs := model.DefaultFieldSpecs()

	field, _ := m.View(specs).Field(model.FieldNamePassword)
	if field.InputType != "password" {
		t.Fatalf("expected masked password, got %q", field.InputType)
	}

	visible, err := m.TogglePasswordVisibility()
	if err != nil || !visible {
		t.Fatalf("toggle: visible=%v err=%v", visible, err)
	}
	field, _ = m.View(specs).Field(model.FieldNamePassword)
	if field.InputType != "text" {
		t.Fatalf("expected clear-text password, got %q", field.InputType)
	}
}

func TestMachine_SnapshotRoundTrip(t *testing.T) {
	m := New()
	if err := m.Blur(model.FieldNamePhone, "123"); err != nil {
		t.Fatalf("blur: %v", err)
	}
	if err := m.Change(model.FieldNameName, "Ada"); err != nil {
		t.Fatalf("change: %v", err)
	}

	restored := New(WithSnapshot(m.Snapshot()))

	if diff := cmp.Diff(m.View(nil), restored.View(nil)); diff != "" {
		t.Fatalf("restored view mismatch (-want +got):\n%s", diff)
	}
}
