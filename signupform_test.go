package signupform

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/validation"
)

func TestFieldSpecsCoverEveryField(t *testing.T) {
	specs, err := FieldSpecs(context.Background())
	if err != nil {
		t.Fatalf("field specs: %v", err)
	}
	if len(specs) != len(model.Fields()) {
		t.Fatalf("expected %d specs, got %d", len(model.Fields()), len(specs))
	}
	for i, field := range model.Fields() {
		if specs[i].Name != field {
			t.Fatalf("spec %d: expected %s, got %s", i, field, specs[i].Name)
		}
		if specs[i].Label == "" || specs[i].InputType == "" {
			t.Fatalf("spec %s missing label or input type: %+v", field, specs[i])
		}
	}
}

func TestFieldSpecsWithSchemaOverridesLabel(t *testing.T) {
	schema := fstest.MapFS{
		"signup.yaml": {Data: []byte("operations:\n  createSignup:\n    fields:\n      email:\n        label: Work email\n")},
	}
	specs, err := FieldSpecsWithSchema(context.Background(), schema)
	if err != nil {
		t.Fatalf("field specs: %v", err)
	}
	if got := model.SpecFor(specs, model.FieldNameEmail).Label; got != "Work email" {
		t.Fatalf("expected overridden label, got %q", got)
	}
}

func TestMachineAndValidateAgree(t *testing.T) {
	if msg := Validate(model.FieldNamePhone, "12 34"); msg != validation.MsgPhoneDigits {
		t.Fatalf("unexpected phone message %q", msg)
	}

	m := NewMachine()
	if err := m.Blur(model.FieldNamePhone, "12 34"); err != nil {
		t.Fatalf("blur: %v", err)
	}
	if got := m.Errors()[model.FieldNamePhone]; got != validation.MsgPhoneDigits {
		t.Fatalf("machine error %q does not match validator", got)
	}
	if m.CanSubmit() {
		t.Fatalf("empty form must not be submittable")
	}
}
