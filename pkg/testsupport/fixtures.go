// Package testsupport holds fixtures shared by package tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/goliatone/go-signupform/pkg/model"
)

// Valid field values accepted by the validator.
const (
	ValidName     = "Ada Lovelace"
	ValidEmail    = "ada@example.com"
	ValidPhone    = "4155550123"
	ValidPassword = "Analytical1!"
)

// ValidValues returns a complete set of values that passes validation.
func ValidValues() model.Values {
	return model.Values{
		model.FieldNameName:     ValidName,
		model.FieldNameEmail:    ValidEmail,
		model.FieldNamePhone:    ValidPhone,
		model.FieldNamePassword: ValidPassword,
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
