// Package signupform is the entry point for the signup form: the validator,
// the form state machine and the field metadata shared by the HTML and
// terminal front ends.
package signupform

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-signupform/pkg/contract"
	"github.com/goliatone/go-signupform/pkg/formstate"
	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/uischema"
	"github.com/goliatone/go-signupform/pkg/validation"
)

// Aliases for the types most callers touch.
type (
	FieldName     = model.FieldName
	FieldSpec     = model.FieldSpec
	Machine       = formstate.Machine
	RenderOptions = render.RenderOptions
)

// NewMachine returns a form in the editing phase.
func NewMachine(options ...formstate.Option) *formstate.Machine {
	return formstate.New(options...)
}

// Validate applies the field rules and returns the first failing message, or
// "" when value is valid.
func Validate(field model.FieldName, value string) string {
	return validation.Validate(field, value)
}

// FieldSpecs returns field metadata from the embedded contract decorated with
// the embedded UI schema.
func FieldSpecs(ctx context.Context) ([]model.FieldSpec, error) {
	return FieldSpecsWithSchema(ctx, nil)
}

// FieldSpecsWithSchema is FieldSpecs with UI overrides read from schema. A nil
// schema uses the embedded one.
func FieldSpecsWithSchema(ctx context.Context, schema fs.FS) ([]model.FieldSpec, error) {
	doc, err := contract.LoadEmbedded(ctx)
	if err != nil {
		return nil, err
	}
	specs, err := doc.FieldSpecs()
	if err != nil {
		return nil, err
	}

	if schema == nil {
		schema = uischema.EmbeddedFS()
	}
	store, err := uischema.LoadFS(schema)
	if err != nil {
		return nil, fmt.Errorf("signupform: load ui schema: %w", err)
	}
	if err := uischema.NewDecorator(store, uischema.DefaultOperation).Decorate(specs); err != nil {
		return nil, err
	}
	return specs, nil
}
