// Package contract loads the OpenAPI description of the signup endpoints and
// derives presentation metadata for the form fields from it.
package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-signupform/pkg/model"
)

//go:embed signup.openapi.yaml
var embeddedDocument []byte

// Identifiers of the operations the contract must declare.
const (
	OperationCreateSignup = "createSignup"
	OperationSignupEvent  = "signupEvent"
)

// ExtensionKey is the schema extension carrying presentation hints.
const ExtensionKey = "x-signupform"

// ErrMissingOperation is returned when a document lacks the signup operation.
var ErrMissingOperation = errors.New("contract: operation not found")

// Document returns the embedded OpenAPI document.
func Document() []byte {
	return append([]byte(nil), embeddedDocument...)
}

// Endpoint summarises one operation of the contract.
type Endpoint struct {
	OperationID string
	Method      string
	Path        string
	Summary     string
}

// Contract is a validated OpenAPI document.
type Contract struct {
	spec *openapi3.T
	raw  []byte
}

// LoadEmbedded loads the document shipped with the package.
func LoadEmbedded(ctx context.Context) (*Contract, error) {
	return Load(ctx, embeddedDocument)
}

// Load parses and validates raw. The document must declare createSignup.
func Load(ctx context.Context, raw []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}

	c := &Contract{spec: spec, raw: append([]byte(nil), raw...)}
	if _, err := c.operation(OperationCreateSignup); err != nil {
		return nil, err
	}
	return c, nil
}

// Raw returns the document bytes the contract was loaded from.
func (c *Contract) Raw() []byte {
	return append([]byte(nil), c.raw...)
}

// Title reports info.title.
func (c *Contract) Title() string {
	if c.spec.Info == nil {
		return ""
	}
	return c.spec.Info.Title
}

// Endpoints lists the operations sorted by path then method.
func (c *Contract) Endpoints() []Endpoint {
	var out []Endpoint
	if c.spec.Paths == nil {
		return nil
	}
	for path, item := range c.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			out = append(out, Endpoint{
				OperationID: op.OperationID,
				Method:      strings.ToUpper(method),
				Path:        path,
				Summary:     op.Summary,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// FieldSpecs derives presentation metadata for every field from the request
// schema of createSignup. Fields missing from the schema keep their defaults.
func (c *Contract) FieldSpecs() ([]model.FieldSpec, error) {
	op, err := c.operation(OperationCreateSignup)
	if err != nil {
		return nil, err
	}
	schema, err := requestSchema(op)
	if err != nil {
		return nil, err
	}

	specs := model.DefaultFieldSpecs()
	for i := range specs {
		ref, ok := schema.Properties[string(specs[i].Name)]
		if !ok || ref == nil || ref.Value == nil {
			continue
		}
		applySchema(&specs[i], ref.Value)
	}
	return specs, nil
}

func (c *Contract) operation(id string) (*openapi3.Operation, error) {
	if c.spec.Paths != nil {
		for _, item := range c.spec.Paths.Map() {
			if item == nil {
				continue
			}
			for _, op := range item.Operations() {
				if op != nil && op.OperationID == id {
					return op, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingOperation, id)
}

func requestSchema(op *openapi3.Operation) (*openapi3.Schema, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, fmt.Errorf("contract: operation %s has no request body", op.OperationID)
	}
	media, ok := op.RequestBody.Value.Content["application/json"]
	if !ok || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("contract: operation %s has no application/json schema", op.OperationID)
	}
	return media.Schema.Value, nil
}

func applySchema(spec *model.FieldSpec, schema *openapi3.Schema) {
	if title := strings.TrimSpace(schema.Title); title != "" {
		spec.Label = title
	}
	if desc := strings.TrimSpace(schema.Description); desc != "" {
		spec.HelpText = desc
	}
	if schema.MaxLength != nil {
		spec.MaxLength = int(*schema.MaxLength)
	}
	switch schema.Format {
	case "email":
		spec.InputType = "email"
	case "password":
		spec.InputType = "password"
	}

	hints, _ := schema.Extensions[ExtensionKey].(map[string]any)
	if value := stringHint(hints, "input_type"); value != "" {
		spec.InputType = value
	}
	if value := stringHint(hints, "autocomplete"); value != "" {
		spec.Autocomplete = value
	}
	if value := stringHint(hints, "placeholder"); value != "" {
		spec.Placeholder = value
	}
	if value := stringHint(hints, "help_text"); value != "" {
		spec.HelpText = value
	}
}

func stringHint(hints map[string]any, key string) string {
	if hints == nil {
		return ""
	}
	value, ok := hints[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
