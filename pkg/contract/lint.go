package contract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-signupform/pkg/model"
)

// hintKeys lists the keys accepted inside the x-signupform extension.
var hintKeys = []string{"autocomplete", "help_text", "input_type", "placeholder"}

// Violation is a single lint finding.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// Lint checks the createSignup request schema: every form field must be
// declared and presentation hints must use known keys with string values.
func (c *Contract) Lint() []Violation {
	op, err := c.operation(OperationCreateSignup)
	if err != nil {
		return []Violation{{Location: "paths", Message: err.Error()}}
	}
	schema, err := requestSchema(op)
	if err != nil {
		return []Violation{{Location: formatLocation("operation", OperationCreateSignup), Message: err.Error()}}
	}

	var result []Violation
	for _, field := range model.Fields() {
		if _, ok := schema.Properties[string(field)]; !ok {
			result = append(result, Violation{
				Location: formatLocation("operation", OperationCreateSignup, "requestBody"),
				Message:  fmt.Sprintf("missing property %q", field),
			})
		}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		location := formatLocation("operation", OperationCreateSignup, "requestBody", "properties."+name)
		ref := schema.Properties[name]
		if _, err := model.ParseFieldName(name); err != nil {
			result = append(result, Violation{Location: location, Message: "property is not a form field"})
		}
		if ref == nil || ref.Value == nil {
			continue
		}
		raw, ok := ref.Value.Extensions[ExtensionKey]
		if !ok {
			continue
		}
		result = append(result, lintHints(location, raw)...)
	}
	return result
}

func lintHints(location string, raw any) []Violation {
	hints, ok := raw.(map[string]any)
	if !ok {
		return []Violation{{Location: location, Message: fmt.Sprintf("%s must be an object, found %T", ExtensionKey, raw)}}
	}
	keys := make([]string, 0, len(hints))
	for key := range hints {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result []Violation
	for _, key := range keys {
		at := formatLocation(location, key)
		if !isHintKey(key) {
			result = append(result, Violation{
				Location: at,
				Message:  fmt.Sprintf("unsupported hint %q (supported: %s)", key, strings.Join(hintKeys, ", ")),
			})
			continue
		}
		if _, ok := hints[key].(string); !ok {
			result = append(result, Violation{Location: at, Message: fmt.Sprintf("value for %q must be a string (got %T)", key, hints[key])})
		}
	}
	return result
}

func isHintKey(key string) bool {
	idx := sort.SearchStrings(hintKeys, key)
	return idx < len(hintKeys) && hintKeys[idx] == key
}

func formatLocation(path ...string) string {
	return strings.Join(path, " > ")
}
