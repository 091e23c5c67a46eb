package render

import (
	"strings"

	"github.com/goliatone/go-signupform/pkg/model"
)

// ErrorMapping splits the messages of a view into field-level and form-level
// groups keyed by field identifier, the shape JSON clients consume.
type ErrorMapping struct {
	Fields map[string]string `json:"fields,omitempty"`
	Form   []string          `json:"form,omitempty"`
}

// MapViewErrors collects the visible field errors of view plus any form-level
// messages.
func MapViewErrors(view model.FormView, formErrors ...string) ErrorMapping {
	mapping := ErrorMapping{Form: normalizeMessages(formErrors)}
	for name, message := range view.VisibleErrors() {
		message = strings.TrimSpace(message)
		if message == "" {
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string]string)
		}
		mapping.Fields[string(name)] = message
	}
	return mapping
}

// Empty reports whether the mapping holds no message at all.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MergeFormErrors concatenates and normalises form-level messages, trimming
// whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
