package vanilla

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-signupform/pkg/model"
)

// sanitizeClassList drops the reserved "signup-" classes from user supplied
// class lists.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "signup-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

// cssVarsBlock renders custom properties as a :root rule, sorted for
// deterministic output. Values cannot close the surrounding style element.
func cssVarsBlock(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root{")
	for _, name := range names {
		value := cssValueReplacer.Replace(strings.TrimSpace(vars[name]))
		if value == "" {
			continue
		}
		b.WriteString(cssValueReplacer.Replace(name))
		b.WriteByte(':')
		b.WriteString(value)
		b.WriteByte(';')
	}
	b.WriteByte('}')
	return b.String()
}

var cssValueReplacer = strings.NewReplacer("<", "", ">", "", "{", "", "}", "", ";", "")

func fieldData(field model.FieldView, passwordVisible bool) map[string]any {
	maxLength := ""
	if field.MaxLength > 0 {
		maxLength = strconv.Itoa(field.MaxLength)
	}
	return map[string]any{
		"name":             string(field.Name),
		"label":            field.Label,
		"input_type":       field.InputType,
		"autocomplete":     field.Autocomplete,
		"placeholder":      field.Placeholder,
		"help_text":        field.HelpText,
		"icon":             field.Icon,
		"max_length":       maxLength,
		"value":            field.Value,
		"error":            field.Error,
		"show_error":       field.ShowError,
		"success":          field.Success,
		"is_password":      field.Name == model.FieldNamePassword,
		"password_visible": passwordVisible,
	}
}

func submittedSummary(view model.FormView, labels map[model.FieldName]string) []map[string]string {
	if len(view.Submitted) == 0 {
		return nil
	}
	out := make([]map[string]string, 0, len(view.Submitted))
	for _, name := range model.Fields() {
		if name == model.FieldNamePassword {
			continue
		}
		out = append(out, map[string]string{
			"name":  string(name),
			"label": labels[name],
			"value": view.Submitted[name],
		})
	}
	return out
}
