package model

// FieldSpec describes how a field is presented. Specs are produced by the
// contract package and refined by UI schema decorators; they never influence
// validation.
type FieldSpec struct {
	Name         FieldName `json:"name"`
	Label        string    `json:"label"`
	InputType    string    `json:"input_type"`
	Autocomplete string    `json:"autocomplete,omitempty"`
	Placeholder  string    `json:"placeholder,omitempty"`
	HelpText     string    `json:"help_text,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	MaxLength    int       `json:"max_length,omitempty"`
}

// DefaultFieldSpecs returns minimal specs for all fields, used when no
// contract is available.
func DefaultFieldSpecs() []FieldSpec {
	return []FieldSpec{
		{Name: FieldNameName, Label: "Full name", InputType: "text", Autocomplete: "name"},
		{Name: FieldNameEmail, Label: "Email", InputType: "email", Autocomplete: "email"},
		{Name: FieldNamePhone, Label: "Phone number", InputType: "tel", Autocomplete: "tel"},
		{Name: FieldNamePassword, Label: "Password", InputType: "password", Autocomplete: "new-password"},
	}
}

// SpecFor returns the spec matching name, falling back to the default spec.
func SpecFor(specs []FieldSpec, name FieldName) FieldSpec {
	for _, spec := range specs {
		if spec.Name == name {
			return spec
		}
	}
	for _, spec := range DefaultFieldSpecs() {
		if spec.Name == name {
			return spec
		}
	}
	return FieldSpec{Name: name, Label: string(name), InputType: "text"}
}
