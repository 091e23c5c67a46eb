package uischema

// DefaultOperation is the operation id overlays are looked up under unless the
// decorator is configured otherwise.
const DefaultOperation = "createSignup"

// Store keeps the parsed operations from UI schema documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	operations map[string]Operation
	icons      map[string]string
}

// Operation describes the overrides for one OpenAPI operation.
type Operation struct {
	ID     string
	Source string
	Fields map[string]FieldConfig
}

// FieldConfig customises how a field is presented. Icon names an entry of the
// document's icon set; IconMarkup carries inline SVG instead.
type FieldConfig struct {
	Label        string `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder  string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText     string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	InputType    string `json:"inputType,omitempty" yaml:"inputType,omitempty"`
	Autocomplete string `json:"autocomplete,omitempty" yaml:"autocomplete,omitempty"`
	Icon         string `json:"icon,omitempty" yaml:"icon,omitempty"`
	IconMarkup   string `json:"iconMarkup,omitempty" yaml:"iconMarkup,omitempty"`
}
