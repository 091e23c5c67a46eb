package model

// FieldView is the render-ready state of a single field.
type FieldView struct {
	FieldSpec
	Value string `json:"value"`
	// Error holds the current message even when it is not shown yet.
	Error     string `json:"error,omitempty"`
	Touched   bool   `json:"touched"`
	ShowError bool   `json:"show_error"`
	Success   bool   `json:"success"`
}

// FormView is the render-ready state of the whole form.
type FormView struct {
	Phase           Phase       `json:"phase"`
	Fields          []FieldView `json:"fields"`
	CanSubmit       bool        `json:"can_submit"`
	PasswordVisible bool        `json:"password_visible"`
	// Submitted carries the values accepted by the last successful submit.
	Submitted Values `json:"submitted,omitempty"`
}

// Field returns the view for name and whether it exists.
func (v FormView) Field(name FieldName) (FieldView, bool) {
	for _, field := range v.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldView{}, false
}

// VisibleErrors returns the messages currently shown to the user.
func (v FormView) VisibleErrors() Errors {
	out := make(Errors)
	for _, field := range v.Fields {
		if field.ShowError {
			out[field.Name] = field.Error
		}
	}
	return out
}
