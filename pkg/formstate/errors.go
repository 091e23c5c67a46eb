package formstate

import "errors"

var (
	// ErrUnknownField is returned when an event names a field outside the
	// signup enumeration.
	ErrUnknownField = errors.New("formstate: unknown field")
	// ErrNotEditing is returned for edit events received after a successful
	// submit.
	ErrNotEditing = errors.New("formstate: form is not editable")
	// ErrNotSubmitted is returned when reset is requested before a successful
	// submit.
	ErrNotSubmitted = errors.New("formstate: form has not been submitted")
)
