package formstate

import (
	"fmt"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/validation"
)

// Machine is a single signup form instance.
type Machine struct {
	validate validation.Func
	hooks    []SubmitHook

	values          model.Values
	errors          model.Errors
	touched         model.Touched
	phase           model.Phase
	passwordVisible bool
}

// New returns a Machine in the editing phase with all fields empty.
func New(options ...Option) *Machine {
	m := &Machine{validate: validation.Validate}
	m.clear()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

func (m *Machine) clear() {
	m.values = model.NewValues()
	m.errors = make(model.Errors)
	m.touched = make(model.Touched)
	m.phase = model.PhaseEditing
	m.passwordVisible = false
}

// Phase reports the current phase.
func (m *Machine) Phase() model.Phase {
	return m.phase
}

// Values returns a copy of the field values.
func (m *Machine) Values() model.Values {
	return m.values.Clone()
}

// Errors returns a copy of the current error map, including errors that are
// not displayed yet.
func (m *Machine) Errors() model.Errors {
	return m.errors.Clone()
}

// Touched returns a copy of the touched set.
func (m *Machine) Touched() model.Touched {
	return m.touched.Clone()
}

// PasswordVisible reports whether the password is rendered in clear text.
func (m *Machine) PasswordVisible() bool {
	return m.passwordVisible
}

// Change stores value for field. The field's error is recomputed only when the
// field was touched before; untouched fields keep their previous error so
// typing never reveals a message early.
func (m *Machine) Change(field model.FieldName, value string) error {
	if err := m.checkEditable(field); err != nil {
		return err
	}
	m.values[field] = value
	if m.touched[field] {
		m.revalidate(field)
	}
	return nil
}

// Blur marks field touched, stores value and recomputes its error.
func (m *Machine) Blur(field model.FieldName, value string) error {
	if err := m.checkEditable(field); err != nil {
		return err
	}
	m.touched[field] = true
	m.values[field] = value
	m.revalidate(field)
	return nil
}

// Submit marks every field touched and validates all of them. It reports
// whether the form moved to the submitted phase.
func (m *Machine) Submit() (bool, error) {
	if m.phase != model.PhaseEditing {
		return false, ErrNotEditing
	}
	for _, field := range model.Fields() {
		m.touched[field] = true
		m.revalidate(field)
	}
	if len(m.errors) > 0 {
		return false, nil
	}
	m.phase = model.PhaseSubmitted
	accepted := m.values.Clone()
	for _, hook := range m.hooks {
		hook(accepted.Clone())
	}
	return true, nil
}

// Reset clears every field and returns to editing. It is only valid after a
// successful submit.
func (m *Machine) Reset() error {
	if m.phase != model.PhaseSubmitted {
		return ErrNotSubmitted
	}
	m.clear()
	return nil
}

// TogglePasswordVisibility flips between masked and clear-text password
// rendering and returns the new visibility.
func (m *Machine) TogglePasswordVisibility() (bool, error) {
	if m.phase != model.PhaseEditing {
		return m.passwordVisible, ErrNotEditing
	}
	m.passwordVisible = !m.passwordVisible
	return m.passwordVisible, nil
}

// CanSubmit reports whether every field validates and none is blank. It does
// not depend on the touched set.
func (m *Machine) CanSubmit() bool {
	for _, field := range model.Fields() {
		value := m.values[field]
		if validation.Blank(value) {
			return false
		}
		if m.validate(field, value) != "" {
			return false
		}
	}
	return true
}

// View projects the machine onto render-ready field views using specs for
// presentation metadata.
func (m *Machine) View(specs []model.FieldSpec) model.FormView {
	view := model.FormView{
		Phase:           m.phase,
		CanSubmit:       m.CanSubmit(),
		PasswordVisible: m.passwordVisible,
	}
	if m.phase == model.PhaseSubmitted {
		view.Submitted = m.values.Clone()
	}

	for _, field := range model.Fields() {
		spec := model.SpecFor(specs, field)
		if field == model.FieldNamePassword && m.passwordVisible {
			spec.InputType = "text"
		}
		value := m.values[field]
		message := m.errors[field]
		touched := m.touched[field]
		view.Fields = append(view.Fields, model.FieldView{
			FieldSpec: spec,
			Value:     value,
			Error:     message,
			Touched:   touched,
			ShowError: touched && message != "",
			Success:   touched && message == "" && !validation.Blank(value),
		})
	}
	return view
}

func (m *Machine) checkEditable(field model.FieldName) error {
	if !field.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if m.phase != model.PhaseEditing {
		return ErrNotEditing
	}
	return nil
}

func (m *Machine) revalidate(field model.FieldName) {
	if message := m.validate(field, m.values[field]); message != "" {
		m.errors[field] = message
		return
	}
	delete(m.errors, field)
}
