package model

import (
	"fmt"
	"strings"
)

// FieldName identifies one of the four signup inputs.
type FieldName string

const (
	FieldNameName     FieldName = "name"
	FieldNameEmail    FieldName = "email"
	FieldNamePhone    FieldName = "phone"
	FieldNamePassword FieldName = "password"
)

var fieldOrder = [...]FieldName{
	FieldNameName,
	FieldNameEmail,
	FieldNamePhone,
	FieldNamePassword,
}

// Fields returns the field identifiers in display order.
func Fields() []FieldName {
	out := make([]FieldName, len(fieldOrder))
	copy(out, fieldOrder[:])
	return out
}

// Valid reports whether f is one of the known fields.
func (f FieldName) Valid() bool {
	for _, name := range fieldOrder {
		if name == f {
			return true
		}
	}
	return false
}

func (f FieldName) String() string {
	return string(f)
}

// ParseFieldName resolves a raw identifier (case and surrounding whitespace
// are ignored) into a FieldName.
func ParseFieldName(raw string) (FieldName, error) {
	name := FieldName(strings.ToLower(strings.TrimSpace(raw)))
	if !name.Valid() {
		return "", fmt.Errorf("model: unknown field %q", raw)
	}
	return name, nil
}

// Values holds the current text of every field.
type Values map[FieldName]string

// NewValues returns a Values map holding all four keys set to "".
func NewValues() Values {
	out := make(Values, len(fieldOrder))
	for _, name := range fieldOrder {
		out[name] = ""
	}
	return out
}

// Clone copies v, filling any missing key with "".
func (v Values) Clone() Values {
	out := NewValues()
	for name, value := range v {
		if name.Valid() {
			out[name] = value
		}
	}
	return out
}

// Errors maps a field to its current validation message. A missing entry
// means the field validates.
type Errors map[FieldName]string

// Clone copies e, dropping empty messages.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for name, message := range e {
		if message != "" {
			out[name] = message
		}
	}
	return out
}

// Touched tracks which fields were blurred at least once (or marked by a
// submit attempt).
type Touched map[FieldName]bool

// Clone copies t, dropping false entries.
func (t Touched) Clone() Touched {
	out := make(Touched, len(t))
	for name, touched := range t {
		if touched {
			out[name] = true
		}
	}
	return out
}

// Phase is the state of the signup form.
type Phase string

const (
	PhaseEditing   Phase = "editing"
	PhaseSubmitted Phase = "submitted"
)
