package formstate

import "github.com/goliatone/go-signupform/pkg/model"

// Snapshot is the serialisable state of a Machine. Field keys are the string
// form of model.FieldName so snapshots round-trip through JSON and msgpack.
type Snapshot struct {
	Values          map[string]string `json:"values" msgpack:"values"`
	Errors          map[string]string `json:"errors,omitempty" msgpack:"errors,omitempty"`
	Touched         map[string]bool   `json:"touched,omitempty" msgpack:"touched,omitempty"`
	Phase           string            `json:"phase" msgpack:"phase"`
	PasswordVisible bool              `json:"password_visible,omitempty" msgpack:"password_visible,omitempty"`
}

// Snapshot exports the machine state.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Values:          make(map[string]string, len(m.values)),
		Errors:          make(map[string]string, len(m.errors)),
		Touched:         make(map[string]bool, len(m.touched)),
		Phase:           string(m.phase),
		PasswordVisible: m.passwordVisible,
	}
	for name, value := range m.values {
		snap.Values[string(name)] = value
	}
	for name, message := range m.errors {
		snap.Errors[string(name)] = message
	}
	for name, touched := range m.touched {
		if touched {
			snap.Touched[string(name)] = true
		}
	}
	return snap
}

// Restore replaces the machine state with snapshot. Unknown field keys are
// ignored and missing values default to "".
func (m *Machine) Restore(snapshot Snapshot) {
	m.restore(snapshot)
}

func (m *Machine) restore(snapshot Snapshot) {
	m.clear()
	for raw, value := range snapshot.Values {
		if name := model.FieldName(raw); name.Valid() {
			m.values[name] = value
		}
	}
	for raw, message := range snapshot.Errors {
		if name := model.FieldName(raw); name.Valid() && message != "" {
			m.errors[name] = message
		}
	}
	for raw, touched := range snapshot.Touched {
		if name := model.FieldName(raw); name.Valid() && touched {
			m.touched[name] = true
		}
	}
	if model.Phase(snapshot.Phase) == model.PhaseSubmitted {
		m.phase = model.PhaseSubmitted
	}
	m.passwordVisible = snapshot.PasswordVisible
}
