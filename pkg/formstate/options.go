package formstate

import (
	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/validation"
)

// SubmitHook observes the values accepted by a successful submit.
type SubmitHook func(values model.Values)

// Option configures a Machine.
type Option func(*Machine)

// WithValidator replaces the default field rules.
func WithValidator(fn validation.Func) Option {
	return func(m *Machine) {
		if fn != nil {
			m.validate = fn
		}
	}
}

// WithSubmitHook registers a hook invoked after every successful submit.
func WithSubmitHook(hook SubmitHook) Option {
	return func(m *Machine) {
		if hook != nil {
			m.hooks = append(m.hooks, hook)
		}
	}
}

// WithSnapshot seeds the machine from a previously exported snapshot.
func WithSnapshot(snapshot Snapshot) Option {
	return func(m *Machine) {
		m.restore(snapshot)
	}
}
