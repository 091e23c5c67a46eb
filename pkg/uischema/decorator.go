package uischema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-signupform/pkg/model"
)

// Decorator applies UI schema overrides to field specs.
type Decorator struct {
	store     *Store
	operation string
}

var _ model.Decorator = (*Decorator)(nil)

// NewDecorator builds a Decorator backed by store reading the overrides of
// operation (DefaultOperation when empty). A nil or empty store makes the
// decorator a no-op.
func NewDecorator(store *Store, operation string) *Decorator {
	if strings.TrimSpace(operation) == "" {
		operation = DefaultOperation
	}
	return &Decorator{store: store, operation: operation}
}

// Decorate overrides non-empty attributes of specs in place. Icons referenced
// by name must exist in the store.
func (d *Decorator) Decorate(specs []model.FieldSpec) error {
	if d == nil || d.store.Empty() {
		return nil
	}
	op, ok := d.store.Operation(d.operation)
	if !ok {
		return nil
	}

	for i := range specs {
		cfg, ok := op.Fields[string(specs[i].Name)]
		if !ok {
			continue
		}
		spec := &specs[i]
		setIfPresent(&spec.Label, cfg.Label)
		setIfPresent(&spec.Placeholder, cfg.Placeholder)
		setIfPresent(&spec.HelpText, cfg.HelpText)
		setIfPresent(&spec.InputType, cfg.InputType)
		setIfPresent(&spec.Autocomplete, cfg.Autocomplete)

		switch {
		case cfg.IconMarkup != "":
			spec.Icon = cfg.IconMarkup
		case strings.TrimSpace(cfg.Icon) != "":
			markup, ok := d.store.Icon(cfg.Icon)
			if !ok {
				return fmt.Errorf("uischema: field %q references unknown icon %q", spec.Name, cfg.Icon)
			}
			spec.Icon = markup
		}
	}
	return nil
}

func setIfPresent(target *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*target = value
	}
}
