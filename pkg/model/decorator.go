package model

// Decorator refines field specs after they have been derived from the
// contract.
type Decorator interface {
	Decorate(specs []FieldSpec) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(specs []FieldSpec) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(specs []FieldSpec) error {
	return fn(specs)
}
