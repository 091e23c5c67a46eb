// Package model defines the typed signup form model shared by the validator,
// the form state machine and the renderers. Field identifiers are a closed
// enumeration (name, email, phone, password) and every per-field map is keyed
// by FieldName rather than by free-form property names. FieldSpec carries the
// presentation metadata derived from the OpenAPI contract and the UI schema;
// FormView and FieldView are the render-ready projections of machine state.
package model
