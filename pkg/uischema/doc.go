// Package uischema loads UI schema overlays that refine field presentation
// (labels, placeholders, help texts, icons) without touching the OpenAPI
// contract or the validation rules.
package uischema
