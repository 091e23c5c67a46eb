// Package render defines the Renderer contract, the registry renderers are
// looked up in, and helpers shared by renderers: theme resolution, hidden
// fields, error mapping and localisation.
package render
