// Package tui runs the signup form in a terminal. Session drives a
// formstate.Machine through survey prompts; Renderer prints a FormView as
// plain text.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
)

// Renderer implements render.Renderer with a plain-text layout suitable for
// terminals and logs.
type Renderer struct {
	theme Theme
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer constructs the text renderer.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render prints each field with its value and visible error while editing,
// and the submitted values (password masked) once submitted.
func (r *Renderer) Render(ctx context.Context, view model.FormView, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	render.LocalizeFormView(&view, opts)

	var buf bytes.Buffer
	if view.Phase == model.PhaseSubmitted {
		fmt.Fprintf(&buf, "%s%s\n", r.theme.InfoPrefix, render.Translate(opts, "signup.success.title", "Account created"))
		for _, field := range view.Fields {
			fmt.Fprintf(&buf, "  %s: %s\n", field.Label, displayValue(field.Name, view.Submitted[field.Name], false))
		}
		return buf.Bytes(), nil
	}

	for _, message := range render.MergeFormErrors(opts.FormErrors) {
		fmt.Fprintf(&buf, "%s%s\n", r.theme.ErrorPrefix, message)
	}
	for _, field := range view.Fields {
		marker := " "
		switch {
		case field.ShowError:
			marker = "✗"
		case field.Success:
			marker = "✓"
		}
		fmt.Fprintf(&buf, "%s %s: %s\n", marker, field.Label, displayValue(field.Name, field.Value, view.PasswordVisible))
		if field.ShowError {
			fmt.Fprintf(&buf, "    %s%s\n", r.theme.ErrorPrefix, field.Error)
		}
	}
	if view.CanSubmit {
		fmt.Fprintf(&buf, "%s%s\n", r.theme.InfoPrefix, render.Translate(opts, "signup.ready", "Ready to submit."))
	}
	return buf.Bytes(), nil
}

func displayValue(name model.FieldName, value string, reveal bool) string {
	if name == model.FieldNamePassword && !reveal {
		return strings.Repeat("*", len([]rune(value)))
	}
	return value
}
