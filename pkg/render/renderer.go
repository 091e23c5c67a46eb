package render

import (
	"context"

	"github.com/goliatone/go-signupform/pkg/model"
)

// Renderer converts a FormView into a byte representation (HTML, text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view model.FormView, options RenderOptions) ([]byte, error)
}
