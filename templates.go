package signupform

import (
	"io/fs"

	vanilla "github.com/goliatone/go-signupform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy or
// layer over them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
