package template

import (
	"io"
)

// TemplateRenderer is the engine contract renderers use. Names without
// template syntax resolve to files; anything containing "{{" or "{%" is
// treated as inline template content.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
