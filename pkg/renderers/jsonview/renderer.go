// Package jsonview renders the form state as a JSON document for clients that
// draw the form themselves.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
)

// Name is the registry name of the renderer.
const Name = "json"

// Renderer implements render.Renderer with JSON output. Password values are
// never included.
type Renderer struct {
	indent bool
}

var _ render.Renderer = (*Renderer)(nil)

// Option customises the renderer.
type Option func(*Renderer)

// WithIndent pretty-prints the output.
func WithIndent() Option {
	return func(r *Renderer) {
		r.indent = true
	}
}

// New constructs the renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

type document struct {
	Phase           string            `json:"phase"`
	Title           string            `json:"title"`
	CanSubmit       bool              `json:"can_submit"`
	PasswordVisible bool              `json:"password_visible"`
	Action          string            `json:"action,omitempty"`
	EventsURL       string            `json:"events_url,omitempty"`
	ResetURL        string            `json:"reset_url,omitempty"`
	Hidden          map[string]string `json:"hidden,omitempty"`
	FormErrors      []string          `json:"form_errors,omitempty"`
	Fields          []field           `json:"fields"`
	Submitted       map[string]string `json:"submitted,omitempty"`
	Theme           *themeBlock       `json:"theme,omitempty"`
}

type field struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	InputType    string `json:"input_type"`
	Autocomplete string `json:"autocomplete,omitempty"`
	Placeholder  string `json:"placeholder,omitempty"`
	HelpText     string `json:"help_text,omitempty"`
	MaxLength    int    `json:"max_length,omitempty"`
	Value        string `json:"value,omitempty"`
	Error        string `json:"error,omitempty"`
	ShowError    bool   `json:"show_error"`
	Success      bool   `json:"success"`
}

type themeBlock struct {
	Name    string            `json:"name"`
	Variant string            `json:"variant,omitempty"`
	CSSVars map[string]string `json:"css_vars,omitempty"`
}

// Render encodes view after localising it with opts.
func (r *Renderer) Render(_ context.Context, view model.FormView, opts render.RenderOptions) ([]byte, error) {
	render.LocalizeFormView(&view, opts)

	doc := document{
		Phase:           string(view.Phase),
		CanSubmit:       view.CanSubmit,
		PasswordVisible: view.PasswordVisible,
		Action:          opts.Action,
		EventsURL:       opts.EventsURL,
		ResetURL:        opts.ResetURL,
		Hidden:          opts.Hidden,
		FormErrors:      render.MergeFormErrors(opts.FormErrors),
		Fields:          make([]field, 0, len(view.Fields)),
		Theme:           newThemeBlock(opts.Theme),
	}
	if view.Phase == model.PhaseSubmitted {
		doc.Title = render.Translate(opts, "signup.success.title", "Account created")
	} else {
		doc.Title = render.Translate(opts, "signup.title", "Create your account")
	}

	for _, fv := range view.Fields {
		f := field{
			Name:         string(fv.Name),
			Label:        fv.Label,
			InputType:    fv.InputType,
			Autocomplete: fv.Autocomplete,
			Placeholder:  fv.Placeholder,
			HelpText:     fv.HelpText,
			MaxLength:    fv.MaxLength,
			ShowError:    fv.ShowError,
			Success:      fv.Success,
		}
		if fv.Name != model.FieldNamePassword {
			f.Value = fv.Value
		}
		if fv.ShowError {
			f.Error = fv.Error
		}
		doc.Fields = append(doc.Fields, f)
	}

	if len(view.Submitted) > 0 {
		doc.Submitted = make(map[string]string, len(view.Submitted))
		for name, value := range view.Submitted {
			if name == model.FieldNamePassword {
				continue
			}
			doc.Submitted[string(name)] = value
		}
	}

	var (
		out []byte
		err error
	)
	if r.indent {
		out, err = json.MarshalIndent(doc, "", "  ")
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: marshal view: %w", err)
	}
	return out, nil
}

func newThemeBlock(cfg *theme.RendererConfig) *themeBlock {
	if cfg == nil {
		return nil
	}
	return &themeBlock{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		CSSVars: cfg.CSSVars,
	}
}
