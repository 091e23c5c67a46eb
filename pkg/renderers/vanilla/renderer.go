// Package vanilla renders the signup form as a standalone HTML document using
// pongo2 templates embedded in the binary.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	rendertemplate "github.com/goliatone/go-signupform/pkg/render/template"
	gotemplate "github.com/goliatone/go-signupform/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	inlineStyles     bool
	stylesheets      []string
	classes          ChromeClasses
	lang             string
}

// WithTemplatesFS layers an alternate template bundle over the embedded one.
// Files it provides win; missing files fall back to the defaults.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads override templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(path) == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet into every page.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet links an external stylesheet.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithChromeClasses appends custom classes to the form chrome.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// WithLang sets the lang attribute of the document. Defaults to "en";
// RenderOptions.Locale takes precedence when set.
func WithLang(lang string) Option {
	return func(cfg *config) {
		if lang = strings.TrimSpace(lang); lang != "" {
			cfg.lang = lang
		}
	}
}

type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	inlineStyles string
	stylesheets  []string
	classes      map[string]string
	lang         string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{lang: "en"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOpts := []gotemplate.Option{gotemplate.WithExtension(".tpl")}
		if cfg.templateFS != nil {
			engineOpts = append(engineOpts, gotemplate.WithFS(cfg.templateFS))
		}
		engineOpts = append(engineOpts, gotemplate.WithFS(TemplatesFS()))
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{
		templates:   renderer,
		stylesheets: append([]string(nil), cfg.stylesheets...),
		classes:     cfg.classes.resolve(),
		lang:        cfg.lang,
	}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces a full HTML document: the form while editing, the
// confirmation once submitted.
func (r *Renderer) Render(_ context.Context, view model.FormView, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	render.LocalizeFormView(&view, opts)

	var (
		content string
		title   string
		err     error
	)
	if view.Phase == model.PhaseSubmitted {
		title = render.Translate(opts, "signup.success.title", "Account created")
		content, err = r.renderConfirmation(view, opts, title)
	} else {
		title = render.Translate(opts, "signup.title", "Create your account")
		content, err = r.renderForm(view, opts, title)
	}
	if err != nil {
		return nil, err
	}

	page, err := r.templates.RenderTemplate(render.PartialFor(opts.Theme, render.PartialPage, TemplatePage), r.pageData(opts, title, content))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(page), nil
}

func (r *Renderer) renderForm(view model.FormView, opts render.RenderOptions, heading string) (string, error) {
	labels := map[string]string{
		"show": render.Translate(opts, "signup.password.show", "Show"),
		"hide": render.Translate(opts, "signup.password.hide", "Hide"),
	}
	fieldTemplate := render.PartialFor(opts.Theme, render.PartialField, TemplateField)

	fields := make([]string, 0, len(view.Fields))
	for _, field := range view.Fields {
		markup, err := r.templates.RenderTemplate(fieldTemplate, map[string]any{
			"field":   fieldData(field, view.PasswordVisible),
			"classes": r.classes,
			"labels":  labels,
		})
		if err != nil {
			return "", fmt.Errorf("vanilla renderer: render field %q: %w", field.Name, err)
		}
		fields = append(fields, markup)
	}

	action := opts.Action
	if action == "" {
		action = "/signup"
	}

	out, err := r.templates.RenderTemplate(render.PartialFor(opts.Theme, render.PartialForm, TemplateForm), map[string]any{
		"heading":        heading,
		"action":         action,
		"events_url":     opts.EventsURL,
		"phase":          string(view.Phase),
		"classes":        r.classes,
		"hidden_fields":  hiddenData(opts.Hidden),
		"form_errors":    render.MergeFormErrors(opts.FormErrors),
		"fields":         fields,
		"disable_submit": opts.EventsURL != "" && !view.CanSubmit,
		"submit_label":   render.Translate(opts, "signup.submit", "Create account"),
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return out, nil
}

func (r *Renderer) renderConfirmation(view model.FormView, opts render.RenderOptions, heading string) (string, error) {
	labels := make(map[model.FieldName]string, len(view.Fields))
	for _, field := range view.Fields {
		labels[field.Name] = field.Label
	}
	resetURL := opts.ResetURL
	if resetURL == "" {
		resetURL = "/signup/reset"
	}

	out, err := r.templates.RenderTemplate(render.PartialFor(opts.Theme, render.PartialConfirmation, TemplateConfirmation), map[string]any{
		"heading":       heading,
		"message":       render.Translate(opts, "signup.success.message", "Your account has been created."),
		"summary":       submittedSummary(view, labels),
		"reset_url":     resetURL,
		"hidden_fields": hiddenData(opts.Hidden),
		"classes":       r.classes,
		"reset_label":   render.Translate(opts, "signup.success.reset", "Create another account"),
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render confirmation: %w", err)
	}
	return out, nil
}

func (r *Renderer) pageData(opts render.RenderOptions, title, content string) map[string]any {
	stylesheets := append([]string(nil), r.stylesheets...)
	if href := render.AssetURL(opts.Theme, "stylesheet"); href != "" {
		stylesheets = append(stylesheets, href)
	}

	data := map[string]any{
		"lang":           r.lang,
		"title":          title,
		"content":        content,
		"inline_styles":  r.inlineStyles,
		"stylesheets":    stylesheets,
		"runtime_script": opts.RuntimeScript,
	}
	if opts.Locale != "" {
		data["lang"] = opts.Locale
	}
	if opts.Theme != nil {
		data["theme"] = opts.Theme.Theme
		data["variant"] = opts.Theme.Variant
		data["css_vars"] = cssVarsBlock(opts.Theme.CSSVars)
	}
	return data
}

func hiddenData(hidden map[string]string) []map[string]string {
	sorted := render.SortedHiddenFields(hidden)
	out := make([]map[string]string, 0, len(sorted))
	for _, field := range sorted {
		out = append(out, map[string]string{"name": field.Name, "value": field.Value})
	}
	return out
}
