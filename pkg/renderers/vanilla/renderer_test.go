package vanilla_test

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-signupform/pkg/formstate"
	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/renderers/vanilla"
	"github.com/goliatone/go-signupform/pkg/testsupport"
	"github.com/goliatone/go-signupform/pkg/validation"
)

func renderView(t *testing.T, renderer *vanilla.Renderer, view model.FormView, opts render.RenderOptions) string {
	t.Helper()
	out, err := renderer.Render(testsupport.Context(), view, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func assertNotContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(html, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderer_InitialForm(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	machine := formstate.New()

	html := renderView(t, renderer, machine.View(model.DefaultFieldSpecs()), render.RenderOptions{
		Action:    "/signup",
		EventsURL: "/signup/events",
		Hidden:    map[string]string{render.SessionTokenField: "tok-123"},
	})

	assertContains(t, html,
		"<!DOCTYPE html>",
		`<form class="signup-form" method="post" action="/signup" novalidate data-phase="editing" data-events-url="/signup/events" data-error-class="signup-field--error" data-success-class="signup-field--success">`,
		`<input type="hidden" name="_session" value="tok-123">`,
		`<label for="signup-name">Full name</label>`,
		`id="signup-email" name="email" type="email"`,
		`autocomplete="new-password"`,
		`data-toggle-password`,
		`<button type="submit" data-submit disabled>Create account</button>`,
	)
	assertNotContains(t, html, "signup-field signup-field--error", "signup-field signup-field--success")
}

func TestRenderer_ShowsErrorsOnlyForTouchedFields(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	machine := formstate.New()
	if err := machine.Blur(model.FieldNameEmail, "not-an-email"); err != nil {
		t.Fatalf("blur: %v", err)
	}
	if err := machine.Blur(model.FieldNameName, testsupport.ValidName); err != nil {
		t.Fatalf("blur: %v", err)
	}
	if err := machine.Change(model.FieldNamePhone, "12"); err != nil {
		t.Fatalf("change: %v", err)
	}

	html := renderView(t, renderer, machine.View(model.DefaultFieldSpecs()), render.RenderOptions{})

	assertContains(t, html,
		`class="signup-field signup-field--error" data-field="email"`,
		validation.MsgEmailInvalid,
		`class="signup-field signup-field--success" data-field="name"`,
		`value="Ada Lovelace"`,
		`<button type="submit" data-submit>Create account</button>`,
	)
	assertNotContains(t, html, validation.MsgPhoneDigits)
}

func TestRenderer_PasswordVisibility(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	machine := formstate.New()
	if _, err := machine.TogglePasswordVisibility(); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	html := renderView(t, renderer, machine.View(model.DefaultFieldSpecs()), render.RenderOptions{})
	assertContains(t, html, `id="signup-password" name="password" type="text"`, `aria-pressed="true">Hide</button>`)
}

func TestRenderer_Confirmation(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	machine := formstate.New()
	for name, value := range testsupport.ValidValues() {
		if err := machine.Change(name, value); err != nil {
			t.Fatalf("change %s: %v", name, err)
		}
	}
	if ok, err := machine.Submit(); err != nil || !ok {
		t.Fatalf("submit = %v, %v", ok, err)
	}

	html := renderView(t, renderer, machine.View(model.DefaultFieldSpecs()), render.RenderOptions{
		ResetURL: "/signup/reset",
		Hidden:   map[string]string{render.SessionTokenField: "tok"},
	})

	assertContains(t, html,
		`<section class="signup-confirmation" role="status">`,
		"Account created",
		`<dd data-field="email">ada@example.com</dd>`,
		`<form method="post" action="/signup/reset">`,
		`<button type="submit" data-reset>Create another account</button>`,
	)
	assertNotContains(t, html, testsupport.ValidPassword, `data-submit`)
}

func TestRenderer_ThemeAndStyles(t *testing.T) {
	renderer, err := vanilla.New(vanilla.WithDefaultStyles(), vanilla.WithStylesheet("/assets/custom.css"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	html := renderView(t, renderer, formstate.New().View(nil), render.RenderOptions{
		RuntimeScript: "/runtime/signupform.js",
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"--brand": "#123456</style>"},
			AssetURL: func(key string) string {
				return "/themes/acme/" + key + ".css"
			},
		},
	})

	assertContains(t, html,
		`<body data-theme="acme" data-variant="dark">`,
		`<link rel="stylesheet" href="/assets/custom.css">`,
		`<link rel="stylesheet" href="/themes/acme/stylesheet.css">`,
		`<style>:root{--brand:#123456/style;}</style>`,
		`.signup-field {`,
		`<script src="/runtime/signupform.js" defer></script>`,
	)
}

func TestRenderer_FormErrorsAndTranslations(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	catalog := render.NewCatalog()
	catalog.Add("es", map[string]string{
		"signup.title":             "Crea tu cuenta",
		"signup.fields.name.label": "Nombre completo",
		"signup.submit":            "Crear cuenta",
	})

	html := renderView(t, renderer, formstate.New().View(nil), render.RenderOptions{
		Locale:     "es",
		Translator: catalog,
		FormErrors: []string{"Too many attempts. Please wait a moment."},
	})

	assertContains(t, html,
		`<html lang="es">`,
		"<h1>Crea tu cuenta</h1>",
		`<label for="signup-name">Nombre completo</label>`,
		`<label for="signup-email">Email</label>`,
		"<p>Too many attempts. Please wait a moment.</p>",
		">Crear cuenta</button>",
	)
}

func TestRenderer_FieldTemplateOverride(t *testing.T) {
	overrides := fstest.MapFS{
		"themes/compact/field.tpl": {Data: []byte(`<p data-compact="{{ field.name }}">{{ field.label }}</p>`)},
	}
	renderer, err := vanilla.New(vanilla.WithTemplatesFS(overrides))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	html := renderView(t, renderer, formstate.New().View(nil), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Partials: map[string]string{render.PartialField: "themes/compact/field.tpl"},
		},
	})
	assertContains(t, html, `<p data-compact="phone">Phone number</p>`)
	assertNotContains(t, html, `<label for="signup-phone">`)
}

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{
		renderTemplateFunc: func(name string, _ any, _ ...io.Writer) (string, error) {
			if name == vanilla.TemplatePage {
				return "custom-output", nil
			}
			return "<part />", nil
		},
	}

	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(stub))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out := renderView(t, renderer, formstate.New().View(nil), render.RenderOptions{})
	if out != "custom-output" {
		t.Fatalf("unexpected output: %s", out)
	}
	if !stub.called {
		t.Fatalf("expected render template to be called")
	}
}

func TestAssetsFS_Stylesheet(t *testing.T) {
	data, err := vanilla.AssetsFS().Open(vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("open stylesheet: %v", err)
	}
	defer data.Close()
}

type stubTemplateRenderer struct {
	called             bool
	renderTemplateFunc func(name string, data any, out ...io.Writer) (string, error)
}

func (s *stubTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	s.called = true
	if s.renderTemplateFunc != nil {
		return s.renderTemplateFunc(name, data, out...)
	}
	return "", nil
}

func (s *stubTemplateRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (s *stubTemplateRenderer) RegisterFilter(string, func(input any, param any) (any, error)) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(any) error {
	return nil
}
