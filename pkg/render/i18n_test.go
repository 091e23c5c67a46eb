package render_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/validation"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestLocalizeFormView_TranslatesLabelsAndMessages(t *testing.T) {
	view := model.FormView{
		Fields: []model.FieldView{
			{
				FieldSpec: model.FieldSpec{Name: model.FieldNameEmail, Label: "Email", Placeholder: "you@example.com"},
				Error:     validation.MsgEmailInvalid,
			},
			{
				FieldSpec: model.FieldSpec{Name: model.FieldNamePhone, Label: "Phone number", HelpText: "Digits only"},
				Error:     "custom message",
			},
		},
	}

	render.LocalizeFormView(&view, render.RenderOptions{
		Locale: "es",
		Translator: stubTranslator{
			"signup.fields.email.label":   "Correo",
			"signup.errors.email.invalid": "Formato de correo inválido.",
			"signup.fields.phone.help":    "Solo dígitos",
		},
	})

	got := []string{
		view.Fields[0].Label, view.Fields[0].Placeholder, view.Fields[0].Error,
		view.Fields[1].Label, view.Fields[1].HelpText, view.Fields[1].Error,
	}
	want := []string{
		"Correo", "you@example.com", "Formato de correo inválido.",
		"Phone number", "Solo dígitos", "custom message",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("localized view mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalizeFormView_MissingHandler(t *testing.T) {
	view := model.FormView{
		Fields: []model.FieldView{{FieldSpec: model.FieldSpec{Name: model.FieldNameName, Label: "Full name"}}},
	}

	var missing []string
	render.LocalizeFormView(&view, render.RenderOptions{
		Translator: stubTranslator{},
		OnMissing: func(_ string, key, fallback string, _ error) string {
			missing = append(missing, key)
			return strings.ToUpper(fallback)
		},
	})

	if view.Fields[0].Label != "FULL NAME" {
		t.Fatalf("expected handler output, got %q", view.Fields[0].Label)
	}
	if diff := cmp.Diff([]string{"signup.fields.name.label"}, missing); diff != "" {
		t.Fatalf("missing keys mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalizeFormView_NoTranslator(t *testing.T) {
	view := model.FormView{
		Fields: []model.FieldView{{FieldSpec: model.FieldSpec{Name: model.FieldNameName, Label: "Full name"}}},
	}
	render.LocalizeFormView(&view, render.RenderOptions{Locale: "es"})
	if view.Fields[0].Label != "Full name" {
		t.Fatalf("label changed without translator: %q", view.Fields[0].Label)
	}
}

func TestCatalog_LocaleFallback(t *testing.T) {
	catalog, err := render.LoadCatalog(strings.NewReader(`
es:
  signup.fields.name.label: Nombre completo
  signup.greeting: "Hola %s"
`))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	got, err := catalog.Translate("es_MX", "signup.fields.name.label")
	if err != nil || got != "Nombre completo" {
		t.Fatalf("Translate(es_MX) = %q, %v", got, err)
	}
	got, err = catalog.Translate("es", "signup.greeting", "Ada")
	if err != nil || got != "Hola Ada" {
		t.Fatalf("Translate with args = %q, %v", got, err)
	}
	if _, err := catalog.Translate("fr", "signup.fields.name.label"); err == nil {
		t.Fatalf("expected missing translation error")
	}
}

func TestDefaultCatalog_CoversValidationMessages(t *testing.T) {
	catalog, err := render.DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	messages := []string{
		validation.MsgNameRequired,
		validation.MsgEmailRequired,
		validation.MsgEmailInvalid,
		validation.MsgPhoneRequired,
		validation.MsgPhoneDigits,
		validation.MsgPasswordRequired,
		validation.MsgPasswordLength,
		validation.MsgPasswordLower,
		validation.MsgPasswordUpper,
		validation.MsgPasswordDigit,
		validation.MsgPasswordSpecial,
	}
	for _, message := range messages {
		key := validation.MessageKey(message)
		if _, err := catalog.Translate("es-MX", key); err != nil {
			t.Errorf("missing es translation for %q: %v", key, err)
		}
	}
}

func TestCatalog_Merge(t *testing.T) {
	base, err := render.DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	override, err := render.LoadCatalog(strings.NewReader(`
es:
  signup.title: Regístrate
fr:
  signup.title: Créez votre compte
`))
	if err != nil {
		t.Fatalf("load override: %v", err)
	}
	base.Merge(override)

	if got, _ := base.Translate("es", "signup.title"); got != "Regístrate" {
		t.Fatalf("expected override to win, got %q", got)
	}
	if got, _ := base.Translate("es", "signup.submit"); got != "Crear cuenta" {
		t.Fatalf("expected untouched key to survive, got %q", got)
	}
	if got, _ := base.Translate("fr", "signup.title"); got != "Créez votre compte" {
		t.Fatalf("expected new locale, got %q", got)
	}
}
