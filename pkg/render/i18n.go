package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/validation"
)

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show when a key has no
// translation. fallback is the untranslated text.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// ErrMissingTranslator is reported to MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translation keys used for field chrome. %s is the field name.
const (
	fieldLabelKey       = "signup.fields.%s.label"
	fieldPlaceholderKey = "signup.fields.%s.placeholder"
	fieldHelpTextKey    = "signup.fields.%s.help"
)

// LocalizeFormView translates labels, placeholders, help texts and error
// messages of view in place. Without a Translator the view is left untouched.
func LocalizeFormView(view *model.FormView, opts RenderOptions) {
	if view == nil || opts.Translator == nil {
		return
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	for i := range view.Fields {
		field := &view.Fields[i]
		name := string(field.Name)
		field.Label = translate(opts, fieldKey(fieldLabelKey, name), field.Label, onMissing)
		if field.Placeholder != "" {
			field.Placeholder = translate(opts, fieldKey(fieldPlaceholderKey, name), field.Placeholder, onMissing)
		}
		if field.HelpText != "" {
			field.HelpText = translate(opts, fieldKey(fieldHelpTextKey, name), field.HelpText, onMissing)
		}
		if field.Error != "" {
			if key := validation.MessageKey(field.Error); key != "" {
				field.Error = translate(opts, key, field.Error, onMissing)
			}
		}
	}
}

func fieldKey(pattern, name string) string {
	return strings.Replace(pattern, "%s", name, 1)
}

func translate(opts RenderOptions, key, fallback string, onMissing MissingTranslationHandler) string {
	result, err := opts.Translator.Translate(opts.Locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(opts.Locale, key, fallback, err)
}

func missingTranslationDefault(_ string, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Translate resolves key with the configured translator, falling back to
// fallback (through OnMissing when set).
func Translate(opts RenderOptions, key, fallback string) string {
	if opts.Translator == nil {
		return fallback
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return translate(opts, key, fallback, onMissing)
}
