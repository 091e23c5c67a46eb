package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data renderers use to customise their
// output without touching the form state.
type RenderOptions struct {
	// Action is the URL the form posts to. Renderers fall back to "/signup".
	Action string
	// EventsURL receives change/blur events from the browser runtime. Leave
	// empty to render a form that only validates on submit.
	EventsURL string
	// ResetURL receives the reset action from the confirmation view.
	ResetURL string
	// RuntimeScript is the URL of the progressive-enhancement script.
	RuntimeScript string
	// Hidden carries hidden inputs such as the session token.
	Hidden map[string]string
	// FormErrors are messages not attached to a field (for example throttled
	// submits).
	FormErrors []string
	// Theme carries the resolved go-theme configuration.
	Theme *theme.RendererConfig
	// Locale and Translator localise labels and messages before rendering.
	Locale     string
	Translator Translator
	// OnMissing customises the fallback used when a translation is missing.
	OnMissing MissingTranslationHandler
}
