package tui

import (
	"io"

	"github.com/goliatone/go-signupform/pkg/model"
)

// Theme captures optional formatting hints applied when printing messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints informational
// messages. Defaults to os.Stdout.
func WithOutput(out io.Writer) Option {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// WithFieldSpecs supplies labels and help texts for the prompts.
func WithFieldSpecs(specs []model.FieldSpec) Option {
	return func(s *Session) {
		s.specs = append([]model.FieldSpec(nil), specs...)
	}
}

// WithRevealPassword echoes the password while typing.
func WithRevealPassword(reveal bool) Option {
	return func(s *Session) {
		s.revealPassword = reveal
	}
}

// WithMaxAttempts bounds how often a single field is re-prompted. Zero means
// unlimited.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}
