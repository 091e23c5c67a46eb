package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-signupform/pkg/formstate"
	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
)

// Session walks a user through the form: every answer is a change followed by
// a blur, fields are re-prompted while they show an error, and a confirmed
// submit moves the machine to the confirmation step.
type Session struct {
	machine        *formstate.Machine
	driver         PromptDriver
	out            io.Writer
	specs          []model.FieldSpec
	renderer       *Renderer
	theme          Theme
	revealPassword bool
	maxAttempts    int
}

// NewSession binds a session to machine. The survey driver is used unless
// WithPromptDriver is supplied.
func NewSession(machine *formstate.Machine, options ...Option) (*Session, error) {
	if machine == nil {
		return nil, errors.New("tui: machine is required")
	}
	s := &Session{
		machine: machine,
		out:     os.Stdout,
		specs:   model.DefaultFieldSpecs(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = newSurveyDriver(s.out)
	}
	s.renderer = NewRenderer(s.theme)
	return s, nil
}

// Run collects accounts until the user declines to create another one and
// returns the values of every successful submission.
func (s *Session) Run(ctx context.Context) ([]model.Values, error) {
	var accounts []model.Values
	for {
		values, err := s.collect(ctx)
		if err != nil {
			return accounts, err
		}
		accounts = append(accounts, values)

		if err := s.print(ctx); err != nil {
			return accounts, err
		}
		again, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: s.theme.PromptPrefix + "Create another account?",
		})
		if err != nil {
			return accounts, err
		}
		if !again {
			return accounts, nil
		}
		if err := s.machine.Reset(); err != nil {
			return accounts, fmt.Errorf("tui: reset: %w", err)
		}
	}
}

func (s *Session) collect(ctx context.Context) (model.Values, error) {
	if s.revealPassword && !s.machine.PasswordVisible() {
		if _, err := s.machine.TogglePasswordVisibility(); err != nil {
			return nil, fmt.Errorf("tui: reveal password: %w", err)
		}
	}

	for {
		for _, name := range model.Fields() {
			if err := s.promptField(ctx, name); err != nil {
				return nil, err
			}
		}
		if err := s.print(ctx); err != nil {
			return nil, err
		}

		confirmed, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: s.theme.PromptPrefix + "Create account?",
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !confirmed {
			continue
		}

		ok, err := s.machine.Submit()
		if err != nil {
			return nil, fmt.Errorf("tui: submit: %w", err)
		}
		if ok {
			return s.machine.Values(), nil
		}
	}
}

func (s *Session) promptField(ctx context.Context, name model.FieldName) error {
	spec := model.SpecFor(s.specs, name)
	for attempt := 1; ; attempt++ {
		cfg := InputConfig{
			Message: s.theme.PromptPrefix + spec.Label,
			Default: s.machine.Values()[name],
			Help:    spec.HelpText,
		}

		var (
			value string
			err   error
		)
		if name == model.FieldNamePassword && !s.machine.PasswordVisible() {
			value, err = s.driver.Password(ctx, cfg)
		} else {
			value, err = s.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		if err := s.machine.Change(name, value); err != nil {
			return fmt.Errorf("tui: change %s: %w", name, err)
		}
		if err := s.machine.Blur(name, value); err != nil {
			return fmt.Errorf("tui: blur %s: %w", name, err)
		}

		message := s.machine.Errors()[name]
		if message == "" {
			return nil
		}
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+message); err != nil {
			return err
		}
		if s.maxAttempts > 0 && attempt >= s.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, name)
		}
	}
}

func (s *Session) print(ctx context.Context) error {
	out, err := s.renderer.Render(ctx, s.machine.View(s.specs), render.RenderOptions{})
	if err != nil {
		return err
	}
	return s.driver.Info(ctx, strings.TrimRight(string(out), "\n"))
}
