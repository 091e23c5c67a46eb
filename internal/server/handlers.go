package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"

	"github.com/goliatone/go-signupform/internal/session"
	"github.com/goliatone/go-signupform/pkg/formstate"
	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/renderers/jsonview"
)

const maxBodyBytes = 64 << 10

func (s *Server) showForm(w http.ResponseWriter, req bunrouter.Request) error {
	var view model.FormView
	sess, err := s.sessions.Do(req.Context(), s.token(req.Request), func(sess *session.Session) error {
		view = sess.Machine.View(s.specs)
		return nil
	})
	if err != nil {
		return err
	}
	return s.writePage(w, req.Request, sess, view, http.StatusOK)
}

func (s *Server) submitForm(w http.ResponseWriter, req bunrouter.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	if err := req.ParseForm(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	var (
		view      model.FormView
		throttled bool
	)
	sess, err := s.sessions.Do(req.Context(), s.token(req.Request), func(sess *session.Session) error {
		m := sess.Machine
		if m.Phase() == model.PhaseSubmitted {
			view = m.View(s.specs)
			return nil
		}
		if !s.submits.Allow(sess.ID) || !s.submits.Allow("form:"+clientIP(req.Request)) {
			throttled = true
			view = m.View(s.specs)
			return nil
		}
		for _, field := range model.Fields() {
			values, ok := req.PostForm[string(field)]
			if !ok || len(values) == 0 {
				continue
			}
			if err := m.Change(field, values[0]); err != nil {
				return err
			}
		}
		before := m.Snapshot()
		ok, err := m.Submit()
		if err != nil {
			return err
		}
		if ok {
			// The session is saved whatever fn returns, so a failed record
			// must not leave it in the submitted phase.
			if _, err := s.recorder.Record(req.Context(), m.Values()); err != nil {
				m.Restore(before)
				return err
			}
		}
		view = m.View(s.specs)
		return nil
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	var formErrors []string
	switch {
	case throttled:
		status = http.StatusTooManyRequests
		formErrors = append(formErrors, render.Translate(s.renderOptions(""), "signup.errors.throttled", ThrottledMessage))
		s.logger.Debug("submit throttled", zap.String("session_id", sess.ID))
	case view.Phase == model.PhaseEditing:
		status = http.StatusUnprocessableEntity
	}
	return s.writePage(w, req.Request, sess, view, status, formErrors...)
}

func (s *Server) resetForm(w http.ResponseWriter, req bunrouter.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	if err := req.ParseForm(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	sess, err := s.sessions.Do(req.Context(), s.token(req.Request), func(sess *session.Session) error {
		return sess.Machine.Reset()
	})
	if sess != nil {
		s.setCookie(w, sess.Token)
	}
	if err != nil {
		return err
	}
	http.Redirect(w, req.Request, PathSignup, http.StatusSeeOther)
	return nil
}

type formEvent struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

type fieldState struct {
	Name      string `json:"name"`
	Value     string `json:"value,omitempty"`
	Error     string `json:"error,omitempty"`
	ShowError bool   `json:"show_error"`
	Success   bool   `json:"success"`
	InputType string `json:"input_type,omitempty"`
}

type formState struct {
	Phase           string       `json:"phase"`
	CanSubmit       bool         `json:"can_submit"`
	PasswordVisible bool         `json:"password_visible"`
	Token           string       `json:"token"`
	Fields          []fieldState `json:"fields"`
}

func (s *Server) handleEvent(w http.ResponseWriter, req bunrouter.Request) error {
	var event formEvent
	if err := decodeJSON(w, req.Request, &event); err != nil {
		return err
	}

	var view model.FormView
	sess, err := s.sessions.Do(req.Context(), s.token(req.Request), func(sess *session.Session) error {
		if err := applyEvent(sess.Machine, event); err != nil {
			return err
		}
		view = sess.Machine.View(s.specs)
		return nil
	})
	if sess != nil {
		s.setCookie(w, sess.Token)
	}
	if err != nil {
		return err
	}

	render.LocalizeFormView(&view, s.renderOptions(""))
	return bunrouter.JSON(w, newFormState(view, sess.Token))
}

func applyEvent(m *formstate.Machine, event formEvent) error {
	if event.Type == "toggle_password" {
		_, err := m.TogglePasswordVisibility()
		return err
	}

	var apply func(model.FieldName, string) error
	switch event.Type {
	case "change":
		apply = m.Change
	case "blur":
		apply = m.Blur
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}
	field, err := model.ParseFieldName(event.Field)
	if err != nil {
		return fmt.Errorf("%w: %q", formstate.ErrUnknownField, event.Field)
	}
	return apply(field, event.Value)
}

func newFormState(view model.FormView, token string) formState {
	state := formState{
		Phase:           string(view.Phase),
		CanSubmit:       view.CanSubmit,
		PasswordVisible: view.PasswordVisible,
		Token:           token,
		Fields:          make([]fieldState, 0, len(view.Fields)),
	}
	for _, field := range view.Fields {
		st := fieldState{
			Name:      string(field.Name),
			ShowError: field.ShowError,
			Success:   field.Success,
			InputType: field.InputType,
		}
		if field.Name != model.FieldNamePassword {
			st.Value = field.Value
		}
		if field.ShowError {
			st.Error = field.Error
		}
		state.Fields = append(state.Fields, st)
	}
	return state
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type signupCreated struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// createSignup runs a throwaway machine: change every field, submit, record.
func (s *Server) createSignup(w http.ResponseWriter, req bunrouter.Request) error {
	if !s.submits.Allow("api:" + clientIP(req.Request)) {
		return ErrThrottled
	}

	var body signupRequest
	if err := decodeJSON(w, req.Request, &body); err != nil {
		return err
	}

	m := formstate.New()
	values := model.Values{
		model.FieldNameName:     body.Name,
		model.FieldNameEmail:    body.Email,
		model.FieldNamePhone:    body.Phone,
		model.FieldNamePassword: body.Password,
	}
	for _, field := range model.Fields() {
		if err := m.Change(field, values[field]); err != nil {
			return err
		}
	}
	ok, err := m.Submit()
	if err != nil {
		return err
	}
	if !ok {
		view := m.View(s.specs)
		render.LocalizeFormView(&view, s.renderOptions(""))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		return bunrouter.JSON(w, render.MapViewErrors(view))
	}

	rec, err := s.recorder.Record(req.Context(), m.Values())
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	return bunrouter.JSON(w, signupCreated{ID: rec.ID, CreatedAt: rec.CreatedAt})
}

func (s *Server) serveContract(w http.ResponseWriter, req bunrouter.Request) error {
	w.Header().Set("Content-Type", "application/yaml")
	http.ServeContent(w, req.Request, "openapi.yaml", time.Time{}, bytes.NewReader(s.contract))
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, req bunrouter.Request) error {
	if s.health != nil {
		if err := s.health(req.Context()); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			return bunrouter.JSON(w, bunrouter.H{"status": "unavailable"})
		}
	}
	return bunrouter.JSON(w, bunrouter.H{"status": "ok"})
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, sess *session.Session, view model.FormView, status int, formErrors ...string) error {
	opts := s.renderOptions(sess.Token)
	opts.FormErrors = formErrors

	name := s.page
	if wantsJSON(r) {
		name = jsonview.Name
	}
	renderer, err := s.renderers.Get(name)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	out, err := renderer.Render(r.Context(), view, opts)
	if err != nil {
		return fmt.Errorf("server: render: %w", err)
	}
	s.setCookie(w, sess.Token)
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err = w.Write(out)
	return err
}

func (s *Server) renderOptions(token string) render.RenderOptions {
	opts := render.RenderOptions{
		Action:     PathSignup,
		ResetURL:   PathReset,
		Theme:      s.theme,
		Locale:     s.locale,
		Translator: s.translator,
	}
	if token != "" {
		opts.Hidden = render.MergeHiddenFields(nil, render.SessionToken(token))
	}
	if s.cfg.LiveValidation {
		opts.EventsURL = PathEvents
		if s.runtime != nil {
			opts.RuntimeScript = PathRuntime + "/signupform.js"
		}
	}
	return opts
}

// token reads the session token from the header, the posted form or the
// cookie, in that order.
func (s *Server) token(r *http.Request) string {
	if token := r.Header.Get(SessionHeader); token != "" {
		return token
	}
	if r.PostForm != nil {
		if token := r.PostForm.Get(render.SessionTokenField); token != "" {
			return token
		}
	}
	if cookie, err := r.Cookie(s.cfg.CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (s *Server) setCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.cfg.CookieTTL > 0 {
		cookie.MaxAge = int(s.cfg.CookieTTL / time.Second)
	}
	http.SetCookie(w, cookie)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrBadRequest)
		}
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
