package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"

	"github.com/goliatone/go-signupform/internal/session"
	"github.com/goliatone/go-signupform/pkg/formstate"
)

var (
	// ErrBadRequest marks malformed request bodies.
	ErrBadRequest = errors.New("server: bad request")
	// ErrUnknownEvent is returned for event types other than change, blur and
	// toggle_password.
	ErrUnknownEvent = errors.New("server: unknown event type")
	// ErrThrottled is returned when a caller exceeds the submit rate.
	ErrThrottled = errors.New("server: too many attempts")
)

// ThrottledMessage is shown when a submit attempt is rate limited.
const ThrottledMessage = "Too many attempts. Please wait a moment."

type errorBody struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrUnknownEvent),
		errors.Is(err, formstate.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, formstate.ErrNotEditing),
		errors.Is(err, formstate.ErrNotSubmitted):
		return http.StatusConflict
	case errors.Is(err, ErrThrottled):
		return http.StatusTooManyRequests
	case errors.Is(err, session.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler turns handler errors into responses. Client errors echo the
// error text; everything else is logged and answered with a generic message.
func (s *Server) errorHandler(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		err := next(w, req)
		if err == nil {
			return nil
		}

		status := statusFor(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			s.logger.Error("request failed",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Error(err),
			)
			message = http.StatusText(status)
		} else {
			s.logger.Debug("request rejected",
				zap.String("path", req.URL.Path),
				zap.Int("status", status),
				zap.Error(err),
			)
		}

		if wantsJSON(req.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			return bunrouter.JSON(w, errorBody{Error: message})
		}
		http.Error(w, message, status)
		return nil
	}
}

func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/signup/events" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
