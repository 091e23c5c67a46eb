// Package server exposes the signup form over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"

	"github.com/goliatone/go-signupform/internal/logging"
	"github.com/goliatone/go-signupform/internal/session"
	"github.com/goliatone/go-signupform/internal/submission"
	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/renderers/jsonview"
)

// Route paths.
const (
	PathSignup   = "/signup"
	PathEvents   = "/signup/events"
	PathReset    = "/signup/reset"
	PathAPI      = "/api/signup"
	PathContract = "/openapi.yaml"
	PathRuntime  = "/runtime"
	PathAssets   = "/assets"
	PathHealth   = "/healthz"
)

// SessionHeader carries the session token for script-driven requests.
const SessionHeader = "X-Signup-Session"

// Config holds the transport settings.
type Config struct {
	Addr          string
	ShutdownGrace time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration

	// LiveValidation wires the browser runtime and the events endpoint into
	// rendered pages.
	LiveValidation bool

	CookieName   string
	CookieSecure bool
	CookieTTL    time.Duration

	SubmitPerSecond float64
	SubmitBurst     int
}

// Recorder stores accepted submissions.
type Recorder interface {
	Record(ctx context.Context, values model.Values) (submission.Record, error)
}

// Server serves the signup routes.
type Server struct {
	cfg        Config
	sessions   *session.Manager
	renderers  *render.Registry
	page       string
	recorder   Recorder
	specs      []model.FieldSpec
	theme      *theme.RendererConfig
	translator render.Translator
	locale     string
	contract   []byte
	runtime    fs.FS
	assets     fs.FS
	health     func(context.Context) error
	logger     *zap.Logger
	submits    *throttle
	router     *bunrouter.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logging.OrNop(logger)
	}
}

// WithRecorder sets where accepted submissions go.
func WithRecorder(recorder Recorder) Option {
	return func(s *Server) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

// WithFieldSpecs sets the presentation metadata used for every view.
func WithFieldSpecs(specs []model.FieldSpec) Option {
	return func(s *Server) {
		if len(specs) > 0 {
			s.specs = append([]model.FieldSpec(nil), specs...)
		}
	}
}

// WithTheme sets the resolved theme passed to the renderer.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithTranslator localises labels and messages for locale.
func WithTranslator(translator render.Translator, locale string) Option {
	return func(s *Server) {
		s.translator = translator
		s.locale = locale
	}
}

// WithContract sets the document served at PathContract.
func WithContract(raw []byte) Option {
	return func(s *Server) {
		s.contract = raw
	}
}

// WithRuntimeAssets mounts fsys under PathRuntime.
func WithRuntimeAssets(fsys fs.FS) Option {
	return func(s *Server) {
		s.runtime = fsys
	}
}

// WithAssets mounts fsys under PathAssets.
func WithAssets(fsys fs.FS) Option {
	return func(s *Server) {
		s.assets = fsys
	}
}

// WithHealthCheck adds a dependency probe to PathHealth.
func WithHealthCheck(check func(context.Context) error) Option {
	return func(s *Server) {
		s.health = check
	}
}

// New builds a Server rendering pages with renderer and keeping form state in
// sessions. Requests that accept JSON get the jsonview renderer instead.
func New(cfg Config, sessions *session.Manager, renderer render.Renderer, options ...Option) (*Server, error) {
	if sessions == nil {
		return nil, errors.New("server: session manager is required")
	}
	if renderer == nil {
		return nil, errors.New("server: renderer is required")
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "signupform_session"
	}

	renderers := render.NewRegistry()
	if err := renderers.Register(renderer); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if renderer.Name() != jsonview.Name {
		renderers.MustRegister(jsonview.New())
	}

	s := &Server{
		cfg:       cfg,
		sessions:  sessions,
		renderers: renderers,
		page:      renderer.Name(),
		recorder:  submission.NewRecorder(),
		specs:     model.DefaultFieldSpecs(),
		logger:    zap.NewNop(),
		submits:   newThrottle(cfg.SubmitPerSecond, cfg.SubmitBurst, cfg.CookieTTL),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down within the
// configured grace period.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", listener.Addr().String()))
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	grace := s.cfg.ShutdownGrace
	if grace <= 0 {
		grace = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	s.logger.Info("http server shutting down", zap.Duration("grace", grace))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}

func (s *Server) routes() *bunrouter.Router {
	router := bunrouter.New(
		bunrouter.Use(s.errorHandler),
	)

	router.GET(PathSignup, s.showForm)
	router.POST(PathSignup, s.submitForm)
	router.POST(PathEvents, s.handleEvent)
	router.POST(PathReset, s.resetForm)
	router.POST(PathAPI, s.createSignup)
	router.GET(PathHealth, s.healthz)
	router.GET("/", func(w http.ResponseWriter, req bunrouter.Request) error {
		http.Redirect(w, req.Request, PathSignup, http.StatusFound)
		return nil
	})

	if len(s.contract) > 0 {
		router.GET(PathContract, s.serveContract)
	}
	if s.runtime != nil {
		mountStatic(router, PathRuntime, s.runtime)
	}
	if s.assets != nil {
		mountStatic(router, PathAssets, s.assets)
	}
	return router
}

func mountStatic(router *bunrouter.Router, prefix string, fsys fs.FS) {
	h := http.StripPrefix(prefix, http.FileServer(http.FS(fsys)))
	router.GET(prefix+"/*path", func(w http.ResponseWriter, req bunrouter.Request) error {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		h.ServeHTTP(w, req.Request)
		return nil
	})
}
