package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	signupform "github.com/goliatone/go-signupform"
	"github.com/goliatone/go-signupform/internal/config"
	"github.com/goliatone/go-signupform/internal/server"
	"github.com/goliatone/go-signupform/internal/session"
	"github.com/goliatone/go-signupform/pkg/contract"
	"github.com/goliatone/go-signupform/pkg/renderers/vanilla"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the signup form over HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("starting signup form",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("session_store", cfg.Session.Store),
		zap.Bool("live_validation", cfg.HTTP.LiveValidation),
	)
	return srv.Run(ctx)
}

func newServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*server.Server, func(), error) {
	specs, err := buildFieldSpecs(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	resolvedTheme, err := buildTheme(cfg)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := buildTranslator(cfg)
	if err != nil {
		return nil, nil, err
	}
	renderer, err := buildRenderer(cfg)
	if err != nil {
		return nil, nil, err
	}
	manager, health, cleanup, err := buildSessions(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	sweepMemoryStore(ctx, manager, cfg, logger)

	srv, err := server.New(server.Config{
		Addr:            cfg.HTTP.Addr,
		ShutdownGrace:   cfg.HTTP.ShutdownGrace,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		LiveValidation:  cfg.HTTP.LiveValidation,
		CookieName:      cfg.Session.CookieName,
		CookieSecure:    cfg.Session.Secure,
		CookieTTL:       cfg.Session.TTL,
		SubmitPerSecond: cfg.RateLimit.PerSecond,
		SubmitBurst:     cfg.RateLimit.Burst,
	}, manager, renderer,
		server.WithLogger(logger.Named("http")),
		server.WithRecorder(buildRecorder(cfg, logger)),
		server.WithFieldSpecs(specs),
		server.WithTheme(resolvedTheme),
		server.WithTranslator(catalog, cfg.UI.Locale),
		server.WithContract(contract.Document()),
		server.WithRuntimeAssets(signupform.RuntimeAssetsFS()),
		server.WithAssets(vanilla.AssetsFS()),
		server.WithHealthCheck(health),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return srv, cleanup, nil
}

// sweepMemoryStore drops expired snapshots in the background until ctx ends.
func sweepMemoryStore(ctx context.Context, manager *session.Manager, cfg *config.Config, logger *zap.Logger) {
	store, ok := manager.Store().(*session.MemoryStore)
	if !ok {
		return
	}
	interval := cfg.Session.TTL / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := store.Sweep(); removed > 0 {
					logger.Debug("swept expired sessions", zap.Int("removed", removed))
				}
			}
		}
	}()
}
