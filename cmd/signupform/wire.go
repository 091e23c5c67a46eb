package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	signupform "github.com/goliatone/go-signupform"
	"github.com/goliatone/go-signupform/internal/config"
	"github.com/goliatone/go-signupform/internal/server"
	"github.com/goliatone/go-signupform/internal/session"
	"github.com/goliatone/go-signupform/internal/submission"
	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/renderers/vanilla"
)

func buildFieldSpecs(ctx context.Context, cfg *config.Config) ([]model.FieldSpec, error) {
	if dir := strings.TrimSpace(cfg.UI.SchemaDir); dir != "" {
		return signupform.FieldSpecsWithSchema(ctx, os.DirFS(dir))
	}
	return signupform.FieldSpecs(ctx)
}

func buildTheme(cfg *config.Config) (*theme.RendererConfig, error) {
	return render.ResolveTheme(cfg.Theme.Manifest(), cfg.Theme.Variant, map[string]string{
		render.PartialPage:         vanilla.TemplatePage,
		render.PartialForm:         vanilla.TemplateForm,
		render.PartialField:        vanilla.TemplateField,
		render.PartialConfirmation: vanilla.TemplateConfirmation,
	})
}

func buildTranslator(cfg *config.Config) (*render.Catalog, error) {
	catalog, err := render.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	path := strings.TrimSpace(cfg.UI.Translations)
	if path == "" {
		return catalog, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open translations: %w", err)
	}
	defer file.Close()
	extra, err := render.LoadCatalog(file)
	if err != nil {
		return nil, err
	}
	catalog.Merge(extra)
	return catalog, nil
}

func buildRenderer(cfg *config.Config) (*vanilla.Renderer, error) {
	options := []vanilla.Option{
		vanilla.WithStylesheet(server.PathAssets + "/" + vanilla.StylesheetName),
		vanilla.WithTemplatesDir(cfg.UI.TemplatesDir),
	}
	if locale := strings.TrimSpace(cfg.UI.Locale); locale != "" {
		options = append(options, vanilla.WithLang(locale))
	}
	return vanilla.New(options...)
}

func buildRecorder(cfg *config.Config, logger *zap.Logger) *submission.Recorder {
	return submission.NewRecorder(
		submission.WithLogger(logger.Named("submission")),
		submission.WithKeep(cfg.Submissions.Keep),
		submission.WithBcryptCost(cfg.Submissions.BcryptCost),
	)
}

// buildSessions returns the manager, a health probe for the store and a
// cleanup func.
func buildSessions(cfg *config.Config, logger *zap.Logger) (*session.Manager, func(context.Context) error, func(), error) {
	codec, err := session.NewTokenCodec(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.Session.Secret == "" {
		logger.Warn("session secret not configured, tokens will not survive a restart")
	}

	var (
		store   session.Store
		health  = func(context.Context) error { return nil }
		cleanup = func() {}
	)
	switch cfg.Session.Store {
	case config.StoreRedis:
		client := session.NewRedisClient(session.RedisOptions{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})
		redisStore := session.NewRedisStore(client, cfg.Session.Redis.Prefix)
		store = redisStore
		health = redisStore.Ping
		cleanup = func() {
			if err := client.Close(); err != nil {
				logger.Warn("closing redis client", zap.Error(err))
			}
		}
	default:
		store = session.NewMemoryStore()
	}

	manager, err := session.NewManager(codec, cfg.Session.TTL,
		session.WithStore(store),
		session.WithLogger(logger.Named("session")),
	)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return manager, health, cleanup, nil
}
