package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/cms"
	"finitefield.org/hanko-seo/internal/i18n"
	"finitefield.org/hanko-seo/internal/images"
	"finitefield.org/hanko-seo/internal/platform/config"
	"finitefield.org/hanko-seo/internal/platform/firestore"
	"finitefield.org/hanko-seo/internal/platform/observability"
	"finitefield.org/hanko-seo/internal/platform/secrets"
	"finitefield.org/hanko-seo/internal/render"
	"finitefield.org/hanko-seo/internal/seo"
	"finitefield.org/hanko-seo/internal/settings"
)

// app wires configuration to the page source, settings store and renderer.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	store    settings.Store
	pages    *cms.Client
	renderer *render.Renderer
	bundle   *i18n.Bundle

	closers []func() error
}

func newApp(ctx context.Context, opts ...config.Option) (*app, error) {
	lookup, err := config.Lookup(opts...)
	if err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	level, _ := lookup("SEO_LOG_LEVEL")
	logger, err := observability.NewLogger(level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &app{logger: logger, bundle: i18n.Default()}
	a.closers = append(a.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	project := firstValue(lookup, "SEO_SECRETS_PROJECT_ID", "SEO_FIRESTORE_PROJECT_ID")
	fetcherOpts := []secrets.Option{secrets.WithLogger(logger.Named("secrets")), secrets.WithProject(project)}
	if fallback, ok := lookup("SEO_SECRETS_FALLBACK_FILE"); ok && fallback != "" {
		fetcherOpts = append(fetcherOpts, secrets.WithFallbackFile(fallback))
	}
	fetcher, err := secrets.NewFetcher(ctx, fetcherOpts...)
	if err != nil {
		return nil, fmt.Errorf("init secret fetcher: %w", err)
	}
	a.closers = append(a.closers, fetcher.Close)

	cfg, err := config.Load(ctx, append(opts, config.WithSecretResolver(fetcher))...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	if err := a.openStore(); err != nil {
		a.Close()
		return nil, err
	}

	renditioner, err := newRenditioner(cfg.Renditions, cfg.Site.MediaURL)
	if err != nil {
		a.Close()
		return nil, err
	}
	resolver := seo.NewResolver(
		seo.WithSeparator(cfg.SEO.TitleSeparator),
		seo.WithRenditioner(renditioner),
		seo.WithMediaURL(cfg.Site.MediaURL),
	)
	a.renderer, err = render.New(resolver)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.pages = cms.NewClient(cfg.Content.Dir, cms.SiteInfo{
		ID:      cfg.Site.ID,
		Name:    cfg.Site.Name,
		RootURL: cfg.Site.RootURL,
	}, cms.WithCacheTTL(cfg.Content.CacheTTL))

	logger.Debug("app initialised",
		zap.String("site", cfg.Site.ID),
		zap.String("settings_backend", cfg.Settings.Backend),
		zap.String("renditions_backend", cfg.Renditions.Backend),
	)
	return a, nil
}

func (a *app) openStore() error {
	cfg := a.cfg.Settings
	switch cfg.Backend {
	case config.BackendMemory:
		a.store = settings.NewMemory()
	case config.BackendFile:
		a.store = settings.NewFile(cfg.File)
	case config.BackendSQLite:
		db, err := settings.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return err
		}
		a.store = db
		a.closers = append(a.closers, db.Close)
	case config.BackendFirestore:
		provider := firestore.NewProvider(cfg.Firestore)
		a.store = settings.NewFirestore(provider, cfg.Firestore.Collection)
		a.closers = append(a.closers, provider.Close)
	default:
		return fmt.Errorf("unknown settings backend %q", cfg.Backend)
	}
	return nil
}

func newRenditioner(cfg config.RenditionsConfig, mediaURL string) (seo.Renditioner, error) {
	switch cfg.Backend {
	case config.RenditionsGCS:
		return images.NewGCS(cfg.Bucket, cfg.AccessID, cfg.PrivateKey, cfg.URLExpiry)
	case config.RenditionsStatic, "":
		return images.NewStatic(mediaURL), nil
	default:
		return nil, fmt.Errorf("unknown renditions backend %q", cfg.Backend)
	}
}

// siteSettings loads the settings of the configured site.
func (a *app) siteSettings(ctx context.Context) (seo.Settings, error) {
	return a.store.Get(ctx, a.cfg.Site.ID)
}

// Close runs the registered closers in reverse order.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func firstValue(lookup func(string) (string, bool), keys ...string) string {
	for _, key := range keys {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
	}
	return ""
}
