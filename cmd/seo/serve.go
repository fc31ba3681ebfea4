package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/hanko-seo/internal/cms"
	"finitefield.org/hanko-seo/internal/i18n"
	"finitefield.org/hanko-seo/internal/panels"
	"finitefield.org/hanko-seo/internal/platform/httpx"
	"finitefield.org/hanko-seo/internal/platform/observability"
	"finitefield.org/hanko-seo/internal/platform/requestctx"
	"finitefield.org/hanko-seo/internal/render"
	"finitefield.org/hanko-seo/internal/seo"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	maxSettingsBody = 64 << 10
)

func newServeCmd(load loader) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pages with their SEO head, AMP variants and the preview API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = ":" + a.cfg.Server.Port
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(a),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       a.cfg.Server.ReadTimeout,
				WriteTimeout:      a.cfg.Server.WriteTimeout,
				IdleTimeout:       a.cfg.Server.IdleTimeout,
			}
			return runServer(cmd.Context(), srv, a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (defaults to :SEO_SERVER_PORT)")
	return cmd
}

func runServer(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("seo listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(middleware.RealIP)
	r.Use(observability.TraceMiddleware)
	r.Use(observability.InjectLoggerMiddleware(a.logger))
	r.Use(observability.RequestLoggerMiddleware)
	r.Use(observability.RecoveryMiddleware)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.StripSlashes)
	r.Use(localeMiddleware(a.bundle))

	h := &handlers{app: a}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/seo", func(r chi.Router) {
		r.Get("/panels", h.panels)
		r.Get("/settings", h.getSettings)
		r.Put("/settings", h.putSettings)
		r.Get("/pages", h.listPages)
		r.Get("/{slug}/jsonld", h.jsonld)
	})

	r.Get("/", h.page)
	r.Get("/amp", h.ampPage)
	r.Get("/{slug}", h.page)
	r.Get("/{slug}/amp", h.ampPage)
	return r
}

// localeMiddleware picks the request language from ?lang= or Accept-Language.
func localeMiddleware(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("lang")))
			if lang == "" || !bundle.IsSupported(lang) {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}
			w.Header().Set("Content-Language", lang)
			w.Header().Add("Vary", "Accept-Language")
			next.ServeHTTP(w, r.WithContext(requestctx.WithLang(r.Context(), lang)))
		})
	}
}

type handlers struct {
	app *app
}

func slugParam(r *http.Request) string {
	if slug := chi.URLParam(r, "slug"); slug != "" {
		return slug
	}
	return cms.RootSlug
}

func (h *handlers) page(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, false)
}

func (h *handlers) ampPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, true)
}

func (h *handlers) renderPage(w http.ResponseWriter, r *http.Request, ampVariant bool) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)
	lang := requestctx.Lang(ctx)

	s, err := h.app.siteSettings(ctx)
	if err != nil {
		logger.Error("load settings", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if ampVariant && !s.AMPPages {
		http.NotFound(w, r)
		return
	}

	page, err := h.app.pages.GetPage(ctx, slugParam(r), lang)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logger.Error("load page", zap.String("slug", slugParam(r)), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	doc := render.Document{Lang: page.Lang, Page: &page.Page, Body: page.Body}
	var body []byte
	if ampVariant {
		body, err = h.app.renderer.AMPPage(ctx, doc, s)
	} else {
		doc.Menu = h.menu(ctx, lang)
		body, err = h.app.renderer.Page(ctx, doc, s)
	}
	if err != nil {
		logger.Error("render page", zap.String("slug", page.Slug), zap.Bool("amp", ampVariant), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// menu lists pages flagged for menus. Failures only drop the menu.
func (h *handlers) menu(ctx context.Context, lang string) []render.MenuItem {
	pages, err := h.app.pages.ListPages(ctx, lang)
	if err != nil {
		observability.FromContext(ctx).Warn("list pages for menu", zap.Error(err))
		return nil
	}
	menu := cms.MenuPages(pages)
	items := make([]render.MenuItem, 0, len(menu))
	for _, p := range menu {
		items = append(items, render.MenuItem{Title: p.Title, URL: p.URL})
	}
	return items
}

type pageSummary struct {
	Slug        string `json:"slug"`
	Lang        string `json:"lang"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	ShowInMenus bool   `json:"show_in_menus"`
}

func (h *handlers) listPages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pages, err := h.app.pages.ListPages(ctx, requestctx.Lang(ctx))
	if err != nil {
		observability.FromContext(ctx).Error("list pages", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("internal_server_error", "unable to list pages", http.StatusInternalServerError))
		return
	}
	out := make([]pageSummary, 0, len(pages))
	for _, p := range pages {
		out = append(out, pageSummary{Slug: p.Slug, Lang: p.Lang, Title: p.Title, URL: p.URL, ShowInMenus: p.ShowInMenus})
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"pages": out})
}

type jsonldResponse struct {
	Slug         string         `json:"slug"`
	Organization map[string]any `json:"organization,omitempty"`
	Article      map[string]any `json:"article,omitempty"`
	Publisher    map[string]any `json:"publisher,omitempty"`
}

func (h *handlers) jsonld(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	page, err := h.app.pages.GetPage(ctx, slug, requestctx.Lang(ctx))
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			httpx.WriteError(ctx, w, httpx.NewError("not_found", "page not found", http.StatusNotFound))
			return
		}
		observability.FromContext(ctx).Error("load page", zap.String("slug", slug), zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("internal_server_error", "unable to load page", http.StatusInternalServerError))
		return
	}

	resolver := h.app.renderer.Resolver()
	p := &page.Page
	resp := jsonldResponse{Slug: page.Slug, Publisher: resolver.Publisher(ctx, p)}
	if p.Org.Type != "" {
		resp.Organization = resolver.Organization(ctx, p)
	}
	if p.IsArticle() {
		resp.Article = resolver.Article(ctx, p)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *handlers) panels(w http.ResponseWriter, r *http.Request) {
	set := panels.New(h.app.bundle, requestctx.Lang(r.Context()))
	httpx.WriteJSON(w, http.StatusOK, panelsPayload(set))
}

func (h *handlers) getSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.app.siteSettings(ctx)
	if err != nil {
		observability.FromContext(ctx).Error("load settings", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("internal_server_error", "unable to load settings", http.StatusInternalServerError))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

func (h *handlers) putSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current, err := h.app.siteSettings(ctx)
	if err != nil {
		observability.FromContext(ctx).Error("load settings", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("internal_server_error", "unable to load settings", http.StatusInternalServerError))
		return
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSettingsBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&current); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be a settings object", http.StatusBadRequest))
		return
	}
	current.SiteID = h.app.cfg.Site.ID

	if err := h.app.store.Save(ctx, current); err != nil {
		var verr *seo.ValidationError
		if errors.As(err, &verr) {
			fields := make(map[string]any, len(verr.Fields))
			for k, v := range verr.Fields {
				fields[k] = v
			}
			httpx.WriteError(ctx, w, httpx.NewError("invalid_settings", "settings failed validation", http.StatusBadRequest).
				WithDetails(map[string]any{"fields": fields}))
			return
		}
		observability.FromContext(ctx).Error("save settings", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("internal_server_error", "unable to save settings", http.StatusInternalServerError))
		return
	}
	observability.FromContext(ctx).Info("settings updated", zap.String("site", current.SiteID))
	httpx.WriteJSON(w, http.StatusOK, current)
}
