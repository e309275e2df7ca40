package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	mundoworld "github.com/Digmusic88/mundo-world-school"
	"github.com/Digmusic88/mundo-world-school/config"
	httpx "github.com/Digmusic88/mundo-world-school/internal/http"
)

// Roots of the embedded trees. The embed.FS values keep the repo-relative
// paths, so the router gets sub-filesystems rooted here.
const (
	templatesDir = "frontend/templates"
	staticDir    = "frontend/static"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the router and the outer middleware chain:
// Recover -> Logging -> Compression -> router.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Services == nil {
		return nil, errors.New("services are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
		appCfg.Sanitize()
	}

	cookieDomain, err := ResolveCookieDomain(appCfg.HTTP.CookieDomain, appCfg.HTTP.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("cookie domain: %w", err)
	}

	templateFS, err := fs.Sub(mundoworld.TemplateFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}
	staticFS, err := fs.Sub(mundoworld.StaticFS, staticDir)
	if err != nil {
		return nil, fmt.Errorf("embedded static: %w", err)
	}

	router, err := httpx.NewRouter(httpx.RouterServices{
		Opener:     cfg.Services.Opener,
		Screens:    cfg.Services.Screens,
		TemplateFS: templateFS,
		StaticFS:   staticFS,
		Browser: httpx.BrowserIDConfig{
			CookieName: appCfg.Session.CookieName,
			Domain:     cookieDomain,
			TTL:        appCfg.Session.TTL,
		},
		CookieDomain: cookieDomain,
		SchoolName:   appCfg.School.Name,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	// Compression sits innermost so logging sees the final status.
	h := router
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel})(h)
	}
	h = httpx.Logging(logger)(h)
	h = httpx.Recover(logger)(h)
	return h, nil
}

// StartHTTPServer builds the handler and serves it in the background.
// Listen failures are reported on errCh.
func StartHTTPServer(cfg *HTTPServerConfig, errCh chan<- error) (*http.Server, error) {
	handler, err := BuildHTTPHandler(cfg)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := ":8080"
	if cfg.Config != nil && cfg.Config.HTTP.Addr != "" {
		addr = cfg.Config.HTTP.Addr
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			if errCh != nil {
				errCh <- err
			}
		}
	}()

	return server, nil
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
	Timeout time.Duration
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	parent := cfg.Context
	if parent == nil {
		parent = context.Background()
	}
	shutdownCtx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}
	return nil
}
