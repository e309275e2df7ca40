package httpx

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Opener     SessionOpener
	Screens    ScreenBuilder
	TemplateFS fs.FS // parsed once at startup
	StaticFS   fs.FS // served under /static/
	Browser    BrowserIDConfig
	// CookieDomain scopes the CSRF cookie. Empty means host-only.
	CookieDomain string
	SchoolName   string
	Logger       *slog.Logger
}

// NewRouter creates the portal's HTTP handler.
//
// Static assets and the health probe bypass the session chain. Every other
// route runs behind BrowserID, Sessions and CSRFProtection, and /app/ routes
// additionally require a signed-in session.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Opener == nil {
		return nil, errors.New("session opener is required")
	}
	if services.Screens == nil {
		return nil, errors.New("screen builder is required")
	}
	if services.StaticFS == nil {
		return nil, errors.New("static filesystem is required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: services.TemplateFS,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	authHandlers := &AuthHandlers{
		T:          renderer,
		Validate:   validator.New(validator.WithRequiredStructEnabled()),
		SchoolName: services.SchoolName,
		Logger:     logger,
	}
	appHandlers := &AppHandlers{
		T:          renderer,
		Screens:    services.Screens,
		SchoolName: services.SchoolName,
		Logger:     logger,
	}

	pages := http.NewServeMux()
	registerAuthRoutes(pages, authHandlers)
	registerAppRoutes(pages, appHandlers)

	var page http.Handler = &notFoundHandler{mux: pages, app: appHandlers}
	page = CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})(page)
	page = Sessions(services.Opener)(page)
	page = BrowserID(services.Browser)(page)

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /static/", staticWithCacheHeaders(
		http.StripPrefix("/static/", http.FileServer(http.FS(services.StaticFS))),
	))
	mux.Handle("/", page)
	return mux, nil
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.LoginPage)
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

func registerAppRoutes(mux *http.ServeMux, h *AppHandlers) {
	mux.HandleFunc("GET /{$}", h.Root)

	signedIn := RequireSession()
	mux.Handle("GET /app/{$}", signedIn(http.HandlerFunc(h.Section)))
	mux.Handle("GET /app/{section}", signedIn(http.HandlerFunc(h.Section)))
	mux.Handle("POST /app/{section}", signedIn(http.HandlerFunc(h.Submit)))
}

// staticWithCacheHeaders wraps the static file handler with cache headers.
// Fixture documents under data/ are always revalidated so edits show up on
// the next load; stylesheets and scripts may be cached for an hour.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/static/data/") {
			w.Header().Set("Cache-Control", "no-cache")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and renders the portal's 404 page for
// unmatched routes.
type notFoundHandler struct {
	mux *http.ServeMux
	app *AppHandlers
}

func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)
	if cw.status == http.StatusNotFound {
		h.app.NotFound(w, r)
		return
	}
	cw.flushTo(w, h.app.logger())
}

// captureWriter buffers headers, status and body so the response can be
// replayed once the mux is done.
type captureWriter struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter, logger *slog.Logger) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		logger.Error("failed to write captured response", slog.Any("error", err))
	}
}
