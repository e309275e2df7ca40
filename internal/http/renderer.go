package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	corefuncs "github.com/Digmusic88/mundo-world-school/internal/http/templates/core"
)

// Top-level template names.
const (
	tmplLayout  = "layout"
	tmplContent = "content"
	tmplLogin   = "login-page"
	tmplError   = "error-layout"
)

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing templates (required)
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer parses every template under cfg.TemplateFS.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var t *template.Template
	funcs := corefuncs.Funcs(corefuncs.Deps{
		Template:           &t,
		ContentTemplateFor: ContentTemplateFor,
		SectionPath:        SectionPath,
	})
	t, err := template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS,
		"*.tmpl",
		"pages/*.tmpl",
		"partials/*.tmpl",
	)
	if err != nil {
		logger.Error("template parsing failed",
			slog.Any("error", err),
			slog.String("phase", "initialization"),
		)
		return nil, err
	}
	return &TemplateRenderer{t: t, logger: logger}, nil
}

// RenderFull renders the full page (layout + page content).
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, status int, data any) error {
	return r.render(w, renderTarget{name: tmplLayout, status: status}, data)
}

// RenderPartial renders only the main content area.
func (r *TemplateRenderer) RenderPartial(w http.ResponseWriter, status int, data any) error {
	return r.render(w, renderTarget{name: tmplContent, status: status}, data)
}

// RenderLogin renders the standalone login page.
func (r *TemplateRenderer) RenderLogin(w http.ResponseWriter, status int, data any) error {
	return r.render(w, renderTarget{name: tmplLogin, status: status}, data)
}

// RenderError renders the standalone error page.
func (r *TemplateRenderer) RenderError(w http.ResponseWriter, status int, data any) error {
	return r.render(w, renderTarget{name: tmplError, status: status}, data)
}

type renderTarget struct {
	name   string
	status int
}

// render executes into a buffer first so a failing template never leaves a
// half-written response behind.
func (r *TemplateRenderer) render(w http.ResponseWriter, target renderTarget, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, target.name, data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("template", target.name),
			slog.Any("error", err),
		)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if target.status != 0 {
		w.WriteHeader(target.status)
	}
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("failed to write rendered template",
			slog.String("template", target.name),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}
