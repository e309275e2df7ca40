package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	"github.com/Digmusic88/mundo-world-school/internal/http/templates/core"
	"github.com/Digmusic88/mundo-world-school/internal/http/ui/viewmodel"
	"github.com/Digmusic88/mundo-world-school/internal/service/screens"
	"github.com/Digmusic88/mundo-world-school/internal/service/viewrouter"
)

const errMsgScreenLoad = "No se pudieron cargar los datos. Inténtalo de nuevo."

// ScreenBuilder assembles the model of a resolved screen.
type ScreenBuilder interface {
	Build(ctx context.Context, me school.User, d viewrouter.Descriptor, q screens.Query) (screens.Page, error)
}

var _ ScreenBuilder = (*screens.Service)(nil)

// ShellPage is the data every shell template receives.
type ShellPage struct {
	viewmodel.Layout
	Descriptor viewrouter.Descriptor
	Query      screens.Query
	Model      any
}

// AppHandlers serves the authenticated shell.
type AppHandlers struct {
	T          *TemplateRenderer
	Screens    ScreenBuilder
	SchoolName string
	Logger     *slog.Logger
}

func (h *AppHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Root sends signed-in browsers to the dashboard and everyone else to the login page. GET /.
func (h *AppHandlers) Root(w http.ResponseWriter, r *http.Request) {
	if SnapshotFromContext(r.Context()).SignedIn() {
		http.Redirect(w, r, PathDashboard, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, PathLogin, http.StatusSeeOther)
}

// Section renders the resolved screen of a section. GET /app/{section}.
func (h *AppHandlers) Section(w http.ResponseWriter, r *http.Request) {
	h.renderSection(w, r, "")
}

// Submit accepts a save or send form from a screen. The portal is
// read-only, so the submission is logged and the screen re-rendered with a
// notice. POST /app/{section}.
func (h *AppHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	snap := SnapshotFromContext(r.Context())
	d := viewrouter.Resolve(snap.Role(), r.PathValue("section"))

	fields := make([]string, 0, len(r.PostForm))
	for k := range r.PostForm {
		if k != DefaultCSRFCookieName {
			fields = append(fields, k)
		}
	}
	slices.Sort(fields)
	h.logger().InfoContext(r.Context(), "form submitted",
		"section", d.Section,
		"screen", string(d.Screen),
		"user_id", snap.User.ID,
		"fields", fields,
	)
	h.renderSection(w, r, submitNotice(d.Screen, r))
}

func (h *AppHandlers) renderSection(w http.ResponseWriter, r *http.Request, notice string) {
	snap := SnapshotFromContext(r.Context())
	if !snap.SignedIn() {
		redirectToLogin(w, r)
		return
	}
	me := *snap.User
	d := viewrouter.Resolve(me.Role, r.PathValue("section"))
	q := screens.ParseQuery(r.URL.Query())

	page := ShellPage{
		Layout:     h.layout(r, me, d),
		Descriptor: d,
		Query:      q,
	}
	page.Notice = notice

	built, err := h.Screens.Build(r.Context(), me, d, q)
	if err != nil {
		page.Error = errMsgScreenLoad
	} else {
		page.Model = built.Model
	}

	if WantsPartial(r) {
		h.renderPartial(w, r, &page)
		return
	}
	if err := h.T.RenderFull(w, http.StatusOK, &page); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// renderPartial writes the content fragment plus a <title> and an
// out-of-band header update so htmx swaps keep the chrome in sync.
func (h *AppHandlers) renderPartial(w http.ResponseWriter, r *http.Request, page *ShellPage) {
	SetHXTrigger(w, "nav:activate", map[string]string{"section": page.Section})
	SetHXPushURL(w, SectionPath(page.Section))

	var head strings.Builder
	head.WriteString(`<title>` + html.EscapeString(page.Title) + `</title>`)
	head.WriteString(`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` +
		html.EscapeString(page.PageTitle) + `</h1>`)

	var body strings.Builder
	rec := &bufferedWriter{header: w.Header(), buf: &body}
	if err := h.T.RenderPartial(rec, 0, page); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(head.String() + body.String())); err != nil {
		h.logger().ErrorContext(r.Context(), "failed to write partial", "error", err)
	}
}

func (h *AppHandlers) layout(r *http.Request, me school.User, d viewrouter.Descriptor) viewmodel.Layout {
	entries := viewrouter.NavigationFor(me.Role)
	nav := make([]viewmodel.NavItem, 0, len(entries))
	for _, e := range entries {
		nav = append(nav, viewmodel.NavItem{
			ID:     e.ID,
			Label:  e.Label,
			Icon:   string(e.Icon),
			Href:   SectionPath(e.ID),
			Active: e.ID == d.Section,
		})
	}
	pageTitle := viewrouter.HeaderTitle(me.Role, d.Section)
	return viewmodel.Layout{
		Title:      pageTitle + " - " + h.SchoolName,
		PageTitle:  pageTitle,
		SchoolName: h.SchoolName,
		Section:    d.Section,
		CSRFToken:  GetCSRFToken(r),
		User: &viewmodel.User{
			ID:        me.ID,
			Name:      me.Name,
			Email:     me.Email,
			Role:      string(me.Role),
			RoleLabel: viewrouter.RoleLabel(me.Role),
			Avatar:    me.Avatar,
			Initials:  core.Initials(me.Name),
		},
		Nav: nav,
	}
}

// NotFound renders the 404 page. Any unmatched path lands here.
func (h *AppHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":      "Página no encontrada - " + h.SchoolName,
		"SchoolName": h.SchoolName,
		"Code":       http.StatusNotFound,
		"Message":    "La página que buscas no existe.",
		"SignedIn":   SnapshotFromContext(r.Context()).SignedIn(),
	}
	if err := h.T.RenderError(w, http.StatusNotFound, data); err != nil {
		http.NotFound(w, r)
	}
}

var submitNotices = map[viewrouter.Screen]string{
	viewrouter.ScreenMessaging:         "Mensaje enviado correctamente",
	viewrouter.ScreenTeacherAttendance: "Asistencia guardada correctamente",
	viewrouter.ScreenStudentActivities: "Actividad entregada correctamente",
	viewrouter.ScreenTeacherGrades:     "Calificación registrada correctamente",
	viewrouter.ScreenTeacherActivities: "Actividad creada correctamente",
}

// submitNotice is the flash shown after a stubbed submission.
func submitNotice(screen viewrouter.Screen, r *http.Request) string {
	if screen == viewrouter.ScreenParentFinances {
		if concept := strings.TrimSpace(r.PostFormValue("concept")); concept != "" {
			return "Redirigiendo al sistema de pagos para: " + concept
		}
		return "Redirigiendo al sistema de pagos"
	}
	if notice, ok := submitNotices[screen]; ok {
		return notice
	}
	return "Cambios guardados correctamente"
}

// bufferedWriter collects a render into a builder while sharing the real header map.
type bufferedWriter struct {
	header http.Header
	buf    *strings.Builder
}

func (b *bufferedWriter) Header() http.Header         { return b.header }
func (b *bufferedWriter) WriteHeader(int)             {}
func (b *bufferedWriter) Write(p []byte) (int, error) { return b.buf.Write(p) }
