package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Digmusic88/mundo-world-school/internal/http/ui/viewmodel"
)

// ErrMsgBadCredentials is shown when sign-in finds no matching account.
const ErrMsgBadCredentials = "Credenciales incorrectas. Por favor, verifica tu email y contraseña."

// DemoAccount is a sign-in hint shown on the login page.
type DemoAccount struct {
	Role  string
	Email string
}

// DemoAccounts lists one directory account per role.
var DemoAccounts = []DemoAccount{
	{Role: "Administrador", Email: "carlos.mendoza@mundoworld.edu"},
	{Role: "Profesor", Email: "maria.garcia@mundoworld.edu"},
	{Role: "Padre", Email: "ana.rodriguez@email.com"},
	{Role: "Estudiante", Email: "pablo.rodriguez@mundoworld.edu"},
}

// LoginPage is the login template's data.
type LoginPage struct {
	viewmodel.Layout
	Email       string
	RedirectURI string
	Demo        []DemoAccount
}

// loginForm bounds the submitted fields. Matching is left to the session
// store, so an unknown email is not a validation error.
type loginForm struct {
	Email       string `validate:"required,max=254"`
	Password    string `validate:"max=256"`
	RedirectURI string `validate:"max=2048"`
}

// AuthHandlers serves sign-in, sign-out and the session status endpoint.
type AuthHandlers struct {
	T          *TemplateRenderer
	Validate   *validator.Validate
	SchoolName string
	Logger     *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage renders the login form. GET /auth/login.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	redirectURI := r.URL.Query().Get("redirect_uri")
	if SnapshotFromContext(r.Context()).SignedIn() {
		http.Redirect(w, r, postLoginPath(redirectURI), http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, LoginPage{RedirectURI: redirectURI})
}

// Login signs the browser in. POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	store, ok := StoreFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_unavailable"})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := loginForm{
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Password:    r.PostFormValue("password"),
		RedirectURI: r.PostFormValue("redirect_uri"),
	}
	if store.Snapshot().SignedIn() {
		redirect(w, r, postLoginPath(form.RedirectURI))
		return
	}

	page := LoginPage{Email: form.Email, RedirectURI: form.RedirectURI}
	if err := h.Validate.StructCtx(r.Context(), form); err != nil {
		h.logger().InfoContext(r.Context(), "login form rejected", "error", err)
		page.Error = ErrMsgBadCredentials
		h.renderLogin(w, r, http.StatusUnauthorized, page)
		return
	}
	if !store.SignIn(r.Context(), form.Email, form.Password) {
		page.Error = ErrMsgBadCredentials
		h.renderLogin(w, r, http.StatusUnauthorized, page)
		return
	}
	redirect(w, r, postLoginPath(form.RedirectURI))
}

// Logout signs the browser out. POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if store, ok := StoreFromContext(r.Context()); ok {
		store.SignOut(r.Context())
	}
	redirect(w, r, PathLogin)
}

// Status reports the session snapshot as JSON. GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, SnapshotFromContext(r.Context()))
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, page LoginPage) {
	page.Title = "Iniciar sesión - " + h.SchoolName
	page.SchoolName = h.SchoolName
	page.CSRFToken = GetCSRFToken(r)
	page.Demo = DemoAccounts
	if page.RedirectURI != "" {
		page.RedirectURI = postLoginPath(page.RedirectURI)
	}
	if err := h.T.RenderLogin(w, status, page); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// postLoginPath keeps redirects inside the shell; anything else lands on the dashboard.
func postLoginPath(candidate string) string {
	path := safeRedirectPath(candidate)
	if !strings.HasPrefix(path, PathApp) {
		return PathDashboard
	}
	return path
}
