package httpx

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Digmusic88/mundo-world-school/internal/adapters/fixtures"
	"github.com/Digmusic88/mundo-world-school/internal/adapters/memslot"
	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	"github.com/Digmusic88/mundo-world-school/internal/service/screens"
	"github.com/Digmusic88/mundo-world-school/internal/service/session"
	"github.com/Digmusic88/mundo-world-school/internal/service/viewrouter"
)

const (
	staticPathFromTest  = "../../frontend/static"
	fixturePathFromTest = "../../frontend/static/data"
)

// fixedNow pins "today" to the day the bundled fixtures were recorded.
func fixedNow() time.Time { return time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC) }

func demoUsers() []school.User {
	return []school.User{
		{ID: "1", Name: "Carlos Mendoza", Email: "carlos.mendoza@mundoworld.edu", Role: school.RoleAdmin},
		{ID: "2", Name: "María García", Email: "maria.garcia@mundoworld.edu", Role: school.RoleTeacher},
		{ID: "4", Name: "Ana Rodríguez", Email: "ana.rodriguez@email.com", Role: school.RoleParent},
		{ID: "5", Name: "Pablo Rodríguez", Email: "pablo.rodriguez@mundoworld.edu", Role: school.RoleStudent},
	}
}

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		Logger:     quietLogger(),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// failingScreens always reports a fetch failure.
type failingScreens struct{}

func (failingScreens) Build(context.Context, school.User, viewrouter.Descriptor, screens.Query) (screens.Page, error) {
	return screens.Page{}, io.ErrUnexpectedEOF
}

// testPortal is a running router with a cookie-keeping browser.
type testPortal struct {
	srv    *httptest.Server
	client *http.Client
	slots  *memslot.Factory
}

type portalOption func(*RouterServices)

func withScreens(b ScreenBuilder) portalOption {
	return func(s *RouterServices) { s.Screens = b }
}

func newTestPortal(t *testing.T, opts ...portalOption) *testPortal {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); err != nil {
		t.Skip("Templates not available, skipping integration test")
	}

	src, err := fixtures.NewSource(os.DirFS(fixturePathFromTest), fixtures.DefaultLayout())
	require.NoError(t, err)
	slots := memslot.New()
	opener, err := session.NewOpener(src, slots, quietLogger())
	require.NoError(t, err)
	svc, err := screens.NewService(screens.ServiceOptions{Data: src, Logger: quietLogger(), Now: fixedNow})
	require.NoError(t, err)

	services := RouterServices{
		Opener:     opener,
		Screens:    svc,
		TemplateFS: os.DirFS(TemplatePathFromTest),
		StaticFS:   os.DirFS(staticPathFromTest),
		Browser:    BrowserIDConfig{TTL: time.Hour},
		SchoolName: "Mundo World School",
		Logger:     quietLogger(),
	}
	for _, opt := range opts {
		opt(&services)
	}
	handler, err := NewRouter(services)
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Timeout: 5 * time.Second,
	}
	return &testPortal{srv: srv, client: client, slots: slots}
}

func (p *testPortal) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := p.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (p *testPortal) get(t *testing.T, path string, headers ...string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, p.srv.URL+path, nil)
	require.NoError(t, err)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return p.do(t, req)
}

// post submits form with the browser's CSRF token. The token cookie is
// obtained first when the browser has none yet.
func (p *testPortal) post(t *testing.T, path string, form url.Values, headers ...string) (*http.Response, string) {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if form.Get(DefaultCSRFCookieName) == "" {
		form.Set(DefaultCSRFCookieName, p.csrfToken(t))
	}
	req, err := http.NewRequest(http.MethodPost, p.srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return p.do(t, req)
}

func (p *testPortal) cookie(t *testing.T, name string) string {
	t.Helper()
	u, err := url.Parse(p.srv.URL)
	require.NoError(t, err)
	for _, c := range p.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (p *testPortal) csrfToken(t *testing.T) string {
	t.Helper()
	if token := p.cookie(t, DefaultCSRFCookieName); token != "" {
		return token
	}
	p.get(t, PathLogin)
	token := p.cookie(t, DefaultCSRFCookieName)
	require.NotEmpty(t, token)
	return token
}

func (p *testPortal) login(t *testing.T, email string) {
	t.Helper()
	resp, _ := p.post(t, PathLogin, url.Values{"email": {email}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}
