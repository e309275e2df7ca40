package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func csrfEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetCSRFToken(r)))
	})
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestCSRFProtection_IssuesTokenOnSafeRequests(t *testing.T) {
	h := CSRFProtection(CSRFConfig{CookieDomain: "mundoworld.edu"})(csrfEcho())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	c := findCookie(rec.Result().Cookies(), DefaultCSRFCookieName)
	require.NotNil(t, c)
	assert.NotEmpty(t, c.Value)
	assert.Equal(t, c.Value, rec.Body.String(), "token is exposed to templates")
	assert.Equal(t, "mundoworld.edu", c.Domain)
	assert.False(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestCSRFProtection_ReusesExistingCookie(t *testing.T) {
	h := CSRFProtection(CSRFConfig{})(csrfEcho())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "known-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "known-token", rec.Body.String())
	assert.Nil(t, findCookie(rec.Result().Cookies(), DefaultCSRFCookieName))
}

func TestCSRFProtection_ValidatesUnsafeMethods(t *testing.T) {
	const token = "tok-123"
	tests := []struct {
		name   string
		build  func() *http.Request
		status int
	}{
		{
			name: "header token",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/app/messages", nil)
				r.Header.Set(DefaultCSRFHeaderName, token)
				return r
			},
			status: http.StatusOK,
		},
		{
			name: "form token",
			build: func() *http.Request {
				form := url.Values{"csrf_token": {token}, "subject": {"Hola"}}
				r := httptest.NewRequest(http.MethodPost, "/app/messages", strings.NewReader(form.Encode()))
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return r
			},
			status: http.StatusOK,
		},
		{
			name: "missing token",
			build: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/app/messages", nil)
			},
			status: http.StatusForbidden,
		},
		{
			name: "wrong token",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/app/messages", nil)
				r.Header.Set(DefaultCSRFHeaderName, "other")
				return r
			},
			status: http.StatusForbidden,
		},
		{
			name: "json body is not parsed for a token",
			build: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/app/messages", strings.NewReader(`{"csrf_token":"tok-123"}`))
				r.Header.Set("Content-Type", "application/json")
				return r
			},
			status: http.StatusForbidden,
		},
	}

	h := CSRFProtection(CSRFConfig{})(csrfEcho())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.build()
			req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCSRFProtection_FreshCookieRejectsUnsafeRequest(t *testing.T) {
	h := CSRFProtection(CSRFConfig{})(csrfEcho())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set(DefaultCSRFHeaderName, "guessed")
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
