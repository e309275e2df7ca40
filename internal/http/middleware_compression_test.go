package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompression(t *testing.T) {
	body := strings.Repeat("Hola, Mundo World! ", 500)
	textHandler := func(contentType string, status int) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", contentType)
			w.WriteHeader(status)
			if status != http.StatusNoContent {
				_, _ = io.WriteString(w, body)
			}
		})
	}

	tests := []struct {
		name           string
		method         string
		acceptEncoding string
		contentType    string
		status         int
		wantGzip       bool
	}{
		{name: "html with gzip", method: http.MethodGet, acceptEncoding: "gzip, deflate", contentType: "text/html; charset=utf-8", status: http.StatusOK, wantGzip: true},
		{name: "json with gzip", method: http.MethodGet, acceptEncoding: "br, gzip", contentType: "application/json", status: http.StatusOK, wantGzip: true},
		{name: "client declines gzip", method: http.MethodGet, acceptEncoding: "deflate", contentType: "text/html", status: http.StatusOK},
		{name: "explicit q=0", method: http.MethodGet, acceptEncoding: "gzip;q=0", contentType: "text/html", status: http.StatusOK},
		{name: "no header", method: http.MethodGet, contentType: "text/html", status: http.StatusOK},
		{name: "binary content", method: http.MethodGet, acceptEncoding: "gzip", contentType: "image/png", status: http.StatusOK},
		{name: "no content status", method: http.MethodGet, acceptEncoding: "gzip", contentType: "text/html", status: http.StatusNoContent},
		{name: "head request", method: http.MethodHead, acceptEncoding: "gzip", contentType: "text/html", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Compression(CompressionConfig{Level: 6})(textHandler(tt.contentType, tt.status))
			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if !tt.wantGzip {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
				return
			}
			assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
			assert.Contains(t, rec.Header().Values("Vary"), "Accept-Encoding")
			assert.Less(t, rec.Body.Len(), len(body))

			zr, err := gzip.NewReader(rec.Body)
			require.NoError(t, err)
			plain, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, body, string(plain))
		})
	}
}

func TestCompression_InvalidLevelFallsBack(t *testing.T) {
	h := Compression(CompressionConfig{Level: 42})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		_, _ = io.WriteString(w, strings.Repeat("body{margin:0}", 100))
	}))
	req := httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestCompression_DetectsContentTypeOnImplicitHeader(t *testing.T) {
	h := Compression(CompressionConfig{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<!DOCTYPE html><html><body>"+strings.Repeat("x", 2048)+"</body></html>")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
}

func TestAcceptsGzip(t *testing.T) {
	tests := map[string]bool{
		"gzip":                true,
		"GZIP":                true,
		"deflate, gzip;q=0.8": true,
		"gzip; q=0":           false,
		"identity":            false,
		"":                    false,
		"x-gzip-custom, br":   false,
		" br , gzip ; q=0.5 ": true,
		"gzip;q=0.000":        false,
	}
	for header, want := range tests {
		assert.Equal(t, want, acceptsGzip(header), "Accept-Encoding %q", header)
	}
}
