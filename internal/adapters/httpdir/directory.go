// Package httpdir fetches the user directory from a remote JSON document,
// the way the browser front-end fetched /users.json.
package httpdir

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Digmusic88/mundo-world-school/internal/adapters/fixtures"
	"github.com/Digmusic88/mundo-world-school/internal/domain/school"
	apperrors "github.com/Digmusic88/mundo-world-school/internal/errors"
	"github.com/Digmusic88/mundo-world-school/internal/ports"
)

// maxBodyBytes bounds the directory document size.
const maxBodyBytes = 8 << 20

// Options configures a Directory.
type Options struct {
	URL     string
	Expr    string // JMESPath selecting the user array; defaults to "users"
	Timeout time.Duration
	Client  *http.Client
}

// Directory implements ports.UserDirectory over HTTP. Each call performs one
// GET; there is no retry and no caching.
type Directory struct {
	url    string
	expr   string
	client *http.Client
}

// New validates opts and returns a Directory.
func New(opts Options) (*Directory, error) {
	if opts.URL == "" {
		return nil, errors.New("httpdir: URL is required")
	}
	expr := opts.Expr
	if expr == "" {
		expr = "users"
	}
	if err := fixtures.ValidateExpression(expr); err != nil {
		return nil, fmt.Errorf("httpdir: invalid expression: %w", err)
	}
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Directory{url: opts.URL, expr: expr, client: client}, nil
}

// FetchAllUsers downloads and decodes the directory document.
func (d *Directory) FetchAllUsers(ctx context.Context) ([]school.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "user directory unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Unavailable(fmt.Sprintf("user directory returned %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "read user directory")
	}

	var users []school.User
	if err := fixtures.Extract(raw, d.expr, &users); err != nil {
		return nil, fmt.Errorf("decode user directory: %w", err)
	}
	return users, nil
}

var _ ports.UserDirectory = (*Directory)(nil)
