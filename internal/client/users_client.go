// Package client talks to the remote /users REST resource.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/you/user-dashboard/internal/domain"
	"github.com/you/user-dashboard/internal/transport/middleware"
)

// StatusError is returned when the remote store answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("users api: %s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("users api: %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the remote store.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

type UsersClient struct {
	baseURL string
	http    *http.Client
}

type Option func(*UsersClient)

func WithTimeout(d time.Duration) Option {
	return func(c *UsersClient) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *UsersClient) {
		c.http = hc
	}
}

func NewUsersClient(baseURL string, opts ...Option) *UsersClient {
	c := &UsersClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *UsersClient) BaseURL() string { return c.baseURL }

// ListUsers issues GET /users.
func (c *UsersClient) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// CreateUser issues POST /users. The response body is not interpreted.
func (c *UsersClient) CreateUser(ctx context.Context, draft domain.UserDraft) error {
	return c.do(ctx, http.MethodPost, "/users", draft, nil)
}

// UpdateUser issues PUT /users/{id}.
func (c *UsersClient) UpdateUser(ctx context.Context, id domain.UserID, draft domain.UserDraft) error {
	return c.do(ctx, http.MethodPut, userPath(id), draft, nil)
}

// DeleteUser issues DELETE /users/{id}.
func (c *UsersClient) DeleteUser(ctx context.Context, id domain.UserID) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil)
}

func userPath(id domain.UserID) string {
	return "/users/" + url.PathEscape(id.String())
}

func (c *UsersClient) do(ctx context.Context, method, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("users api: marshal body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("users api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if id := middleware.RequestIDFrom(ctx); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("users api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("users api: decode %s %s: %w", method, path, err)
	}
	return nil
}
