// Package httprepo implements the auth and user repositories over the
// Appquilar REST backend. It owns wire DTOs and the mapping from backend
// status codes to the auth error taxonomy; the session core never sees an
// *http.Response.
package httprepo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/appquilar/go-auth"
	goerrors "github.com/goliatone/go-errors"
)

// TokenSource supplies the Authorization header value for requests that
// require an authenticated caller. Empty means "no credential".
type TokenSource func() string

// Client talks to the backend REST API and implements both repository
// contracts consumed by the session manager.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  auth.Logger
}

var (
	_ auth.AuthRepository = (*Client)(nil)
	_ auth.UserRepository = (*Client)(nil)
)

// Option customizes the client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTokenSource wires the Authorization header provider, typically
// SessionStore-backed so requests always carry the persisted credential
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		if ts != nil {
			c.tokens = ts
		}
	}
}

// WithLogger overrides the client logger
func WithLogger(logger auth.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a repository client for the API base URL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  func() string { return "" },
		logger:  defaultLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Login exchanges credentials for a session token
func (c *Client) Login(ctx context.Context, credentials auth.Credentials) (auth.Session, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{
		Identifier:      credentials.Identifier,
		Password:        credentials.Password,
		ExtendedSession: credentials.ExtendedSession,
	}, &out, false)
	if err != nil {
		return auth.Session{}, err
	}

	return auth.NewSession(out.Token), nil
}

// Logout invalidates the server-side session. Callers treat failures as
// best-effort; the local session is cleared regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, true)
}

// Register creates an account. It never returns a session: registration
// does not log the user in.
func (c *Client) Register(ctx context.Context, registration auth.Registration) error {
	return c.do(ctx, http.MethodPost, "/api/users/register", registration, nil, false)
}

// RequestPasswordReset starts the reset flow for the given email
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/password-reset", auth.PasswordResetRequest{Email: email}, nil, false)
}

// ChangePassword updates the authenticated user's password
func (c *Client) ChangePassword(ctx context.Context, change auth.PasswordChange) error {
	return c.do(ctx, http.MethodPut, "/api/auth/password", change, nil, true)
}

// GetByID fetches a user and maps the wire DTO to the domain model
func (c *Client) GetByID(ctx context.Context, id string) (*auth.User, error) {
	var dto userDTO
	if err := c.do(ctx, http.MethodGet, "/api/users/"+id, nil, &dto, true); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build request")
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		if header := c.tokens(); header != "" {
			req.Header.Set("Authorization", header)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "backend request failed")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return c.mapStatusError(res)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode response body")
	}

	return nil
}

func (c *Client) mapStatusError(res *http.Response) error {
	message := backendMessage(res.Body)

	switch res.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return auth.ErrAuthenticationFailed
	case http.StatusNotFound:
		return auth.ErrUserNotFound
	case http.StatusConflict:
		return auth.ErrRegistrationConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if message == "" {
			return auth.ErrValidationFailed
		}
		return goerrors.New(message, goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	default:
		c.logger.Error("backend error", "status", res.StatusCode, "message", message)
		return goerrors.New(fmt.Sprintf("backend error: %d", res.StatusCode), goerrors.CategoryOperation)
	}
}

func backendMessage(body io.Reader) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 1<<16)).Decode(&parsed); err != nil {
		return ""
	}
	return parsed.Message
}

type defaultLogger struct{}

func (d defaultLogger) Debug(format string, args ...any) {}
func (d defaultLogger) Info(format string, args ...any)  {}
func (d defaultLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] HTTPREPO "+format+"\n", args...)
}
func (d defaultLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] HTTPREPO "+format+"\n", args...)
}
