// Package client calls the catalog API. Admin calls carry the session's bearer
// token; a 401 clears the session and fires the unauthorized handler.
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

	"go.uber.org/zap"

	"github.com/judyrop/sns-catalog/models"
)

// ErrUnauthorized matches any 401 response.
var ErrUnauthorized = errors.New("not authenticated")

// APIError is a non-2xx response. Message is the server's explanation, empty
// when the body carried none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// GenericFailure is shown when a call failed without a server message.
const GenericFailure = "Operation failed"

// UserMessage is the text to show for err: the server's message when there is
// one, otherwise fallback (GenericFailure when empty).
func UserMessage(err error, fallback string) string {
	if fallback == "" {
		fallback = GenericFailure
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type Client struct {
	baseURL        string
	http           *http.Client
	session        Session
	onUnauthorized func()
	log            *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithSession(s Session) Option {
	return func(c *Client) { c.session = s }
}

// WithUnauthorizedHandler sets the callback run after a 401 cleared the
// session.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		session: NewMemorySession(""),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() Session { return c.session }

// Login exchanges credentials for a token and stores it in the session. Bad
// credentials do not trigger the unauthorized handler.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var tok models.Token
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.send(ctx, http.MethodPost, "/auth/login-json", nil, req, &tok, false); err != nil {
		return err
	}
	return c.session.SetToken(tok.AccessToken)
}

func (c *Client) Logout() error {
	return c.session.Clear()
}

func (c *Client) LoggedIn() bool {
	return c.session.Token() != ""
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.send(ctx, method, path, query, body, out, true)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out any, guarded bool) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if guarded {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("api call failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.log.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
		if guarded && resp.StatusCode == http.StatusUnauthorized {
			c.unauthorized()
		}
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) unauthorized() {
	if err := c.session.Clear(); err != nil {
		c.log.Warn("clear session", zap.Error(err))
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// errorMessage reads {"error": "..."} or {"detail": "..."} from body.
func errorMessage(body io.Reader) string {
	var payload struct {
		Error  string          `json:"error"`
		Detail json.RawMessage `json:"detail"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil || json.Unmarshal(data, &payload) != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	var detail string
	if json.Unmarshal(payload.Detail, &detail) == nil {
		return detail
	}
	return ""
}
