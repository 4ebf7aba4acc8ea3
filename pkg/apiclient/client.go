// Package apiclient is the Go client for the Lema API. It wraps queries and
// mutations, attaches bearer tokens, refreshes expired sessions and reports
// outcomes through a Notifier.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// GenericErrorMessage is reported when a failure carries no usable message.
const GenericErrorMessage = "An unexpected error occurred"

// TokenStore holds the session's access and refresh tokens.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	// SetTokens replaces the access token. An empty refresh token keeps the current one.
	SetTokens(access, refresh string)
	Clear()
}

// Notifier surfaces user-facing feedback.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// MemoryTokenStore is a TokenStore scoped to the process.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// NewMemoryTokenStore returns a store seeded with the given tokens.
func NewMemoryTokenStore(access, refresh string) *MemoryTokenStore {
	return &MemoryTokenStore{access: access, refresh: refresh}
}

func (s *MemoryTokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *MemoryTokenStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *MemoryTokenStore) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	if refresh != "" {
		s.refresh = refresh
	}
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenStore
	Notifier   Notifier
	Logger     *slog.Logger

	// TokenURL is the refresh endpoint. Relative values resolve against BaseURL.
	TokenURL     string
	ClientID     string
	ClientSecret string
	// GrantType defaults to "refresh_token".
	GrantType string

	// ProtectedRoutes lists path fragments whose 401 responses are never retried.
	// The token endpoint is always protected.
	ProtectedRoutes []string

	// OnLoginRequired runs when the session cannot be recovered.
	OnLoginRequired func()
}

// Client talks to the Lema API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	notifier   Notifier
	logger     *slog.Logger
	cache      *Cache

	tokenURL     string
	clientID     string
	clientSecret string
	grantType    string
	protected    []string

	onLoginRequired func()
	refresher       *refresher
}

// New creates a Client from opts.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", opts.BaseURL)
	}

	c := &Client{
		baseURL:         strings.TrimRight(base.String(), "/"),
		httpClient:      opts.HTTPClient,
		tokens:          opts.Tokens,
		notifier:        opts.Notifier,
		logger:          opts.Logger,
		cache:           NewCache(),
		clientID:        opts.ClientID,
		clientSecret:    opts.ClientSecret,
		grantType:       opts.GrantType,
		onLoginRequired: opts.OnLoginRequired,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.tokens == nil {
		c.tokens = NewMemoryTokenStore("", "")
	}
	if c.notifier == nil {
		c.notifier = NopNotifier{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.grantType == "" {
		c.grantType = "refresh_token"
	}

	c.tokenURL = opts.TokenURL
	if c.tokenURL == "" {
		c.tokenURL = "/auth/token"
	}
	if !strings.Contains(c.tokenURL, "://") {
		c.tokenURL = c.resolve(c.tokenURL)
	}
	tokenPath := c.tokenURL
	if u, err := url.Parse(c.tokenURL); err == nil {
		tokenPath = u.Path
	}
	c.protected = append([]string{tokenPath}, opts.ProtectedRoutes...)

	c.refresher = newRefresher(c.tokens.AccessToken, c.refreshTokens)
	return c, nil
}

// Cache returns the client's query cache.
func (c *Client) Cache() *Cache {
	return c.cache
}

// Tokens returns the client's token store.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
	// Errors is the decoded "errors" member of the body, if any.
	Errors any
	Body   []byte
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.Status, msg)
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Body: body}
	var envelope struct {
		Message string `json:"message"`
		Errors  any    `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Message = envelope.Message
		apiErr.Errors = envelope.Errors
	}
	return apiErr
}

// StatusCode returns the HTTP status of err when it is an APIError, otherwise 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func (c *Client) resolve(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func (c *Client) isProtected(path string) bool {
	for _, route := range c.protected {
		if route != "" && strings.Contains(path, route) {
			return true
		}
	}
	return false
}

// do performs an API request with the session's bearer token, recovering
// once from a 401 by refreshing the session.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	token := c.tokens.AccessToken()
	if token != "" && c.tokens.RefreshToken() != "" && tokenExpired(token, time.Now()) {
		fresh, err := c.refresher.Do(ctx, token)
		if err != nil {
			return nil, err
		}
		token = fresh
	}

	status, respBody, err := c.roundTrip(ctx, method, path, body, token)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized && !c.isProtected(path) {
		fresh, err := c.recoverSession(ctx, token, newAPIError(status, respBody))
		if err != nil {
			return nil, err
		}
		// The replay is flagged as retried: a second 401 is returned as is.
		status, respBody, err = c.roundTrip(ctx, method, path, body, fresh)
		if err != nil {
			return nil, err
		}
	}
	if status < 200 || status >= 300 {
		return nil, newAPIError(status, respBody)
	}
	return respBody, nil
}

func (c *Client) recoverSession(ctx context.Context, staleToken string, cause error) (string, error) {
	if c.tokens.RefreshToken() == "" {
		c.tokens.Clear()
		c.loginRequired()
		return "", cause
	}
	return c.refresher.Do(ctx, staleToken)
}

func (c *Client) loginRequired() {
	c.logger.Warn("session expired, login required")
	if c.onLoginRequired != nil {
		c.onLoginRequired()
	}
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte, token string) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, respBody, nil
}
