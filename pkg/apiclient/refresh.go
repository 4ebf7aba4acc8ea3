package apiclient

import (
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

	"github.com/golang-jwt/jwt/v5"
)

// ErrRefreshFailed wraps any failure of the token refresh call.
var ErrRefreshFailed = errors.New("token refresh failed")

// refreshTimeout bounds the shared refresh call, which outlives the request
// that started it.
const refreshTimeout = 30 * time.Second

type refreshState int

const (
	stateIdle refreshState = iota
	stateRefreshing
)

func (s refreshState) String() string {
	if s == stateRefreshing {
		return "refreshing"
	}
	return "idle"
}

type refreshResult struct {
	token string
	err   error
}

// refresher keeps at most one token refresh in flight. Callers arriving while
// a refresh runs are queued and receive its outcome. The refresh itself is
// detached from the starting caller's cancellation, so abandoning one
// request never fails the others.
type refresher struct {
	mu      sync.Mutex
	state   refreshState
	waiters []chan refreshResult
	timeout time.Duration

	current func() string
	refresh func(ctx context.Context) (string, error)
}

func newRefresher(current func() string, refresh func(ctx context.Context) (string, error)) *refresher {
	return &refresher{current: current, refresh: refresh, timeout: refreshTimeout}
}

func (r *refresher) State() refreshState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Do returns an access token newer than staleToken, refreshing if needed.
// The caller stops waiting when ctx ends; the refresh carries on for the rest.
func (r *refresher) Do(ctx context.Context, staleToken string) (string, error) {
	ch := make(chan refreshResult, 1)

	r.mu.Lock()
	switch r.state {
	case stateRefreshing:
		r.waiters = append(r.waiters, ch)
		r.mu.Unlock()
	default:
		// A refresh finished after the caller's request was sent.
		if cur := r.current(); cur != "" && cur != staleToken {
			r.mu.Unlock()
			return cur, nil
		}
		r.state = stateRefreshing
		r.mu.Unlock()
		go r.run(context.WithoutCancel(ctx), ch)
	}

	select {
	case res := <-ch:
		return res.token, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (r *refresher) run(ctx context.Context, leader chan refreshResult) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	token, err := r.refresh(ctx)

	r.mu.Lock()
	waiters := r.waiters
	r.waiters = nil
	r.state = stateIdle
	r.mu.Unlock()

	res := refreshResult{token: token, err: err}
	leader <- res
	for _, ch := range waiters {
		ch <- res
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// refreshTokens exchanges the stored refresh token for a new session. On
// failure the session is dropped and login is requested, unless the call
// only ran out of time, in which case the session is kept for a later retry.
func (c *Client) refreshTokens(ctx context.Context) (string, error) {
	token, err := c.requestTokens(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			c.logger.Warn("session refresh interrupted", slog.Any("error", err))
			return "", err
		}
		c.tokens.Clear()
		c.loginRequired()
		return "", err
	}
	return token, nil
}

func (c *Client) requestTokens(ctx context.Context) (string, error) {
	refreshToken := c.tokens.RefreshToken()
	if refreshToken == "" {
		return "", fmt.Errorf("%w: no refresh token", ErrRefreshFailed)
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", c.grantType)
	form.Set("token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %v", ErrRefreshFailed, newAPIError(resp.StatusCode, body))
	}

	var tokens tokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		return "", fmt.Errorf("%w: failed to parse token response: %v", ErrRefreshFailed, err)
	}
	if tokens.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrRefreshFailed)
	}

	c.tokens.SetTokens(tokens.AccessToken, tokens.RefreshToken)
	c.logger.Debug("session refreshed")
	return tokens.AccessToken, nil
}

// tokenExpired reports whether token is a JWT whose exp claim is before now.
// Opaque tokens are never considered expired.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
