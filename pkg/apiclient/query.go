package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrQueryDisabled is returned by a disabled query. No request is sent.
var ErrQueryDisabled = errors.New("query disabled")

// QueryOptions describes a read.
type QueryOptions struct {
	Path string
	Key  []string
	// Disabled skips the request, for queries whose inputs are not ready yet.
	Disabled bool
}

// Query fetches opts.Path with GET and stores the decoded result under opts.Key.
// Queries always hit the network and are never retried on failure.
func Query[T any](ctx context.Context, c *Client, opts QueryOptions) (T, error) {
	var zero T
	if opts.Disabled {
		return zero, ErrQueryDisabled
	}

	body, err := c.do(ctx, http.MethodGet, opts.Path, nil)
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return zero, fmt.Errorf("failed to parse response from %s: %w", opts.Path, err)
	}
	if len(opts.Key) > 0 {
		c.cache.Set(opts.Key, out)
	}
	return out, nil
}

// Cached returns the last stored result for key, if it has type T.
func Cached[T any](c *Client, key []string) (T, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}
