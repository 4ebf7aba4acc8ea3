package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Mutation sends a write and reports its outcome through the client's Notifier.
type Mutation[V, T any] struct {
	Client *Client
	// Method defaults to POST.
	Method string
	// Endpoint resolves the target path from the request variables.
	Endpoint func(V) string

	SuccessMessage func(T) string
	// ErrorMessage overrides the message extracted from the response.
	ErrorMessage func(error) string
	OnSuccess    func(T)
}

// Mutate performs the request. Failures are notified and returned; they never panic.
func (m Mutation[V, T]) Mutate(ctx context.Context, vars V) (T, error) {
	if m.Client == nil || m.Endpoint == nil {
		var zero T
		return zero, errors.New("mutation requires a client and an endpoint")
	}

	out, err := m.send(ctx, vars)
	if err != nil {
		m.Client.notifier.Error(m.failureMessage(err))
		return out, err
	}

	if m.SuccessMessage != nil {
		if msg := m.SuccessMessage(out); msg != "" {
			m.Client.notifier.Success(msg)
		}
	}
	if m.OnSuccess != nil {
		m.OnSuccess(out)
	}
	return out, nil
}

func (m Mutation[V, T]) send(ctx context.Context, vars V) (T, error) {
	var zero T
	method := m.Method
	if method == "" {
		method = http.MethodPost
	}
	path := m.Endpoint(vars)

	var body []byte
	if method != http.MethodGet && method != http.MethodDelete {
		encoded, err := json.Marshal(vars)
		if err != nil {
			return zero, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = encoded
	}

	respBody, err := m.Client.do(ctx, method, path, body)
	if err != nil {
		return zero, err
	}

	var out T
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &out); err != nil {
			return zero, fmt.Errorf("failed to parse response from %s: %w", path, err)
		}
	}
	return out, nil
}

func (m Mutation[V, T]) failureMessage(err error) (msg string) {
	defer func() {
		if recover() != nil {
			msg = "Failed to process error"
		}
	}()
	if m.ErrorMessage != nil {
		if custom := m.ErrorMessage(err); custom != "" {
			return custom
		}
	}
	return ErrorMessage(err)
}

// ErrorMessage extracts a readable message from err: the response's "errors"
// detail, else its "message", else GenericErrorMessage.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return GenericErrorMessage
	}
	if lines := FlattenErrors(apiErr.Errors); len(lines) > 0 {
		return strings.Join(lines, "\n")
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericErrorMessage
}

// FlattenErrors renders decoded error detail as "field: message" lines.
// Nested groups are joined with dots, e.g. "params.userId: ...".
func FlattenErrors(detail any) []string {
	return flatten("", detail)
}

func flatten(prefix string, detail any) []string {
	switch v := detail.(type) {
	case nil:
		return nil
	case string:
		if prefix == "" {
			return []string{v}
		}
		return []string{prefix + ": " + v}
	case []any:
		var out []string
		for _, item := range v {
			out = append(out, flatten(prefix, item)...)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			field := k
			if prefix != "" {
				field = prefix + "." + k
			}
			out = append(out, flatten(field, v[k])...)
		}
		return out
	default:
		return flatten(prefix, fmt.Sprint(v))
	}
}
