package client

import (
	"context"
	"net/http"
)

// Client sends a request to the backend. body, when non-nil, is encoded
// as JSON; a 2xx response is decoded into out, which may be nil.
type Client interface {
	Send(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error
}

// TokenSource supplies the bearer token for outgoing requests.
type TokenSource interface {
	Token(ctx context.Context) (string, bool, error)
}

// RequestOption adjusts an outgoing request.
type RequestOption func(*http.Request)

// WithHeader sets a request header. Caller headers override the defaults.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}
