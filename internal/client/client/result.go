package client

import (
	"context"
	"net/http"
)

// Result is the outcome of a request that cannot fail loudly. Either OK
// is true and Data is set, or OK is false and Err and Kind describe the
// failure.
type Result[T any] struct {
	OK   bool
	Data T
	Err  string
	Kind Kind
}

func Ok[T any](data T) Result[T] {
	return Result[T]{OK: true, Data: data}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err.Error(), Kind: KindOf(err)}
}

// Do sends a request and decodes the response into a T.
func Do[T any](ctx context.Context, c Client, method, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	if err := c.Send(ctx, method, path, body, &out, opts...); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// RequestSafe is Do with the error folded into the returned Result. It
// never returns an error.
func RequestSafe[T any](ctx context.Context, c Client, method, path string, body any, opts ...RequestOption) Result[T] {
	data, err := Do[T](ctx, c, method, path, body, opts...)
	if err != nil {
		return Fail[T](err)
	}
	return Ok(data)
}

// PublicPath is the unauthenticated endpoint used for reachability checks.
const PublicPath = "/test/public"

// Ping reports whether the backend answers at all. Any HTTP response,
// including an error status, counts as reachable.
func Ping(ctx context.Context, c Client) error {
	var ignored string
	err := c.Send(ctx, http.MethodGet, PublicPath, nil, &ignored)
	if err != nil && KindOf(err) == KindTransport {
		return err
	}
	return nil
}
