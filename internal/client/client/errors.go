package client

import (
	"errors"
	"fmt"
)

// Kind classifies a failed request.
type Kind string

const (
	KindTransport    Kind = "transport"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindServer       Kind = "server"
	KindDecode       Kind = "decode"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
	ErrDecode       = errors.New("undecodable response")
)

const (
	msgUnauthorized = "invalid or expired credential"
	msgForbidden    = "insufficient permission"
	msgNotFound     = "not found"
	msgNetwork      = "network error"
	msgDecode       = "invalid response body"
)

// APIError is returned for every failed request. Status is zero for
// transport failures.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *APIError) Is(target error) bool {
	return target == sentinel(e.Kind)
}

func sentinel(k Kind) error {
	switch k {
	case KindTransport:
		return ErrUnavailable
	case KindUnauthorized:
		return ErrUnauthorized
	case KindForbidden:
		return ErrForbidden
	case KindNotFound:
		return ErrNotFound
	case KindServer:
		return ErrServer
	case KindDecode:
		return ErrDecode
	}
	return nil
}

// statusError builds the error for a non-2xx response. serverMessage is
// the body's "message" field, if any.
func statusError(status int, serverMessage string) *APIError {
	switch status {
	case 401:
		return &APIError{Kind: KindUnauthorized, Status: status, Message: msgUnauthorized}
	case 403:
		return &APIError{Kind: KindForbidden, Status: status, Message: msgForbidden}
	case 404:
		return &APIError{Kind: KindNotFound, Status: status, Message: msgNotFound}
	}
	msg := serverMessage
	if msg == "" {
		msg = fmt.Sprintf("HTTP error, status %d", status)
	}
	return &APIError{Kind: KindServer, Status: status, Message: msg}
}

// KindOf returns the kind of err, or KindServer for errors that did not
// come from a Client.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindServer
}
