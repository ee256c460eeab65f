package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(context.Context) (string, bool, error) {
	return s.token, s.token != "", s.err
}

type item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_Send_Headers(t *testing.T) {
	var got http.Header
	var gotBody string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		assert.Equal(t, "/api/tasks", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"id":42,"title":"X"}`))
	})

	c := NewHTTPClient(srv.URL+"/api/", staticTokens{token: "abc"})

	var out item
	err := c.Send(context.Background(), http.MethodPost, "/tasks", item{Title: "X"}, &out, WithHeader("X-Trace", "1"))
	require.NoError(t, err)

	assert.Equal(t, item{ID: 42, Title: "X"}, out)
	assert.Equal(t, "Bearer abc", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "1", got.Get("X-Trace"))
	assert.Len(t, got.Get("X-Request-ID"), 36)
	assert.JSONEq(t, `{"id":0,"title":"X"}`, gotBody)
}

func TestHTTPClient_Send_NoTokenNoAuthorization(t *testing.T) {
	cases := map[string]TokenSource{
		"nil source":   nil,
		"empty token":  staticTokens{},
		"source error": staticTokens{err: errors.New("db locked")},
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Empty(t, r.Header.Get("Authorization"))
				w.WriteHeader(http.StatusNoContent)
			})
			c := NewHTTPClient(srv.URL, src)
			require.NoError(t, c.Send(context.Background(), http.MethodGet, "/x", nil, nil))
		})
	}
}

func TestHTTPClient_Send_StatusClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		kind     Kind
		sentinel error
		message  string
	}{
		{name: "401 ignores body", status: 401, body: `{"message":"Bad credentials"}`, kind: KindUnauthorized, sentinel: ErrUnauthorized, message: "invalid or expired credential"},
		{name: "403", status: 403, kind: KindForbidden, sentinel: ErrForbidden, message: "insufficient permission"},
		{name: "404", status: 404, body: `{"message":"Task not found"}`, kind: KindNotFound, sentinel: ErrNotFound, message: "not found"},
		{name: "500 with message", status: 500, body: `{"message":"boom"}`, kind: KindServer, sentinel: ErrServer, message: "boom"},
		{name: "400 without message", status: 400, body: `{"error":"bad"}`, kind: KindServer, sentinel: ErrServer, message: "HTTP error, status 400"},
		{name: "502 non json", status: 502, body: `<html>bad gateway</html>`, kind: KindServer, sentinel: ErrServer, message: "HTTP error, status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			c := NewHTTPClient(srv.URL, nil)

			out := item{ID: 9}
			err := c.Send(context.Background(), http.MethodGet, "/x", nil, &out)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, err.Error())
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, item{ID: 9}, out, "non-2xx body must not be decoded")
		})
	}
}

func TestHTTPClient_Send_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, nil)
	err := c.Send(context.Background(), http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "network error", err.Error())
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestHTTPClient_Send_Timeout(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	c := NewHTTPClient(srv.URL, nil, WithTimeout(20*time.Millisecond))
	err := c.Send(context.Background(), http.MethodGet, "/slow", nil, nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_Send_Bodies(t *testing.T) {
	t.Run("empty 2xx leaves out untouched", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
		out := item{ID: 1}
		require.NoError(t, NewHTTPClient(srv.URL, nil).Send(context.Background(), http.MethodDelete, "/tasks/1", nil, &out))
		assert.Equal(t, item{ID: 1}, out)
	})

	t.Run("plain text into string", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("Public content.")) })
		var out string
		require.NoError(t, NewHTTPClient(srv.URL, nil).Send(context.Background(), http.MethodGet, "/test/public", nil, &out))
		assert.Equal(t, "Public content.", out)
	})

	t.Run("plain text into struct is a decode error", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("hello")) })
		var out item
		err := NewHTTPClient(srv.URL, nil).Send(context.Background(), http.MethodGet, "/x", nil, &out)
		assert.ErrorIs(t, err, ErrDecode)
	})
}

func TestRequestSafe(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`[{"id":1,"title":"a"},{"id":2,"title":"b"}]`))
		case "/boom":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"boom"}`))
		}
	})
	c := NewHTTPClient(srv.URL, nil)

	ok := RequestSafe[[]item](context.Background(), c, http.MethodGet, "/ok", nil)
	assert.True(t, ok.OK)
	assert.Len(t, ok.Data, 2)
	assert.Empty(t, ok.Err)

	var failed Result[[]item]
	assert.NotPanics(t, func() {
		failed = RequestSafe[[]item](context.Background(), c, http.MethodGet, "/boom", nil)
	})
	assert.Equal(t, Result[[]item]{OK: false, Err: "boom", Kind: KindServer}, failed)
}

func TestDo(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":5,"title":"t"}`))
	})
	got, err := Do[item](context.Background(), NewHTTPClient(srv.URL, nil), http.MethodGet, "/tasks/5", nil)
	require.NoError(t, err)
	assert.Equal(t, item{ID: 5, Title: "t"}, got)
}

func TestPing(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PublicPath, r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.NoError(t, Ping(context.Background(), NewHTTPClient(srv.URL, nil)))

	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()
	assert.ErrorIs(t, Ping(context.Background(), NewHTTPClient(dead.URL, nil)), ErrUnavailable)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindServer, KindOf(errors.New("plain")))
	assert.Equal(t, KindNotFound, KindOf(&APIError{Kind: KindNotFound}))
}
