package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/client/client"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/common"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var nopLog = logging.Nop()

// ---- fake client ----

type call struct {
	Method string
	Path   string
	Body   any
}

type fakeClient struct {
	mu      sync.Mutex
	calls   []call
	handler func(method, path string, body any) (any, error)
}

func newFakeClient(h func(method, path string, body any) (any, error)) *fakeClient {
	return &fakeClient{handler: h}
}

func (f *fakeClient) Send(_ context.Context, method, path string, body, out any, _ ...client.RequestOption) error {
	f.mu.Lock()
	f.calls = append(f.calls, call{Method: method, Path: path, Body: body})
	h := f.handler
	f.mu.Unlock()

	if h == nil {
		return nil
	}
	resp, err := h(method, path, body)
	if err != nil {
		return err
	}
	if out == nil || resp == nil {
		return nil
	}
	if s, ok := resp.(string); ok {
		if p, ok := out.(*string); ok {
			*p = s
			return nil
		}
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		// the gateway hands raw bodies to string targets
		if p, ok := out.(*string); ok {
			*p = string(b)
			return nil
		}
		return err
	}
	return nil
}

func (f *fakeClient) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeClient) CallsTo(path string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Path == path {
			n++
		}
	}
	return n
}

func apiErr(kind client.Kind, status int, msg string) error {
	return &client.APIError{Kind: kind, Status: status, Message: msg}
}

// ---- fake credential store ----

type memStore struct {
	mu       sync.Mutex
	values   map[string]string
	profile  *models.UserProfile
	setErr   error
	clearErr error
	readErr  error
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Set(_ context.Context, token string, profile models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[common.AuthTokenKey] = token
	m.profile = &profile
	return nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	delete(m.values, common.AuthTokenKey)
	m.profile = nil
	return nil
}

func (m *memStore) Token(context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.values[common.AuthTokenKey]
	return t, ok && t != "", m.readErr
}

func (m *memStore) Profile(context.Context) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return nil, m.readErr
	}
	p := *m.profile
	return &p, m.readErr
}

func (m *memStore) Session(ctx context.Context) (string, *models.UserProfile, error) {
	t, _, err := m.Token(ctx)
	if err != nil {
		return "", nil, err
	}
	p, err := m.Profile(ctx)
	return t, p, err
}

func (m *memStore) empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, hasToken := m.values[common.AuthTokenKey]
	return !hasToken && m.profile == nil
}

// ---- tokens ----

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

var errBoom = errors.New("boom")
