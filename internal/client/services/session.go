package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/client/client"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/client/token"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

type AuthState int

const (
	StateUnknown AuthState = iota
	StateAuthenticated
	StateAnonymous
)

func (s AuthState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// SessionService owns the current user.
//
// Contract:
//   - CheckAuth: validate the stored session; an incomplete or expired one
//     is cleared. Idempotent.
//   - Login/Register: on success persist token and profile and become
//     authenticated; on failure return the error and keep the state.
//   - Logout: clear the stored session without contacting the server.
type SessionService interface {
	CheckAuth(ctx context.Context) AuthState
	Login(ctx context.Context, req models.LoginRequest) error
	Register(ctx context.Context, req models.RegisterRequest) error
	Logout(ctx context.Context) error

	State() AuthState
	User() *models.UserProfile
	IsAuthenticated() bool
	IsLoading() bool
}

type sessionService struct {
	client client.Client
	store  CredentialStore
	log    logging.Logger
	now    func() time.Time

	mu       sync.RWMutex
	state    AuthState
	user     *models.UserProfile
	inflight int
}

func NewSessionService(c client.Client, store CredentialStore, log logging.Logger) SessionService {
	return &sessionService{client: c, store: store, log: log, now: time.Now}
}

func (s *sessionService) CheckAuth(ctx context.Context) AuthState {
	s.track(1)
	defer s.track(-1)

	tok, profile, err := s.store.Session(ctx)
	if err != nil {
		// the stored session may still be valid; leave it for the next check
		s.log.Warn(ctx, "reading stored session failed", "error", err)
		s.set(StateAnonymous, nil)
		return StateAnonymous
	}

	if tok != "" && profile != nil && !token.IsExpired(tok, s.now()) {
		s.set(StateAuthenticated, profile)
		return StateAuthenticated
	}

	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn(ctx, "clearing stored session failed", "error", err)
	}
	s.set(StateAnonymous, nil)
	return StateAnonymous
}

func (s *sessionService) Login(ctx context.Context, req models.LoginRequest) error {
	s.track(1)
	defer s.track(-1)

	resp, err := client.Do[models.AuthResponse](ctx, s.client, http.MethodPost, "/auth/login", req)
	if err != nil {
		return err
	}
	return s.establish(ctx, resp)
}

func (s *sessionService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	s.track(1)
	defer s.track(-1)

	resp, err := client.Do[models.AuthResponse](ctx, s.client, http.MethodPost, "/auth/register", req)
	if err != nil {
		return err
	}
	return s.establish(ctx, resp)
}

func (s *sessionService) establish(ctx context.Context, resp models.AuthResponse) error {
	if resp.Token == "" {
		return fmt.Errorf("auth response carries no token: %w", client.ErrDecode)
	}
	profile := resp.Profile()
	if err := s.store.Set(ctx, resp.Token, profile); err != nil {
		return err
	}
	s.set(StateAuthenticated, &profile)
	s.log.Info(ctx, "signed in", "user", profile.Username, "role", profile.Role)
	return nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	err := s.store.Clear(ctx)
	s.set(StateAnonymous, nil)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *sessionService) set(state AuthState, user *models.UserProfile) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.mu.Unlock()
}

func (s *sessionService) track(delta int) {
	s.mu.Lock()
	s.inflight += delta
	s.mu.Unlock()
}

func (s *sessionService) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the current profile, or nil.
func (s *sessionService) User() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *sessionService) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// IsLoading is true until the first CheckAuth completes and while any
// auth operation is running.
func (s *sessionService) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateUnknown || s.inflight > 0
}
