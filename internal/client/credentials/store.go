// Package credentials persists the session token and the cached user
// profile. Both values live in the local metadata table, so every CLI
// process opening the same database file sees the same session.
package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/taskdesk/internal/common"
	"github.com/dmitrijs2005/taskdesk/internal/dbx"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

// Store reads and writes the stored session. Values are not validated.
type Store struct {
	db      *sql.DB
	repo    metadata.Repository
	newRepo func(dbx.DBTX) metadata.Repository
	log     logging.Logger

	// mu serializes writes with watcher polls so that a Store never
	// reports its own writes as changes.
	mu       sync.Mutex
	watchers map[*watcher]struct{}
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func NewStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:       db,
		repo:     metadata.NewSQLiteRepository(db),
		newRepo:  func(tx dbx.DBTX) metadata.Repository { return metadata.NewSQLiteRepository(tx) },
		log:      logging.Nop(),
		watchers: make(map[*watcher]struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Set stores the token and the profile together.
func (s *Store) Set(ctx context.Context, token string, profile models.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)
		if err := repo.Set(ctx, common.AuthTokenKey, token); err != nil {
			return err
		}
		return repo.Set(ctx, common.AuthUserKey, string(raw))
	})
	if err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}

	s.observeLocked(map[string]string{common.AuthTokenKey: token, common.AuthUserKey: string(raw)})
	return nil
}

// Clear removes both the token and the profile.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)
		for _, k := range common.CredentialKeys {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}

	s.observeLocked(map[string]string{})
	return nil
}

// Token returns the stored token and whether one is present.
func (s *Store) Token(ctx context.Context) (string, bool, error) {
	token, ok, err := s.repo.Get(ctx, common.AuthTokenKey)
	if err != nil {
		return "", false, err
	}
	return token, ok && token != "", nil
}

// Profile returns the cached profile, or nil when it is absent or cannot
// be decoded.
func (s *Store) Profile(ctx context.Context) (*models.UserProfile, error) {
	raw, ok, err := s.repo.Get(ctx, common.AuthUserKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return s.decodeProfile(ctx, raw), nil
}

// Session reads the token and the profile in a single query.
func (s *Store) Session(ctx context.Context) (string, *models.UserProfile, error) {
	snap, err := s.repo.Snapshot(ctx, common.CredentialKeys...)
	if err != nil {
		return "", nil, err
	}

	var profile *models.UserProfile
	if raw, ok := snap[common.AuthUserKey]; ok {
		profile = s.decodeProfile(ctx, raw)
	}
	return snap[common.AuthTokenKey], profile, nil
}

func (s *Store) decodeProfile(ctx context.Context, raw string) *models.UserProfile {
	var p models.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.Debug(ctx, "stored profile is not valid JSON", "error", err)
		return nil
	}
	return &p
}
