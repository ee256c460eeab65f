package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/taskdesk/internal/client/credentials"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/common"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

// ProfileReader reads the cached user profile.
type ProfileReader interface {
	Profile(ctx context.Context) (*models.UserProfile, error)
}

// RoleService projects the stored profile's role. It is re-read on
// Refresh and on every credential change, never cached beyond that.
type RoleService struct {
	profiles ProfileReader
	log      logging.Logger

	mu   sync.RWMutex
	role models.Role
}

func NewRoleService(profiles ProfileReader, log logging.Logger) *RoleService {
	return &RoleService{profiles: profiles, log: log}
}

// Refresh re-reads the stored profile. A read error leaves no role.
func (r *RoleService) Refresh(ctx context.Context) {
	var role models.Role
	p, err := r.profiles.Profile(ctx)
	if err != nil {
		r.log.Warn(ctx, "reading profile failed", "error", err)
	} else if p != nil {
		role = p.Role
	}

	r.mu.Lock()
	r.role = role
	r.mu.Unlock()
}

// Watch refreshes the role for every change to the token or profile key
// until changes is closed or ctx is done. onChange, if not nil, is called
// after each refresh.
func (r *RoleService) Watch(ctx context.Context, changes <-chan credentials.Change, onChange func(credentials.Change)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ch, ok := <-changes:
			if !ok {
				return
			}
			if ch.Key != common.AuthTokenKey && ch.Key != common.AuthUserKey {
				continue
			}
			r.Refresh(ctx)
			if onChange != nil {
				onChange(ch)
			}
		}
	}
}

func (r *RoleService) Role() models.Role {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.role
}

func (r *RoleService) IsAdmin() bool { return r.Role() == models.RoleAdmin }

func (r *RoleService) IsUser() bool { return r.Role() == models.RoleUser }

// IsAuthenticated reports whether any role is stored.
func (r *RoleService) IsAuthenticated() bool { return r.Role() != "" }
