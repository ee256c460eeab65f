package services

import (
	"context"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
)

// CredentialStore is the persisted session used by the services.
// *credentials.Store implements it.
type CredentialStore interface {
	Set(ctx context.Context, token string, profile models.UserProfile) error
	Clear(ctx context.Context) error
	Token(ctx context.Context) (string, bool, error)
	Profile(ctx context.Context) (*models.UserProfile, error)
	Session(ctx context.Context) (string, *models.UserProfile, error)
}
