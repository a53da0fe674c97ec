package ports

import (
	"context"

	"github.com/Sharmil001/codula-app/internal/domain/models"
)

// CredentialStore persists provider access tokens keyed by (user, provider).
// Upsert replaces any existing row for the pair and refreshes its timestamp.
type CredentialStore interface {
	Upsert(ctx context.Context, token models.AccessToken) error
	Get(ctx context.Context, userID, provider string) (*models.AccessToken, error)
	Delete(ctx context.Context, userID, provider string) error
}
