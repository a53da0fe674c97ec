package ports

import (
	"context"

	"github.com/Sharmil001/codula-app/internal/domain/models"
)

// SessionSource resolves the current principal from whatever session
// mechanism the caller runs under. Returning a nil principal means there is
// no active session.
type SessionSource interface {
	Principal(ctx context.Context) (*models.Principal, error)
}
