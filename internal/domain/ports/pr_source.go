package ports

import (
	"context"

	"github.com/Sharmil001/codula-app/internal/domain/models"
)

// PRSource fetches full pull request detail from the VCS provider.
type PRSource interface {
	FetchPRData(ctx context.Context, owner, repo string, number int) (models.PRData, error)
}
