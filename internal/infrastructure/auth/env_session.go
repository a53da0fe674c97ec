package auth

import (
	"context"

	"github.com/Sharmil001/codula-app/internal/domain/models"
	"github.com/Sharmil001/codula-app/internal/domain/ports"
	apperrors "github.com/Sharmil001/codula-app/internal/errors"
)

var _ ports.SessionSource = (*EnvSession)(nil)

// EnvSession is the CLI stand-in for a web session: the principal comes from
// configuration and an optional GITHUB_TOKEN plays the role of the
// session-carried provider token.
type EnvSession struct {
	userID string
	token  string
}

func NewEnvSession(userID, token string) *EnvSession {
	return &EnvSession{userID: userID, token: token}
}

func (s *EnvSession) Principal(ctx context.Context) (*models.Principal, error) {
	if s.userID == "" {
		return nil, apperrors.ErrConfigMissing
	}
	return &models.Principal{
		UserID:        s.userID,
		Login:         s.userID,
		ProviderToken: s.token,
		Linked:        s.token != "",
	}, nil
}
