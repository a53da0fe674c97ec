package token_repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Sharmil001/codula-app/internal/domain/models"
	"github.com/Sharmil001/codula-app/internal/domain/ports"
	apperrors "github.com/Sharmil001/codula-app/internal/errors"
	"github.com/Sharmil001/codula-app/internal/infrastructure/persistence/postgres"
	"github.com/Sharmil001/codula-app/internal/logger"
)

type TokenRepository struct {
	querier postgres.Querier
}

func NewTokenRepository(querier postgres.Querier) ports.CredentialStore {
	return &TokenRepository{querier: querier}
}

func (r *TokenRepository) Upsert(ctx context.Context, token models.AccessToken) error {
	const q = `
		INSERT INTO access_tokens (user_id, provider, access_token, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, provider) DO UPDATE
		SET access_token = EXCLUDED.access_token,
			updated_at = now();
	`
	_, err := r.querier.Exec(ctx, q, token.UserID, token.Provider, token.Token)
	if err != nil {
		// Never log the token value itself.
		logger.Error(ctx, "Upsert token failed", err, "user_id", token.UserID, "provider", token.Provider)
		return apperrors.ErrStorageUnavailable.WithError(err)
	}
	return nil
}

func (r *TokenRepository) Get(ctx context.Context, userID, provider string) (*models.AccessToken, error) {
	const q = `
		SELECT user_id, provider, access_token, updated_at
		FROM access_tokens
		WHERE user_id = $1 AND provider = $2;
	`
	var t models.AccessToken
	row := r.querier.QueryRow(ctx, q, userID, provider)
	if err := row.Scan(&t.UserID, &t.Provider, &t.Token, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		logger.Error(ctx, "Get token failed", err, "user_id", userID, "provider", provider)
		return nil, apperrors.ErrStorageUnavailable.WithError(err)
	}
	return &t, nil
}

func (r *TokenRepository) Delete(ctx context.Context, userID, provider string) error {
	const q = `
		DELETE FROM access_tokens
		WHERE user_id = $1 AND provider = $2;
	`
	// Deleting an absent row is not an error; invalidation is idempotent.
	_, err := r.querier.Exec(ctx, q, userID, provider)
	if err != nil {
		logger.Error(ctx, "Delete token failed", err, "user_id", userID, "provider", provider)
		return apperrors.ErrStorageUnavailable.WithError(err)
	}
	return nil
}
