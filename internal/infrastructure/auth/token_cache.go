// Package auth manages the GitHub access token lifecycle: session-sourced
// tokens win, the persisted store is the fallback, and upstream 401s trigger
// invalidation.
package auth

import (
	"context"
	"errors"

	"github.com/Sharmil001/codula-app/internal/domain/models"
	"github.com/Sharmil001/codula-app/internal/domain/ports"
	apperrors "github.com/Sharmil001/codula-app/internal/errors"
	"github.com/Sharmil001/codula-app/internal/logger"
)

var _ ports.TokenCache = (*TokenCache)(nil)

type TokenCache struct {
	store   ports.CredentialStore
	session ports.SessionSource
}

func NewTokenCache(store ports.CredentialStore, session ports.SessionSource) *TokenCache {
	return &TokenCache{store: store, session: session}
}

// Store upserts the token for (userID, "github") and refreshes its timestamp.
func (tc *TokenCache) Store(ctx context.Context, userID, token string) error {
	return tc.store.Upsert(ctx, models.AccessToken{
		UserID:   userID,
		Provider: models.ProviderGitHub,
		Token:    token,
	})
}

// Retrieve resolves the current principal's token. A token still carried by
// the session takes priority and is re-stored as a cache refresh; otherwise
// the persisted row is used. Concurrent calls may race on the refresh, which
// the store's upsert-on-conflict semantics make benign.
func (tc *TokenCache) Retrieve(ctx context.Context) (string, error) {
	principal, err := tc.principal(ctx)
	if err != nil {
		return "", err
	}

	if principal.ProviderToken != "" {
		if err := tc.Store(ctx, principal.UserID, principal.ProviderToken); err != nil {
			logger.Warn(ctx, "session token cache refresh failed", "user_id", principal.UserID)
		}
		return principal.ProviderToken, nil
	}

	stored, err := tc.store.Get(ctx, principal.UserID, models.ProviderGitHub)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			if principal.Linked {
				return "", apperrors.ErrTokenExpired
			}
			return "", apperrors.ErrNotConnected
		}
		return "", err
	}
	return stored.Token, nil
}

// Invalidate deletes the persisted token for the current principal. Deleting
// an absent row is fine.
func (tc *TokenCache) Invalidate(ctx context.Context) error {
	principal, err := tc.principal(ctx)
	if err != nil {
		return err
	}
	return tc.store.Delete(ctx, principal.UserID, models.ProviderGitHub)
}

func (tc *TokenCache) principal(ctx context.Context) (*models.Principal, error) {
	principal, err := tc.session.Principal(ctx)
	if err != nil {
		return nil, apperrors.ErrAuthRequired.WithError(err)
	}
	if principal == nil {
		return nil, apperrors.ErrAuthRequired
	}
	return principal, nil
}
