package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sharmil001/codula-app/internal/domain/models"
	apperrors "github.com/Sharmil001/codula-app/internal/errors"
)

func linkedPrincipal(token string) *models.Principal {
	return &models.Principal{
		UserID:        "user-1",
		Login:         "octo",
		ProviderToken: token,
		Linked:        true,
	}
}

func TestTokenCacheStore(t *testing.T) {
	ctx := context.Background()

	t.Run("should upsert under the github provider", func(t *testing.T) {
		store := new(MockCredentialStore)
		store.On("Upsert", mock.Anything, models.AccessToken{
			UserID:   "user-1",
			Provider: models.ProviderGitHub,
			Token:    "ghp_secret",
		}).Return(nil)

		cache := NewTokenCache(store, new(MockSessionSource))

		require.NoError(t, cache.Store(ctx, "user-1", "ghp_secret"))
		store.AssertExpectations(t)
	})

	t.Run("should surface storage failures", func(t *testing.T) {
		store := new(MockCredentialStore)
		store.On("Upsert", mock.Anything, mock.Anything).Return(apperrors.ErrStorageUnavailable)

		cache := NewTokenCache(store, new(MockSessionSource))

		err := cache.Store(ctx, "user-1", "ghp_secret")
		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	})
}

func TestTokenCacheRetrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("session token wins and refreshes the store", func(t *testing.T) {
		session := new(MockSessionSource)
		session.On("Principal", mock.Anything).Return(linkedPrincipal("ghp_fresh"), nil)

		store := new(MockCredentialStore)
		store.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		cache := NewTokenCache(store, session)

		token, err := cache.Retrieve(ctx)

		require.NoError(t, err)
		assert.Equal(t, "ghp_fresh", token)
		store.AssertCalled(t, "Upsert", mock.Anything, models.AccessToken{
			UserID:   "user-1",
			Provider: models.ProviderGitHub,
			Token:    "ghp_fresh",
		})
		store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("session token still wins when the refresh fails", func(t *testing.T) {
		session := new(MockSessionSource)
		session.On("Principal", mock.Anything).Return(linkedPrincipal("ghp_fresh"), nil)

		store := new(MockCredentialStore)
		store.On("Upsert", mock.Anything, mock.Anything).Return(apperrors.ErrStorageUnavailable)

		cache := NewTokenCache(store, session)

		token, err := cache.Retrieve(ctx)

		require.NoError(t, err)
		assert.Equal(t, "ghp_fresh", token)
	})

	t.Run("stored token is returned after a store round trip", func(t *testing.T) {
		session := new(MockSessionSource)
		session.On("Principal", mock.Anything).Return(linkedPrincipal(""), nil)

		cache := NewTokenCache(NewMemoryStore(), session)

		require.NoError(t, cache.Store(ctx, "user-1", "ghp_persisted"))

		token, err := cache.Retrieve(ctx)

		require.NoError(t, err)
		assert.Equal(t, "ghp_persisted", token)
	})

	t.Run("linked principal without a stored token means expiry", func(t *testing.T) {
		session := new(MockSessionSource)
		session.On("Principal", mock.Anything).Return(linkedPrincipal(""), nil)

		store := new(MockCredentialStore)
		store.On("Get", mock.Anything, "user-1", models.ProviderGitHub).
			Return(nil, apperrors.ErrTokenNotFound)

		cache := NewTokenCache(store, session)

		_, err := cache.Retrieve(ctx)

		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("unlinked principal without a stored token means not connected", func(t *testing.T) {
		session := new(MockSessionSource)
		session.On("Principal", mock.Anything).Return(&models.Principal{UserID: "user-1"}, nil)

		store := new(MockCredentialStore)
		store.On("Get", mock.Anything, "user-1", models.ProviderGitHub).
			Return(nil, apperrors.ErrTokenNotFound)

		cache := NewTokenCache(store, session)

		_, err := cache.Retrieve(ctx)

		assert.ErrorIs(t, err, apperrors.ErrNotConnected)
	})

	t.Run("storage failures pass through unchanged", func(t *testing.T) {
		session := new(MockSessionSource)
		session.On("Principal", mock.Anything).Return(linkedPrincipal(""), nil)

		store := new(MockCredentialStore)
		store.On("Get", mock.Anything, "user-1", models.ProviderGitHub).
			Return(nil, apperrors.ErrStorageUnavailable)

		cache := NewTokenCache(store, session)

		_, err := cache.Retrieve(ctx)

		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	})

	t.Run("missing session means auth required", func(t *testing.T) {
		session := new(MockSessionSource)
		session.On("Principal", mock.Anything).Return(nil, errors.New("session expired"))

		cache := NewTokenCache(new(MockCredentialStore), session)

		_, err := cache.Retrieve(ctx)

		assert.ErrorIs(t, err, apperrors.ErrAuthRequired)
	})

	t.Run("nil principal means auth required", func(t *testing.T) {
		session := new(MockSessionSource)
		session.On("Principal", mock.Anything).Return(nil, nil)

		cache := NewTokenCache(new(MockCredentialStore), session)

		_, err := cache.Retrieve(ctx)

		assert.ErrorIs(t, err, apperrors.ErrAuthRequired)
	})
}

func TestTokenCacheInvalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("should delete the persisted row", func(t *testing.T) {
		session := new(MockSessionSource)
		session.On("Principal", mock.Anything).Return(linkedPrincipal("ghp_x"), nil)

		store := new(MockCredentialStore)
		store.On("Delete", mock.Anything, "user-1", models.ProviderGitHub).Return(nil)

		cache := NewTokenCache(store, session)

		require.NoError(t, cache.Invalidate(ctx))
		store.AssertExpectations(t)
	})

	t.Run("should be idempotent for absent rows", func(t *testing.T) {
		session := new(MockSessionSource)
		session.On("Principal", mock.Anything).Return(linkedPrincipal(""), nil)

		cache := NewTokenCache(NewMemoryStore(), session)

		require.NoError(t, cache.Invalidate(ctx))
		require.NoError(t, cache.Invalidate(ctx))
	})
}
