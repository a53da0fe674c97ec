package auth

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Sharmil001/codula-app/internal/domain/models"
)

type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) Upsert(ctx context.Context, token models.AccessToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockCredentialStore) Get(ctx context.Context, userID, provider string) (*models.AccessToken, error) {
	args := m.Called(ctx, userID, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccessToken), args.Error(1)
}

func (m *MockCredentialStore) Delete(ctx context.Context, userID, provider string) error {
	args := m.Called(ctx, userID, provider)
	return args.Error(0)
}

type MockSessionSource struct {
	mock.Mock
}

func (m *MockSessionSource) Principal(ctx context.Context) (*models.Principal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Principal), args.Error(1)
}
