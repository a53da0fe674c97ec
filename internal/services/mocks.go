package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Sharmil001/codula-app/internal/domain/models"
)

type MockStoryGenerator struct {
	mock.Mock
}

func (m *MockStoryGenerator) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockStoryGenerator) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockStoryGenerator) GenerateStory(ctx context.Context, data models.PRData) (models.PRStory, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(models.PRStory), args.Error(1)
}

type MockPRSource struct {
	mock.Mock
}

func (m *MockPRSource) FetchPRData(ctx context.Context, owner, repo string, number int) (models.PRData, error) {
	args := m.Called(ctx, owner, repo, number)
	return args.Get(0).(models.PRData), args.Error(1)
}
