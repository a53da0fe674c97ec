package auth

import (
	"context"
	"sync"
	"time"

	"github.com/Sharmil001/codula-app/internal/domain/models"
	"github.com/Sharmil001/codula-app/internal/domain/ports"
	apperrors "github.com/Sharmil001/codula-app/internal/errors"
)

var _ ports.CredentialStore = (*MemoryStore)(nil)

// MemoryStore keeps tokens in process memory, for runs without a database.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]models.AccessToken
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]models.AccessToken)}
}

func (s *MemoryStore) Upsert(ctx context.Context, token models.AccessToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	token.UpdatedAt = time.Now()
	s.tokens[token.UserID+"/"+token.Provider] = token
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, userID, provider string) (*models.AccessToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[userID+"/"+provider]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return &token, nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID, provider string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID+"/"+provider)
	return nil
}
