package ports

import "context"

// TokenCache manages the lifecycle of the provider token for the current
// principal: session first, persisted store second, invalidation on 401.
type TokenCache interface {
	Store(ctx context.Context, userID, token string) error
	Retrieve(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) error
}
