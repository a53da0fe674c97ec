package ports

import (
	"context"

	"github.com/Sharmil001/codula-app/internal/domain/models"
)

// StoryGenerator is one text-generation backend capable of turning PR data
// into a narrative story.
type StoryGenerator interface {
	// Name identifies the backend, e.g. "gemini".
	Name() string
	// Configured reports whether the backend has a credential. Unconfigured
	// backends are skipped without a network call.
	Configured() bool
	// GenerateStory produces a PRStory or fails; failures never abort the
	// analysis, they only advance the backend chain.
	GenerateStory(ctx context.Context, data models.PRData) (models.PRStory, error)
}
