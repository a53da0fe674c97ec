package services

import (
	"context"
	"time"

	"github.com/Sharmil001/codula-app/internal/domain/models"
	"github.com/Sharmil001/codula-app/internal/domain/ports"
	"github.com/Sharmil001/codula-app/internal/logger"
)

const defaultBackendTimeout = 8 * time.Second

// AnalyzerService walks the configured backends in preference order and falls
// back to the rule-based story when none of them yields a usable result. The
// order is sequential on purpose: it encodes the cost/quality tradeoff and
// avoids paying several providers for the same answer.
type AnalyzerService struct {
	generators []ports.StoryGenerator
	timeout    time.Duration
}

func NewAnalyzerService(timeout time.Duration, generators ...ports.StoryGenerator) *AnalyzerService {
	if timeout <= 0 {
		timeout = defaultBackendTimeout
	}
	return &AnalyzerService{
		generators: generators,
		timeout:    timeout,
	}
}

// AnalyzePR never fails: a backend without a credential is skipped without a
// network call, a failing backend advances the chain, and an exhausted chain
// resolves through the deterministic fallback.
func (s *AnalyzerService) AnalyzePR(ctx context.Context, data models.PRData) models.PRAnalysis {
	for _, gen := range s.generators {
		if !gen.Configured() {
			logger.Debug(ctx, "backend not configured, skipping", "backend", gen.Name())
			continue
		}

		// Each attempt is bounded so a hung provider cannot stall the
		// fallback path.
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		story, err := gen.GenerateStory(attemptCtx, data)
		cancel()
		if err != nil {
			logger.Warn(ctx, "backend failed, trying next", "backend", gen.Name(), "error", err)
			continue
		}

		return models.PRAnalysis{
			Story:  story,
			Source: models.SourceModel,
			Model:  gen.Name(),
		}
	}

	logger.Info(ctx, "all backends failed, using rule-based analysis")
	return models.PRAnalysis{
		Story:  RuleBasedStory(data),
		Source: models.SourceRuleBased,
	}
}
