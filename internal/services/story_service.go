package services

import (
	"context"

	"github.com/Sharmil001/codula-app/internal/domain/models"
	"github.com/Sharmil001/codula-app/internal/domain/ports"
)

// StoryService ties PR ingestion to narrative analysis: one call from a PR
// reference to a finished story.
type StoryService struct {
	source   ports.PRSource
	analyzer *AnalyzerService
}

func NewStoryService(source ports.PRSource, analyzer *AnalyzerService) *StoryService {
	return &StoryService{source: source, analyzer: analyzer}
}

// Analyze fetches the PR behind ref and produces its analysis. Fetch failures
// propagate; analysis itself cannot fail.
func (s *StoryService) Analyze(ctx context.Context, ref models.PRRef) (models.PRData, models.PRAnalysis, error) {
	data, err := s.source.FetchPRData(ctx, ref.Owner, ref.Name, ref.Number)
	if err != nil {
		return models.PRData{}, models.PRAnalysis{}, err
	}
	return data, s.analyzer.AnalyzePR(ctx, data), nil
}
