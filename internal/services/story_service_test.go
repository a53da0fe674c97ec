package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sharmil001/codula-app/internal/domain/models"
)

func TestStoryServiceAnalyze(t *testing.T) {
	ctx := context.Background()
	ref := models.PRRef{
		RepoCoordinates: models.RepoCoordinates{Owner: "octo", Name: "widgets"},
		Number:          42,
	}

	t.Run("should fetch the PR and analyze it", func(t *testing.T) {
		data := models.PRData{Title: "Add retry", Additions: 700, ChangedFiles: 3}

		source := new(MockPRSource)
		source.On("FetchPRData", mock.Anything, "octo", "widgets", 42).Return(data, nil)

		service := NewStoryService(source, NewAnalyzerService(time.Second))

		fetched, analysis, err := service.Analyze(ctx, ref)

		require.NoError(t, err)
		assert.Equal(t, data, fetched)
		assert.Equal(t, models.SourceRuleBased, analysis.Source)
		assert.Equal(t, models.ComplexityHigh, analysis.Story.Complexity)
		source.AssertExpectations(t)
	})

	t.Run("should propagate fetch failures", func(t *testing.T) {
		source := new(MockPRSource)
		source.On("FetchPRData", mock.Anything, "octo", "widgets", 42).
			Return(models.PRData{}, errors.New("upstream down"))

		service := NewStoryService(source, NewAnalyzerService(time.Second))

		_, _, err := service.Analyze(ctx, ref)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "upstream down")
	})
}
