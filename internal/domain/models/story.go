package models

// Complexity tiers for a PR story.
const (
	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

// Provenance of a PR analysis.
const (
	SourceModel     = "model"
	SourceRuleBased = "rule-based"
)

type (
	// PRStory is the narrative produced for a pull request. Model-generated
	// and rule-based stories share this exact shape.
	PRStory struct {
		Summary          string   `json:"summary"`
		TechnicalDetails string   `json:"technicalDetails"`
		Impact           string   `json:"impact"`
		KeyChanges       []string `json:"keyChanges"`
		Complexity       string   `json:"complexity"`
		Tags             []string `json:"tags"`
	}

	// PRAnalysis tags a story with its provenance so callers can tell a model
	// narrative from the deterministic fallback without changing what they
	// consume downstream.
	PRAnalysis struct {
		Story  PRStory
		Source string
		Model  string
	}
)
