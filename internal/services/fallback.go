package services

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/Sharmil001/codula-app/internal/domain/models"
)

// Thresholds for the rule-based complexity tiers.
const (
	highChangeLines   = 500
	highChangedFiles  = 10
	mediumChangeLines = 100
)

var testPathMarkers = []string{"test", "spec", "__tests__"}

// RuleBasedStory computes a deterministic story from PR structure alone. It
// is the terminal fallback when every model backend fails, so it cannot
// itself fail.
func RuleBasedStory(data models.PRData) models.PRStory {
	totalLines := data.Additions + data.Deletions

	complexity := models.ComplexityLow
	switch {
	case totalLines > highChangeLines || data.ChangedFiles > highChangedFiles:
		complexity = models.ComplexityHigh
	case totalLines > mediumChangeLines:
		complexity = models.ComplexityMedium
	}

	extensions := topExtensions(data.Files, 3)
	hasTests := touchesTests(data.Files)

	keyChanges := make([]string, 0, len(extensions)+1)
	for _, ext := range extensions {
		keyChanges = append(keyChanges, fmt.Sprintf("Changes to %s files", ext))
	}
	if hasTests {
		keyChanges = append(keyChanges, "Updates to tests")
	}
	if len(keyChanges) == 0 {
		keyChanges = append(keyChanges, fmt.Sprintf("%d files changed", data.ChangedFiles))
	}

	tags := make([]string, 0, len(extensions)+len(data.Labels)+1)
	tags = append(tags, extensions...)
	if hasTests {
		tags = append(tags, "tests")
	}
	for _, label := range data.Labels {
		tags = append(tags, strings.ToLower(label))
	}

	return models.PRStory{
		Summary: fmt.Sprintf("%s: %d files changed (+%d/-%d lines)",
			data.Title, data.ChangedFiles, data.Additions, data.Deletions),
		TechnicalDetails: fmt.Sprintf("Touches %d files with %d added and %d removed lines.",
			data.ChangedFiles, data.Additions, data.Deletions),
		Impact:     fmt.Sprintf("A %s-complexity change by %s.", complexity, data.Author),
		KeyChanges: keyChanges,
		Complexity: complexity,
		Tags:       dedupe(tags),
	}
}

// topExtensions returns up to limit unique file extensions, most frequent
// first, ties broken alphabetically for determinism.
func topExtensions(files []models.PRFileStat, limit int) []string {
	counts := make(map[string]int)
	for _, f := range files {
		ext := strings.TrimPrefix(path.Ext(f.Name), ".")
		if ext == "" {
			continue
		}
		counts[strings.ToLower(ext)]++
	}

	extensions := make([]string, 0, len(counts))
	for ext := range counts {
		extensions = append(extensions, ext)
	}
	sort.Slice(extensions, func(i, j int) bool {
		if counts[extensions[i]] != counts[extensions[j]] {
			return counts[extensions[i]] > counts[extensions[j]]
		}
		return extensions[i] < extensions[j]
	})

	if len(extensions) > limit {
		extensions = extensions[:limit]
	}
	return extensions
}

func touchesTests(files []models.PRFileStat) bool {
	for _, f := range files {
		lowered := strings.ToLower(f.Name)
		for _, marker := range testPathMarkers {
			if strings.Contains(lowered, marker) {
				return true
			}
		}
	}
	return false
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
