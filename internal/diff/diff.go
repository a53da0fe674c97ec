// Package diff reconstructs per-file before/after content from unified diff
// text. It is pure: no I/O, no errors, malformed input yields empty results.
package diff

import (
	"strings"

	"github.com/Sharmil001/codula-app/internal/domain/models"
	"github.com/Sharmil001/codula-app/internal/regex"
)

// ExtractFileChanges splits a unified diff on "diff --git" boundaries and
// replays each file's hunks: context lines go to both sides, removed lines to
// the original only, added lines to the changed only. Multiple hunks per file
// concatenate in order.
func ExtractFileChanges(diffText string) []models.FileChange {
	if strings.TrimSpace(diffText) == "" {
		return nil
	}

	var changes []models.FileChange
	for _, segment := range splitFileSegments(diffText) {
		fc, ok := parseFileSegment(segment)
		if !ok {
			continue
		}
		changes = append(changes, fc)
	}
	return changes
}

// splitFileSegments cuts the diff at each "diff --git" line, keeping the
// header line with its segment. Leading text before the first header is
// dropped.
func splitFileSegments(diffText string) []string {
	lines := strings.Split(diffText, "\n")

	var segments []string
	var current []string
	for _, line := range lines {
		if strings.HasPrefix(line, "diff --git ") {
			if len(current) > 0 {
				segments = append(segments, strings.Join(current, "\n"))
			}
			current = []string{line}
			continue
		}
		if current != nil {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		segments = append(segments, strings.Join(current, "\n"))
	}
	return segments
}

func parseFileSegment(segment string) (models.FileChange, bool) {
	lines := strings.Split(segment, "\n")

	name := fileName(lines[0])
	if name == "" {
		return models.FileChange{}, false
	}

	var original, changed strings.Builder
	inHunk := false
	for _, line := range lines[1:] {
		if regex.DiffHunkHeader.MatchString(line) {
			inHunk = true
			continue
		}
		if !inHunk {
			continue
		}
		// Metadata can appear mid-segment when segments were concatenated.
		if strings.HasPrefix(line, "diff --git ") || strings.HasPrefix(line, "index ") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++"):
		case strings.HasPrefix(line, "-"):
			original.WriteString(line[1:])
			original.WriteString("\n")
		case strings.HasPrefix(line, "+"):
			changed.WriteString(line[1:])
			changed.WriteString("\n")
		case strings.HasPrefix(line, " "):
			original.WriteString(line[1:])
			original.WriteString("\n")
			changed.WriteString(line[1:])
			changed.WriteString("\n")
		}
	}

	return models.FileChange{
		FileName: name,
		Original: strings.TrimRight(original.String(), " \t\n"),
		Changed:  strings.TrimRight(changed.String(), " \t\n"),
	}, true
}

// fileName extracts the post-image path from a "diff --git a/<old> b/<new>"
// header, falling back to the pre-image path.
func fileName(header string) string {
	m := regex.DiffFileHeader.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	if m[2] != "" {
		return m[2]
	}
	return m[1]
}
