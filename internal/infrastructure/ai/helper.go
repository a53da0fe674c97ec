package ai

import (
	"encoding/json"
	"strings"

	"github.com/Sharmil001/codula-app/internal/domain/models"
	apperrors "github.com/Sharmil001/codula-app/internal/errors"
	"github.com/Sharmil001/codula-app/internal/regex"
)

// ParseStory decodes a backend reply into a PRStory. The body is tried
// verbatim first; when the model wrapped the object in prose or a markdown
// fence, the first balanced {...} block is extracted and tried instead.
func ParseStory(text string) (models.PRStory, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.PRStory{}, apperrors.ErrInvalidAIOutput
	}

	var story models.PRStory
	if err := json.Unmarshal([]byte(SanitizeJSON(text)), &story); err == nil && story.Summary != "" {
		return story, nil
	}

	block := ExtractJSON(text)
	if block == "" {
		return models.PRStory{}, apperrors.ErrInvalidAIOutput
	}
	if err := json.Unmarshal([]byte(block), &story); err != nil {
		return models.PRStory{}, apperrors.ErrInvalidAIOutput.WithError(err)
	}
	if story.Summary == "" {
		return models.PRStory{}, apperrors.ErrInvalidAIOutput
	}
	return story, nil
}

// ExtractJSON pulls a valid JSON object out of free-form model output,
// preferring markdown code blocks, then the first balanced brace block.
// Returns "" when nothing parses.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)

	for _, m := range regex.MarkdownJSONBlock.FindAllStringSubmatch(text, -1) {
		if len(m) < 2 {
			continue
		}
		candidate := SanitizeJSON(strings.TrimSpace(m[1]))
		if json.Valid([]byte(candidate)) {
			return candidate
		}
	}

	for i := 0; i < len(text); {
		start := strings.IndexByte(text[i:], '{')
		if start == -1 {
			break
		}
		start += i

		end, ok := matchBrace(text, start)
		if !ok {
			i = start + 1
			continue
		}
		candidate := SanitizeJSON(text[start : end+1])
		if json.Valid([]byte(candidate)) {
			return candidate
		}
		i = end + 1
	}

	return ""
}

// matchBrace finds the index of the brace closing the one at start, honoring
// string literals and escapes.
func matchBrace(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return i, true
				}
			}
		}
	}
	return 0, false
}

// SanitizeJSON escapes raw newlines inside string literals, a common defect
// in model output.
func SanitizeJSON(s string) string {
	return regex.JSONString.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, "\n", "\\n")
	})
}
