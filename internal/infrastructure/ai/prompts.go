package ai

import (
	"fmt"
	"strings"

	"github.com/Sharmil001/codula-app/internal/domain/models"
)

// Caps that keep the prompt bounded regardless of PR size.
const (
	maxDescriptionChars = 1000
	maxPromptCommits    = 10
	maxPromptFiles      = 20
	maxPromptComments   = 5
)

const storyInstructions = `You are analyzing a GitHub pull request. Respond with ONLY a JSON object, no prose around it, with exactly these fields:
{
  "summary": "one-paragraph summary of what the PR does",
  "technicalDetails": "how it does it, at implementation level",
  "impact": "what this change means for users or the system",
  "keyChanges": ["the main changes, one bullet each"],
  "complexity": "low" | "medium" | "high",
  "tags": ["short lowercase topic tags"]
}`

// BuildPRPrompt renders a size-bounded prompt from PR data: the description
// is truncated and the commit, file and comment lists are capped so a huge PR
// cannot blow the context window.
func BuildPRPrompt(data models.PRData) string {
	var b strings.Builder

	b.WriteString(storyInstructions)
	b.WriteString("\n\nPull request:\n")
	fmt.Fprintf(&b, "Title: %s\n", data.Title)
	fmt.Fprintf(&b, "Author: %s\n", data.Author)
	fmt.Fprintf(&b, "State: %s\n", data.State)
	fmt.Fprintf(&b, "Changes: +%d -%d across %d files\n", data.Additions, data.Deletions, data.ChangedFiles)

	description := data.Description
	if len(description) > maxDescriptionChars {
		description = description[:maxDescriptionChars] + "..."
	}
	if description != "" {
		fmt.Fprintf(&b, "\nDescription:\n%s\n", description)
	}

	if len(data.Commits) > 0 {
		b.WriteString("\nCommits (newest first):\n")
		for i, c := range data.Commits {
			if i >= maxPromptCommits {
				break
			}
			fmt.Fprintf(&b, "- %s\n", firstLine(c.Message))
		}
	}

	if len(data.Files) > 0 {
		b.WriteString("\nFiles:\n")
		for i, f := range data.Files {
			if i >= maxPromptFiles {
				break
			}
			fmt.Fprintf(&b, "- %s (%s, +%d -%d)\n", f.Name, f.Status, f.Additions, f.Deletions)
		}
	}

	if len(data.ReviewComments) > 0 {
		b.WriteString("\nReview comments:\n")
		for i, c := range data.ReviewComments {
			if i >= maxPromptComments {
				break
			}
			fmt.Fprintf(&b, "- %s: %s\n", c.Author, firstLine(c.Body))
		}
	}

	if len(data.Labels) > 0 {
		fmt.Fprintf(&b, "\nLabels: %s\n", strings.Join(data.Labels, ", "))
	}

	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
