package regex

import "regexp"

var (
	// PR URL patterns, tried in order. Both forms tolerate query/hash suffixes.
	GitHubPRURL  = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pull/(\d+)(?:[?#].*)?$`)
	GitHubPRsURL = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pulls/(\d+)(?:[?#].*)?$`)

	// Issue linkage patterns over PR descriptions, tried in order.
	IssueCloseLink = regexp.MustCompile(`(?i)(?:close[sd]?|fix(?:e[sd])?|resolve[sd]?)\s+#(\d+)`)
	IssueBareRef   = regexp.MustCompile(`#(\d+)`)

	// Unified diff structure.
	DiffFileHeader = regexp.MustCompile(`^diff --git a/(.+?) b/(.+)$`)
	DiffHunkHeader = regexp.MustCompile(`^@@ .*@@`)

	// AI and JSON parsing.
	MarkdownJSONBlock = regexp.MustCompile("(?s)```(?:json)?\n?(.*?)```")
	JSONString        = regexp.MustCompile(`"(?:\\.|[^"\\])*"`)
)
