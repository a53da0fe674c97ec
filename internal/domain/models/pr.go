package models

import "time"

type (
	// PRRef locates a single pull request: repository coordinates plus number.
	PRRef struct {
		RepoCoordinates
		Number int
	}

	// CommitSummary is a single commit inside a PR, newest first.
	CommitSummary struct {
		SHA     string
		Message string
		Author  string
		Date    time.Time
	}

	// PRFileStat is the per-file stat line of a PR, including the raw patch
	// fragment when the API provides one.
	PRFileStat struct {
		Name      string
		Status    string
		Additions int
		Deletions int
		Patch     string
	}

	// ReviewComment is one inline review comment on a PR.
	ReviewComment struct {
		Author string
		Body   string
		Path   string
	}

	// PRData aggregates everything fetched for one pull request.
	PRData struct {
		Title          string
		Description    string
		Author         string
		State          string
		CreatedAt      time.Time
		UpdatedAt      time.Time
		MergedAt       *time.Time
		Additions      int
		Deletions      int
		ChangedFiles   int
		Commits        []CommitSummary
		Files          []PRFileStat
		ReviewComments []ReviewComment
		Labels         []string
		LinkedIssues   []string
	}
)
