package models

import "time"

// PR lifecycle states. Merged is derived: a non-nil merge timestamp overrides
// whatever raw state the API reports.
const (
	PRStateOpen   = "open"
	PRStateClosed = "closed"
	PRStateMerged = "merged"
)

type (
	// RepoCoordinates is an (owner, name) pair parsed from a full repository
	// name or a PR URL. Both fields are non-empty by construction.
	RepoCoordinates struct {
		Owner string
		Name  string
	}

	// FileChange holds the reconstructed before/after content for one file,
	// produced by replaying a unified diff.
	FileChange struct {
		FileName string
		Original string
		Changed  string
	}

	// CommitRecord is one commit in a repository's recent activity, enriched
	// with per-file diffs.
	CommitRecord struct {
		SHA     string
		URL     string
		Date    time.Time
		Author  string
		Message string
		Files   []FileChange
	}

	// PullRequestRecord is one pull request in a repository's recent activity.
	PullRequestRecord struct {
		ID        int64
		URL       string
		Author    string
		State     string
		Title     string
		Number    int
		CreatedAt time.Time
		UpdatedAt time.Time
		ClosedAt  *time.Time
		MergedAt  *time.Time
		Files     []FileChange
	}

	// Activity bundles a user's recent commits and pull requests for one
	// repository.
	Activity struct {
		Repo         string
		Commits      []CommitRecord
		PullRequests []PullRequestRecord
	}

	// Repository is one entry from the authenticated user's repository list.
	Repository struct {
		FullName    string
		Description string
		Language    string
		Private     bool
		UpdatedAt   time.Time
	}
)

// FullName returns the canonical "owner/name" form.
func (rc RepoCoordinates) FullName() string {
	return rc.Owner + "/" + rc.Name
}
