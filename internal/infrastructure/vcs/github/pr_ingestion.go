package github

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/go-github/v80/github"
	"golang.org/x/sync/errgroup"

	"github.com/Sharmil001/codula-app/internal/domain/models"
	"github.com/Sharmil001/codula-app/internal/domain/ports"
	"github.com/Sharmil001/codula-app/internal/logger"
	"github.com/Sharmil001/codula-app/internal/regex"
)

const (
	prFilesLimit    = 50
	prCommitsLimit  = 30
	prReviewsLimit  = 20
	prCommentsLimit = 20
)

// ParsePRURL extracts repository coordinates and a PR number from a GitHub
// pull request URL. Patterns are tried in order; a total mismatch returns nil
// rather than an error so callers can degrade.
func ParsePRURL(url string) *models.PRRef {
	for _, pattern := range []*regexp.Regexp{regex.GitHubPRURL, regex.GitHubPRsURL} {
		m := pattern.FindStringSubmatch(url)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		return &models.PRRef{
			RepoCoordinates: models.RepoCoordinates{Owner: m[1], Name: m[2]},
			Number:          number,
		}
	}
	return nil
}

var _ ports.PRSource = (*PRIngestion)(nil)

// PRIngestion fetches full pull request detail for analysis.
type PRIngestion struct {
	provider ClientProvider
}

func NewPRIngestion(provider ClientProvider) *PRIngestion {
	return &PRIngestion{provider: provider}
}

// FetchPRData runs four requests in parallel: PR detail, file list, commit
// list and reviews. Detail, files and commits are required; review and
// review-comment failures degrade to empty lists since those endpoints often
// need elevated permissions.
func (pi *PRIngestion) FetchPRData(ctx context.Context, owner, repo string, number int) (models.PRData, error) {
	client, err := pi.provider.GetClient(ctx)
	if err != nil {
		return models.PRData{}, err
	}

	var (
		pr       *github.PullRequest
		files    []*github.CommitFile
		commits  []*github.RepositoryCommit
		comments []models.ReviewComment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		detail, _, err := client.prs.Get(gctx, owner, repo, number)
		if err != nil {
			return fmt.Errorf("error fetching PR #%d in %s/%s: %w", number, owner, repo, err)
		}
		pr = detail
		return nil
	})
	g.Go(func() error {
		list, _, err := client.prs.ListFiles(gctx, owner, repo, number, &github.ListOptions{PerPage: prFilesLimit})
		if err != nil {
			return fmt.Errorf("error fetching files for PR #%d in %s/%s: %w", number, owner, repo, err)
		}
		files = list
		return nil
	})
	g.Go(func() error {
		list, _, err := client.prs.ListCommits(gctx, owner, repo, number, &github.ListOptions{PerPage: prCommitsLimit})
		if err != nil {
			return fmt.Errorf("error fetching commits for PR #%d in %s/%s: %w", number, owner, repo, err)
		}
		commits = list
		return nil
	})
	g.Go(func() error {
		comments = pi.fetchReviewComments(gctx, client, owner, repo, number)
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.PRData{}, err
	}

	data := models.PRData{
		Title:          pr.GetTitle(),
		Description:    pr.GetBody(),
		Author:         pr.GetUser().GetLogin(),
		State:          prState(pr),
		CreatedAt:      pr.GetCreatedAt().Time,
		UpdatedAt:      pr.GetUpdatedAt().Time,
		Additions:      pr.GetAdditions(),
		Deletions:      pr.GetDeletions(),
		ChangedFiles:   pr.GetChangedFiles(),
		Commits:        commitSummaries(commits),
		Files:          fileStats(files),
		ReviewComments: comments,
		Labels:         labelNames(pr.Labels),
		LinkedIssues:   ExtractLinkedIssues(pr.GetBody()),
	}
	if mergedAt := pr.MergedAt; mergedAt != nil {
		data.MergedAt = &mergedAt.Time
	}
	return data, nil
}

// fetchReviewComments collects reviews and inline review comments, merged
// into one list. Any failure here degrades silently to an empty list.
func (pi *PRIngestion) fetchReviewComments(ctx context.Context, client *Client, owner, repo string, number int) []models.ReviewComment {
	var merged []models.ReviewComment

	reviews, _, err := client.prs.ListReviews(ctx, owner, repo, number, &github.ListOptions{PerPage: prReviewsLimit})
	if err != nil {
		logger.Debug(ctx, "review listing failed, degrading to empty", "pr", number, "error", err)
	} else {
		for _, r := range reviews {
			if r.GetBody() == "" {
				continue
			}
			merged = append(merged, models.ReviewComment{
				Author: r.GetUser().GetLogin(),
				Body:   r.GetBody(),
			})
		}
	}

	inline, _, err := client.prs.ListComments(ctx, owner, repo, number, &github.PullRequestListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: prCommentsLimit},
	})
	if err != nil {
		logger.Debug(ctx, "review comment listing failed, degrading to empty", "pr", number, "error", err)
		return merged
	}
	for _, c := range inline {
		merged = append(merged, models.ReviewComment{
			Author: c.GetUser().GetLogin(),
			Body:   c.GetBody(),
			Path:   c.GetPath(),
		})
	}
	return merged
}

// ExtractLinkedIssues pulls issue numbers out of a PR description. Both the
// close/fix/resolve keyword forms and bare #N references count; numbers are
// deduplicated in order of first appearance.
func ExtractLinkedIssues(description string) []string {
	if description == "" {
		return nil
	}

	var issues []string
	seen := make(map[string]bool)
	for _, pattern := range []*regexp.Regexp{regex.IssueCloseLink, regex.IssueBareRef} {
		for _, m := range pattern.FindAllStringSubmatch(description, -1) {
			if len(m) < 2 || seen[m[1]] {
				continue
			}
			seen[m[1]] = true
			issues = append(issues, m[1])
		}
	}
	return issues
}

// commitSummaries flips the API's chronological order to newest first.
func commitSummaries(commits []*github.RepositoryCommit) []models.CommitSummary {
	summaries := make([]models.CommitSummary, 0, len(commits))
	for i := len(commits) - 1; i >= 0; i-- {
		commit := commits[i]
		author := commit.GetAuthor().GetLogin()
		if author == "" {
			author = commit.GetCommit().GetAuthor().GetName()
		}
		summaries = append(summaries, models.CommitSummary{
			SHA:     commit.GetSHA(),
			Message: commit.GetCommit().GetMessage(),
			Author:  author,
			Date:    commit.GetCommit().GetAuthor().GetDate().Time,
		})
	}
	return summaries
}

func fileStats(files []*github.CommitFile) []models.PRFileStat {
	stats := make([]models.PRFileStat, 0, len(files))
	for _, f := range files {
		stats = append(stats, models.PRFileStat{
			Name:      f.GetFilename(),
			Status:    f.GetStatus(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			Patch:     f.GetPatch(),
		})
	}
	return stats
}

func labelNames(labels []*github.Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.GetName())
	}
	return names
}
