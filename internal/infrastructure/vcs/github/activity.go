package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/go-github/v80/github"

	"github.com/Sharmil001/codula-app/internal/diff"
	"github.com/Sharmil001/codula-app/internal/domain/models"
	"github.com/Sharmil001/codula-app/internal/logger"
)

const (
	commitListLimit = 30
	commitDiffLimit = 15
	prListLimit     = 10
	prDiffLimit     = 5
)

// ActivityFetcher collects a principal's recent commits and pull requests for
// one repository, enriched with reconstructed file diffs.
type ActivityFetcher struct {
	provider ClientProvider
}

func NewActivityFetcher(provider ClientProvider) *ActivityFetcher {
	return &ActivityFetcher{provider: provider}
}

// GetRepoActivity returns the recent activity for fullName ("owner/repo"), or
// nil when the repository can't be synced. A nil result means "sync skipped":
// one repository failing must not abort a multi-repo workflow. The commit and
// PR branches fetch concurrently and degrade independently, so a dead commit
// listing still leaves PR results intact.
func (af *ActivityFetcher) GetRepoActivity(ctx context.Context, fullName string) *models.Activity {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		logger.Warn(ctx, "invalid repository name, skipping sync", "repo", fullName)
		return nil
	}
	owner, repo := parts[0], parts[1]

	client, err := af.provider.GetClient(ctx)
	if err != nil {
		logger.Warn(ctx, "client unavailable, skipping sync", "repo", fullName, "error", err)
		return nil
	}
	login := client.Login()

	var (
		wg      sync.WaitGroup
		commits []*github.RepositoryCommit
		prs     []*github.PullRequest
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		list, _, err := client.repos.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
			Author:      login,
			ListOptions: github.ListOptions{PerPage: commitListLimit},
		})
		if err != nil {
			logger.Warn(ctx, "commit listing failed, degrading to empty", "repo", fullName, "error", err)
			return
		}
		commits = list
	}()
	go func() {
		defer wg.Done()
		list, _, err := client.prs.List(ctx, owner, repo, &github.PullRequestListOptions{
			State:       "all",
			Sort:        "updated",
			Direction:   "desc",
			ListOptions: github.ListOptions{PerPage: prListLimit},
		})
		if err != nil {
			logger.Warn(ctx, "PR listing failed, degrading to empty", "repo", fullName, "error", err)
			return
		}
		prs = list
	}()
	wg.Wait()

	return &models.Activity{
		Repo:         fullName,
		Commits:      af.buildCommitRecords(ctx, client, owner, repo, commits),
		PullRequests: af.buildPRRecords(ctx, client, owner, repo, login, prs),
	}
}

// buildCommitRecords takes the newest commits and fans out one diff fetch per
// commit. A failed diff fetch leaves that commit without file changes rather
// than dropping it or failing the batch.
func (af *ActivityFetcher) buildCommitRecords(ctx context.Context, client *Client, owner, repo string, commits []*github.RepositoryCommit) []models.CommitRecord {
	if len(commits) > commitDiffLimit {
		commits = commits[:commitDiffLimit]
	}

	records := make([]models.CommitRecord, len(commits))
	var wg sync.WaitGroup
	for i, commit := range commits {
		wg.Add(1)
		go func(i int, commit *github.RepositoryCommit) {
			defer wg.Done()

			author := commit.GetAuthor().GetLogin()
			if author == "" {
				author = commit.GetCommit().GetAuthor().GetName()
			}
			record := models.CommitRecord{
				SHA:     commit.GetSHA(),
				URL:     commit.GetHTMLURL(),
				Date:    commit.GetCommit().GetAuthor().GetDate().Time,
				Author:  author,
				Message: commit.GetCommit().GetMessage(),
			}

			raw, _, err := client.repos.GetCommitRaw(ctx, owner, repo, commit.GetSHA(), github.RawOptions{Type: github.Diff})
			if err != nil {
				logger.Debug(ctx, "commit diff fetch failed", "sha", commit.GetSHA(), "error", err)
			} else {
				record.Files = diff.ExtractFileChanges(raw)
			}
			records[i] = record
		}(i, commit)
	}
	wg.Wait()
	return records
}

// buildPRRecords keeps the principal's newest PRs and fans out one diff fetch
// per PR over the raw .diff endpoint.
func (af *ActivityFetcher) buildPRRecords(ctx context.Context, client *Client, owner, repo, login string, prs []*github.PullRequest) []models.PullRequestRecord {
	var mine []*github.PullRequest
	for _, pr := range prs {
		if strings.EqualFold(pr.GetUser().GetLogin(), login) {
			mine = append(mine, pr)
		}
	}
	if len(mine) > prDiffLimit {
		mine = mine[:prDiffLimit]
	}

	records := make([]models.PullRequestRecord, len(mine))
	var wg sync.WaitGroup
	for i, pr := range mine {
		wg.Add(1)
		go func(i int, pr *github.PullRequest) {
			defer wg.Done()

			record := models.PullRequestRecord{
				ID:        pr.GetID(),
				URL:       pr.GetHTMLURL(),
				Author:    pr.GetUser().GetLogin(),
				State:     prState(pr),
				Title:     pr.GetTitle(),
				Number:    pr.GetNumber(),
				CreatedAt: pr.GetCreatedAt().Time,
				UpdatedAt: pr.GetUpdatedAt().Time,
			}
			if closedAt := pr.ClosedAt; closedAt != nil {
				record.ClosedAt = &closedAt.Time
			}
			if mergedAt := pr.MergedAt; mergedAt != nil {
				record.MergedAt = &mergedAt.Time
			}

			raw, err := af.fetchPRDiff(ctx, client, owner, repo, pr.GetNumber())
			if err != nil {
				logger.Debug(ctx, "PR diff fetch failed", "pr", pr.GetNumber(), "error", err)
			} else {
				record.Files = diff.ExtractFileChanges(raw)
			}
			records[i] = record
		}(i, pr)
	}
	wg.Wait()
	return records
}

// fetchPRDiff downloads the unified diff for one PR through the raw .diff URL
// with a bearer header. This bypasses the API client on purpose: the diff
// media type is not available for PR-scoped requests through it.
func (af *ActivityFetcher) fetchPRDiff(ctx context.Context, client *Client, owner, repo string, number int) (string, error) {
	url := fmt.Sprintf("https://github.com/%s/%s/pull/%d.diff", owner, repo, number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if client.token != "" {
		req.Header.Set("Authorization", "Bearer "+client.token)
	}

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("diff request returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// prState derives the lifecycle state. A non-nil merge timestamp is
// authoritative even when the raw API state still says open or closed.
func prState(pr *github.PullRequest) string {
	if pr.MergedAt != nil {
		return models.PRStateMerged
	}
	if pr.GetState() == "closed" {
		return models.PRStateClosed
	}
	return models.PRStateOpen
}
