package github

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/Sharmil001/codula-app/internal/domain/models"
	"github.com/Sharmil001/codula-app/internal/domain/ports"
	apperrors "github.com/Sharmil001/codula-app/internal/errors"
	"github.com/Sharmil001/codula-app/internal/infrastructure/httpclient"
	"github.com/Sharmil001/codula-app/internal/logger"
)

// Narrow views over the go-github services, so tests can substitute mocks.
type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

type RepositoriesService interface {
	ListByAuthenticatedUser(ctx context.Context, opts *github.RepositoryListByAuthenticatedUserOptions) ([]*github.Repository, *github.Response, error)
	ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error)
	GetCommitRaw(ctx context.Context, owner, repo, sha string, opts github.RawOptions) (string, *github.Response, error)
}

type PullRequestsService interface {
	List(ctx context.Context, owner, repo string, opts *github.PullRequestListOptions) ([]*github.PullRequest, *github.Response, error)
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
	ListCommits(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error)
	ListReviews(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.PullRequestReview, *github.Response, error)
	ListComments(ctx context.Context, owner, repo string, number int, opts *github.PullRequestListCommentsOptions) ([]*github.PullRequestComment, *github.Response, error)
}

// Client is an authenticated GitHub API client scoped to one principal.
type Client struct {
	users      UsersService
	repos      RepositoriesService
	prs        PullRequestsService
	httpClient httpclient.HTTPClient
	token      string
	login      string
}

// Login returns the authenticated username, lowercased.
func (c *Client) Login() string {
	return c.login
}

// NewClientWithServices wires a Client from pre-built services, for tests.
func NewClientWithServices(
	users UsersService,
	repos RepositoriesService,
	prs PullRequestsService,
	httpClient httpclient.HTTPClient,
	login string,
) *Client {
	return &Client{
		users:      users,
		repos:      repos,
		prs:        prs,
		httpClient: httpClient,
		token:      "",
		login:      strings.ToLower(login),
	}
}

// ClientProvider produces an authenticated, identity-checked client.
type ClientProvider interface {
	GetClient(ctx context.Context) (*Client, error)
}

var _ ClientProvider = (*ClientFactory)(nil)

// ClientFactory builds clients from the cached token, validating each one
// with a live identity check so stale tokens fail fast.
type ClientFactory struct {
	cache      ports.TokenCache
	timeout    time.Duration
	maxRetries int
}

func NewClientFactory(cache ports.TokenCache, timeout time.Duration, maxRetries int) *ClientFactory {
	return &ClientFactory{
		cache:      cache,
		timeout:    timeout,
		maxRetries: maxRetries,
	}
}

func (f *ClientFactory) GetClient(ctx context.Context) (*Client, error) {
	token, err := f.cache.Retrieve(ctx)
	if err != nil {
		return nil, err
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Timeout: f.timeout,
		Transport: &oauth2.Transport{
			Source: ts,
			Base:   &retryTransport{base: http.DefaultTransport, maxRetries: f.maxRetries},
		},
	}
	gh := github.NewClient(httpClient)

	user, resp, err := gh.Users.Get(ctx, "")
	if err != nil {
		return nil, f.mapIdentityError(ctx, resp, err)
	}

	return &Client{
		users: gh.Users,
		repos: gh.Repositories,
		prs:   gh.PullRequests,
		// Raw .diff downloads attach the bearer token themselves instead of
		// going through the authenticated API client.
		httpClient: httpclient.New(f.timeout),
		token:      token,
		login:      strings.ToLower(user.GetLogin()),
	}, nil
}

// mapIdentityError translates identity-check failures into domain errors. A
// 401 also drops the cached token; a 403 does not, the token may still be
// valid once the rate limit window passes.
func (f *ClientFactory) mapIdentityError(ctx context.Context, resp *github.Response, err error) error {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			if invErr := f.cache.Invalidate(ctx); invErr != nil {
				logger.Warn(ctx, "token invalidation failed", "error", invErr)
			}
			return apperrors.ErrTokenExpired.WithError(err)
		case http.StatusForbidden:
			return apperrors.ErrRateLimited.WithError(err)
		}
	}
	return apperrors.ErrUpstream.WithError(err)
}

// ListRepos returns every repository the principal owns or collaborates on,
// most recently updated first.
func (c *Client) ListRepos(ctx context.Context) ([]models.Repository, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Affiliation: "owner,collaborator",
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var all []models.Repository
	for {
		repos, resp, err := c.repos.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, apperrors.ErrUpstream.WithError(err)
		}
		for _, r := range repos {
			all = append(all, models.Repository{
				FullName:    r.GetFullName(),
				Description: r.GetDescription(),
				Language:    r.GetLanguage(),
				Private:     r.GetPrivate(),
				UpdatedAt:   r.GetUpdatedAt().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// retryTransport retries transient failures: transport errors and 5xx
// responses, up to maxRetries extra attempts. Every call this client makes is
// a read, so replaying is safe.
type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}
		resp, err = t.base.RoundTrip(req)
		if err != nil {
			continue
		}
		if resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}
		if attempt < t.maxRetries {
			_ = resp.Body.Close()
		}
	}
	return resp, err
}
