package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockUsersService struct {
	mock.Mock
}

func (m *MockUsersService) Get(ctx context.Context, user string) (*github.User, *github.Response, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, respArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.User), respArg(args.Get(1)), args.Error(2)
}

type MockRepositoriesService struct {
	mock.Mock
}

func (m *MockRepositoriesService) ListByAuthenticatedUser(ctx context.Context, opts *github.RepositoryListByAuthenticatedUserOptions) ([]*github.Repository, *github.Response, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, respArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).([]*github.Repository), respArg(args.Get(1)), args.Error(2)
}

func (m *MockRepositoriesService) ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	if args.Get(0) == nil {
		return nil, respArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).([]*github.RepositoryCommit), respArg(args.Get(1)), args.Error(2)
}

func (m *MockRepositoriesService) GetCommitRaw(ctx context.Context, owner, repo, sha string, opts github.RawOptions) (string, *github.Response, error) {
	args := m.Called(ctx, owner, repo, sha, opts)
	return args.String(0), respArg(args.Get(1)), args.Error(2)
}

type MockPullRequestsService struct {
	mock.Mock
}

func (m *MockPullRequestsService) List(ctx context.Context, owner, repo string, opts *github.PullRequestListOptions) ([]*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	if args.Get(0) == nil {
		return nil, respArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).([]*github.PullRequest), respArg(args.Get(1)), args.Error(2)
}

func (m *MockPullRequestsService) Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	if args.Get(0) == nil {
		return nil, respArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.PullRequest), respArg(args.Get(1)), args.Error(2)
}

func (m *MockPullRequestsService) ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	if args.Get(0) == nil {
		return nil, respArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).([]*github.CommitFile), respArg(args.Get(1)), args.Error(2)
}

func (m *MockPullRequestsService) ListCommits(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	if args.Get(0) == nil {
		return nil, respArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).([]*github.RepositoryCommit), respArg(args.Get(1)), args.Error(2)
}

func (m *MockPullRequestsService) ListReviews(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.PullRequestReview, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	if args.Get(0) == nil {
		return nil, respArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).([]*github.PullRequestReview), respArg(args.Get(1)), args.Error(2)
}

func (m *MockPullRequestsService) ListComments(ctx context.Context, owner, repo string, number int, opts *github.PullRequestListCommentsOptions) ([]*github.PullRequestComment, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	if args.Get(0) == nil {
		return nil, respArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).([]*github.PullRequestComment), respArg(args.Get(1)), args.Error(2)
}

type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

type MockTokenCache struct {
	mock.Mock
}

func (m *MockTokenCache) Store(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockTokenCache) Retrieve(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockTokenCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// StaticClientProvider hands out one pre-built client, for tests.
type StaticClientProvider struct {
	Client *Client
	Err    error
}

func (p *StaticClientProvider) GetClient(ctx context.Context) (*Client, error) {
	return p.Client, p.Err
}

func respArg(v interface{}) *github.Response {
	if v == nil {
		return nil
	}
	return v.(*github.Response)
}
