package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Sharmil001/codula-app/internal/errors"
)

func TestClientFactoryGetClient(t *testing.T) {
	ctx := context.Background()

	t.Run("should propagate cache failures without touching the API", func(t *testing.T) {
		cache := new(MockTokenCache)
		cache.On("Retrieve", mock.Anything).Return("", apperrors.ErrNotConnected)

		factory := NewClientFactory(cache, time.Second, 0)

		_, err := factory.GetClient(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotConnected)
		cache.AssertExpectations(t)
	})
}

func TestMapIdentityError(t *testing.T) {
	ctx := context.Background()
	upstream := errors.New("identity check failed")

	response := func(status int) *github.Response {
		return &github.Response{Response: &http.Response{StatusCode: status}}
	}

	t.Run("401 drops the cached token and reports expiry", func(t *testing.T) {
		cache := new(MockTokenCache)
		cache.On("Invalidate", mock.Anything).Return(nil)

		factory := NewClientFactory(cache, time.Second, 0)

		err := factory.mapIdentityError(ctx, response(http.StatusUnauthorized), upstream)

		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
		cache.AssertExpectations(t)
	})

	t.Run("401 still reports expiry when invalidation fails", func(t *testing.T) {
		cache := new(MockTokenCache)
		cache.On("Invalidate", mock.Anything).Return(errors.New("storage down"))

		factory := NewClientFactory(cache, time.Second, 0)

		err := factory.mapIdentityError(ctx, response(http.StatusUnauthorized), upstream)

		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("403 keeps the token and reports rate limiting", func(t *testing.T) {
		cache := new(MockTokenCache)
		factory := NewClientFactory(cache, time.Second, 0)

		err := factory.mapIdentityError(ctx, response(http.StatusForbidden), upstream)

		assert.ErrorIs(t, err, apperrors.ErrRateLimited)
		cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("other failures map to upstream errors", func(t *testing.T) {
		cache := new(MockTokenCache)
		factory := NewClientFactory(cache, time.Second, 0)

		assert.ErrorIs(t, factory.mapIdentityError(ctx, response(http.StatusBadGateway), upstream), apperrors.ErrUpstream)
		assert.ErrorIs(t, factory.mapIdentityError(ctx, nil, upstream), apperrors.ErrUpstream)
	})
}

func TestRetryTransport(t *testing.T) {
	t.Run("should retry 5xx responses until one succeeds", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := &http.Client{Transport: &retryTransport{base: http.DefaultTransport, maxRetries: 2}}

		resp, err := client.Get(server.URL)

		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("should return the last response when retries run out", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := &http.Client{Transport: &retryTransport{base: http.DefaultTransport, maxRetries: 1}}

		resp, err := client.Get(server.URL)

		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("should not retry successful responses", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := &http.Client{Transport: &retryTransport{base: http.DefaultTransport, maxRetries: 3}}

		resp, err := client.Get(server.URL)

		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestClientListRepos(t *testing.T) {
	ctx := context.Background()

	t.Run("should follow pagination and map fields", func(t *testing.T) {
		repos := new(MockRepositoriesService)
		repos.On("ListByAuthenticatedUser", mock.Anything, mock.MatchedBy(func(opts *github.RepositoryListByAuthenticatedUserOptions) bool {
			return opts.Page == 0
		})).Return([]*github.Repository{
			{FullName: github.Ptr("octo/widgets"), Language: github.Ptr("Go"), Private: github.Ptr(true)},
		}, &github.Response{NextPage: 2}, nil).Once()
		repos.On("ListByAuthenticatedUser", mock.Anything, mock.MatchedBy(func(opts *github.RepositoryListByAuthenticatedUserOptions) bool {
			return opts.Page == 2
		})).Return([]*github.Repository{
			{FullName: github.Ptr("octo/gadgets"), Description: github.Ptr("spare parts")},
		}, &github.Response{NextPage: 0}, nil).Once()

		client := NewClientWithServices(nil, repos, nil, nil, "octo")

		list, err := client.ListRepos(ctx)

		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "octo/widgets", list[0].FullName)
		assert.True(t, list[0].Private)
		assert.Equal(t, "spare parts", list[1].Description)
		repos.AssertExpectations(t)
	})

	t.Run("should wrap listing failures as upstream errors", func(t *testing.T) {
		repos := new(MockRepositoriesService)
		repos.On("ListByAuthenticatedUser", mock.Anything, mock.Anything).
			Return(nil, &github.Response{}, errors.New("boom"))

		client := NewClientWithServices(nil, repos, nil, nil, "octo")

		_, err := client.ListRepos(ctx)

		assert.ErrorIs(t, err, apperrors.ErrUpstream)
	})
}
