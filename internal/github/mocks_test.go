package github

import (
	"context"

	gh "github.com/google/go-github/v59/github"
	"github.com/stretchr/testify/mock"
)

type mockPulls struct {
	mock.Mock
}

func (m *mockPulls) List(ctx context.Context, owner, repo string, opts *gh.PullRequestListOptions) ([]*gh.PullRequest, *gh.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	var pulls []*gh.PullRequest
	if v := args.Get(0); v != nil {
		pulls = v.([]*gh.PullRequest)
	}
	return pulls, nil, args.Error(1)
}

func (m *mockPulls) Get(ctx context.Context, owner, repo string, number int) (*gh.PullRequest, *gh.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	var pr *gh.PullRequest
	if v := args.Get(0); v != nil {
		pr = v.(*gh.PullRequest)
	}
	return pr, nil, args.Error(1)
}

type mockRepos struct {
	mock.Mock
}

func (m *mockRepos) ListCommits(ctx context.Context, owner, repo string, opts *gh.CommitsListOptions) ([]*gh.RepositoryCommit, *gh.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	var commits []*gh.RepositoryCommit
	if v := args.Get(0); v != nil {
		commits = v.([]*gh.RepositoryCommit)
	}
	return commits, nil, args.Error(1)
}

func (m *mockRepos) GetCommit(ctx context.Context, owner, repo, sha string, opts *gh.ListOptions) (*gh.RepositoryCommit, *gh.Response, error) {
	args := m.Called(ctx, owner, repo, sha, opts)
	var commit *gh.RepositoryCommit
	if v := args.Get(0); v != nil {
		commit = v.(*gh.RepositoryCommit)
	}
	return commit, nil, args.Error(1)
}

func (m *mockRepos) ListReleases(ctx context.Context, owner, repo string, opts *gh.ListOptions) ([]*gh.RepositoryRelease, *gh.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	var releases []*gh.RepositoryRelease
	if v := args.Get(0); v != nil {
		releases = v.([]*gh.RepositoryRelease)
	}
	return releases, nil, args.Error(1)
}

type mockSearch struct {
	mock.Mock
}

func (m *mockSearch) Issues(ctx context.Context, query string, opts *gh.SearchOptions) (*gh.IssuesSearchResult, *gh.Response, error) {
	args := m.Called(ctx, query, opts)
	var result *gh.IssuesSearchResult
	if v := args.Get(0); v != nil {
		result = v.(*gh.IssuesSearchResult)
	}
	return result, nil, args.Error(1)
}
