// Package github reads pull requests, commits, and releases from the GitHub
// REST API. It implements the pagination cutoff logic that decides which pull
// requests are new since the previous release, and the strategies used to
// locate that release.
package github

import (
	"context"

	gh "github.com/google/go-github/v59/github"
)

// PullRequestsService is the subset of the go-github pull request API used here.
type PullRequestsService interface {
	List(ctx context.Context, owner, repo string, opts *gh.PullRequestListOptions) ([]*gh.PullRequest, *gh.Response, error)
	Get(ctx context.Context, owner, repo string, number int) (*gh.PullRequest, *gh.Response, error)
}

// RepositoriesService is the subset of the go-github repository API used here.
type RepositoriesService interface {
	ListCommits(ctx context.Context, owner, repo string, opts *gh.CommitsListOptions) ([]*gh.RepositoryCommit, *gh.Response, error)
	GetCommit(ctx context.Context, owner, repo, sha string, opts *gh.ListOptions) (*gh.RepositoryCommit, *gh.Response, error)
	ListReleases(ctx context.Context, owner, repo string, opts *gh.ListOptions) ([]*gh.RepositoryRelease, *gh.Response, error)
}

// SearchService is the subset of the go-github search API used here.
type SearchService interface {
	Issues(ctx context.Context, query string, opts *gh.SearchOptions) (*gh.IssuesSearchResult, *gh.Response, error)
}
