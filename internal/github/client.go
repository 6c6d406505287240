package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	gh "github.com/google/go-github/v59/github"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/logger"
	"github.com/ariel-frischer/relnotes/internal/model"
)

const (
	defaultPerPage     = 100
	defaultHTMLBaseURL = "https://github.com"
	repoSegments       = 2
)

// AllBranches as the branch option disables base-branch filtering.
const AllBranches = "*"

// Options configures NewClient.
type Options struct {
	// Branch restricts scans to pull requests based on it. Empty or "*" means all branches.
	Branch string
	// Token authenticates requests. Empty means anonymous access.
	Token string
	// APIURL is a GitHub Enterprise API base URL. Empty means github.com.
	APIURL string
	// HTTPClient overrides the transport. Nil uses http.DefaultClient.
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Client reads one repository's history.
type Client struct {
	owner         string
	repo          string
	branch        string
	htmlBaseURL   string
	authenticated bool
	perPage       int

	pulls  PullRequestsService
	repos  RepositoriesService
	search SearchService
	log    *logger.Logger
}

// NewClient creates a client for repo, given as "owner/name".
func NewClient(repo string, opts Options) (*Client, error) {
	owner, name, err := SplitRepo(repo)
	if err != nil {
		return nil, err
	}

	api := gh.NewClient(opts.HTTPClient)
	if opts.Token != "" {
		api = api.WithAuthToken(opts.Token)
	}

	htmlBase := defaultHTMLBaseURL
	if opts.APIURL != "" {
		api, err = api.WithEnterpriseURLs(opts.APIURL, opts.APIURL)
		if err != nil {
			return nil, clierrors.WrapWithMessage(err, clierrors.Configuration, "invalid api_url")
		}
		htmlBase = enterpriseHTMLBase(opts.APIURL)
	}

	c := newClient(owner, name, opts.Branch, api.PullRequests, api.Repositories, api.Search, opts.Logger)
	c.authenticated = opts.Token != ""
	c.htmlBaseURL = htmlBase
	return c, nil
}

func newClient(owner, repo, branch string, pulls PullRequestsService, repos RepositoriesService, search SearchService, log *logger.Logger) *Client {
	if branch == AllBranches {
		branch = ""
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		owner:       owner,
		repo:        repo,
		branch:      branch,
		htmlBaseURL: defaultHTMLBaseURL,
		perPage:     defaultPerPage,
		pulls:       pulls,
		repos:       repos,
		search:      search,
		log:         log.With("repo", owner+"/"+repo),
	}
}

// SplitRepo parses "owner/name".
func SplitRepo(repo string) (owner, name string, err error) {
	parts := strings.SplitN(strings.TrimSpace(repo), "/", repoSegments)
	if len(parts) != repoSegments || parts[0] == "" || parts[1] == "" || strings.Contains(parts[1], "/") {
		return "", "", clierrors.InvalidRepo(repo)
	}
	return parts[0], parts[1], nil
}

// Repo returns "owner/name".
func (c *Client) Repo() string {
	return c.owner + "/" + c.repo
}

// HTMLURL returns the repository's web address.
func (c *Client) HTMLURL() string {
	return c.htmlBaseURL + "/" + c.Repo()
}

// Branch returns the base branch filter, or "" when all branches are scanned.
func (c *Client) Branch() string {
	return c.branch
}

// Authenticated reports whether requests carry a token.
func (c *Client) Authenticated() bool {
	return c.authenticated
}

// FindPullsSince returns the closed pull requests that closed strictly after
// cutoff, oldest first. A nil cutoff returns every closed pull request.
//
// Pages are requested most recently updated first. Because updated_at is never
// before closed_at, the first entry updated before the cutoff proves that it
// and every later entry closed before the cutoff, so paging stops there.
func (c *Client) FindPullsSince(ctx context.Context, cutoff model.Cutoff) ([]*model.PullRequest, error) {
	var pulls []*model.PullRequest
	for page := 1; ; page++ {
		batch, err := c.listPullsPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		stop := false
		for _, pr := range batch {
			if cutoff != nil && pr.UpdatedAt.Before(cutoff.Time()) {
				stop = true
				break
			}
			pulls = append(pulls, pr)
		}
		if stop {
			break
		}
	}

	if cutoff != nil {
		pulls = closedAfter(pulls, cutoff)
	}

	sort.SliceStable(pulls, func(i, j int) bool {
		return pulls[i].ClosedAt.Before(pulls[j].ClosedAt)
	})
	return pulls, nil
}

// closedAfter drops entries that closed at or before the cutoff. The
// updated_at stopping rule only bounds the scan from one side.
func closedAfter(pulls []*model.PullRequest, cutoff model.Cutoff) []*model.PullRequest {
	limit := cutoff.Time()
	kept := pulls[:0]
	for _, pr := range pulls {
		if pr.ClosedAt.After(limit) {
			kept = append(kept, pr)
		}
	}
	return kept
}

func (c *Client) listPullsPage(ctx context.Context, page int) ([]*model.PullRequest, error) {
	opts := &gh.PullRequestListOptions{
		State:     "closed",
		Base:      c.branch,
		Sort:      "updated",
		Direction: "desc",
		ListOptions: gh.ListOptions{
			Page:    page,
			PerPage: c.perPage,
		},
	}

	c.log.Debug("listing pull requests", "page", page, "base", c.branch)
	raw, _, err := c.pulls.List(ctx, c.owner, c.repo, opts)
	if err != nil {
		return nil, upstream("listing pull requests", err)
	}

	batch := make([]*model.PullRequest, 0, len(raw))
	for _, pr := range raw {
		if pr == nil {
			continue
		}
		batch = append(batch, pullFromAPI(pr))
	}
	return batch, nil
}

// FindLastRelease returns the most recent release, or nil when the repository
// has none.
func (c *Client) FindLastRelease(ctx context.Context) (*model.Release, error) {
	c.log.Debug("listing releases")
	releases, _, err := c.repos.ListReleases(ctx, c.owner, c.repo, &gh.ListOptions{Page: 1, PerPage: 1})
	if err != nil {
		return nil, upstream("listing releases", err)
	}
	for _, r := range releases {
		if r != nil {
			return releaseFromAPI(r), nil
		}
	}
	return nil, nil
}

// GetPull fetches one pull request by number.
func (c *Client) GetPull(ctx context.Context, number int) (*model.PullRequest, error) {
	c.log.Debug("fetching pull request", "number", number)
	pr, _, err := c.pulls.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, upstream(fmt.Sprintf("fetching pull request #%d", number), err)
	}
	return pullFromAPI(pr), nil
}

// GetCommit fetches one commit by SHA.
func (c *Client) GetCommit(ctx context.Context, sha string) (*model.Commit, error) {
	c.log.Debug("fetching commit", "sha", sha)
	commit, _, err := c.repos.GetCommit(ctx, c.owner, c.repo, sha, nil)
	if err != nil {
		return nil, upstream(fmt.Sprintf("fetching commit %s", sha), err)
	}
	return commitFromAPI(commit), nil
}

// ListCommitsPage returns one page of commit history on the configured branch.
func (c *Client) ListCommitsPage(ctx context.Context, page int) ([]*model.Commit, error) {
	opts := &gh.CommitsListOptions{
		SHA: c.branch,
		ListOptions: gh.ListOptions{
			Page:    page,
			PerPage: c.perPage,
		},
	}

	c.log.Debug("listing commits", "page", page, "sha", c.branch)
	raw, _, err := c.repos.ListCommits(ctx, c.owner, c.repo, opts)
	if err != nil {
		return nil, upstream("listing commits", err)
	}

	commits := make([]*model.Commit, 0, len(raw))
	for _, rc := range raw {
		if rc == nil {
			continue
		}
		commits = append(commits, commitFromAPI(rc))
	}
	return commits, nil
}

// SearchClosedPull returns the most recently updated closed pull request whose
// title contains phrase, or nil when none matches.
func (c *Client) SearchClosedPull(ctx context.Context, phrase string) (*model.PullRequest, error) {
	query := c.titleQuery(phrase)
	opts := &gh.SearchOptions{
		Sort:        "updated",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: 1},
	}

	c.log.Debug("searching pull requests", "query", query)
	result, _, err := c.search.Issues(ctx, query, opts)
	if err != nil {
		return nil, upstream("searching pull requests", err)
	}
	if result == nil || result.GetTotal() == 0 {
		return nil, nil
	}
	for _, issue := range result.Issues {
		if issue != nil {
			return pullFromIssue(issue, c.branch), nil
		}
	}
	return nil, nil
}

func (c *Client) titleQuery(phrase string) string {
	terms := []string{
		"repo:" + c.Repo(),
		"is:pr",
		"state:closed",
		fmt.Sprintf("%q", phrase),
		"in:title",
	}
	if c.branch != "" {
		terms = append(terms, "base:"+c.branch)
	}
	return strings.Join(terms, " ")
}

// upstream wraps an API failure. Context cancellation is passed through untouched.
func upstream(operation string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return clierrors.UpstreamFailure(operation, err)
}

// enterpriseHTMLBase derives the web root from an Enterprise API URL such as
// https://ghe.example.com/api/v3/.
func enterpriseHTMLBase(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" {
		return defaultHTMLBaseURL
	}
	return u.Scheme + "://" + u.Host
}
