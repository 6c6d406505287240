package github

import (
	gh "github.com/google/go-github/v59/github"

	"github.com/ariel-frischer/relnotes/internal/model"
)

func pullFromAPI(pr *gh.PullRequest) *model.PullRequest {
	return &model.PullRequest{
		Number:            pr.GetNumber(),
		Title:             pr.GetTitle(),
		Body:              pr.GetBody(),
		Labels:            labelNames(pr.Labels),
		AuthorAssociation: pr.GetAuthorAssociation(),
		User:              userFromAPI(pr.GetUser()),
		URL:               pr.GetHTMLURL(),
		BaseBranch:        pr.GetBase().GetRef(),
		UpdatedAt:         pr.GetUpdatedAt().Time,
		ClosedAt:          pr.GetClosedAt().Time,
	}
}

// pullFromIssue converts a search hit. Search results carry no base ref, so
// the queried branch is recorded instead.
func pullFromIssue(issue *gh.Issue, branch string) *model.PullRequest {
	return &model.PullRequest{
		Number:            issue.GetNumber(),
		Title:             issue.GetTitle(),
		Body:              issue.GetBody(),
		Labels:            labelNames(issue.Labels),
		AuthorAssociation: issue.GetAuthorAssociation(),
		User:              userFromAPI(issue.GetUser()),
		URL:               issue.GetHTMLURL(),
		BaseBranch:        branch,
		UpdatedAt:         issue.GetUpdatedAt().Time,
		ClosedAt:          issue.GetClosedAt().Time,
	}
}

func commitFromAPI(rc *gh.RepositoryCommit) *model.Commit {
	return &model.Commit{
		SHA:         rc.GetSHA(),
		Message:     rc.GetCommit().GetMessage(),
		CommittedAt: rc.GetCommit().GetCommitter().GetDate().Time,
	}
}

func releaseFromAPI(r *gh.RepositoryRelease) *model.Release {
	return &model.Release{
		TagName:     r.GetTagName(),
		PublishedAt: r.GetPublishedAt().Time,
	}
}

func userFromAPI(u *gh.User) model.User {
	return model.User{
		Login: u.GetLogin(),
		URL:   u.GetHTMLURL(),
	}
}

func labelNames(labels []*gh.Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		if name := l.GetName(); name != "" {
			names = append(names, name)
		}
	}
	return names
}
