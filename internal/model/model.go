// Package model holds the read-only views of hosting-platform objects that the
// release notes pipeline consumes: pull requests, commits, releases, and the
// cutoff marker that bounds a scan.
package model

import (
	"fmt"
	"time"
)

// AuthorContributor is the author association GitHub reports for external contributors.
const AuthorContributor = "CONTRIBUTOR"

// Cutoff marks the boundary of the previous release. Anything closed after
// Time() is considered new.
type Cutoff interface {
	Time() time.Time
	Description() string
}

// User is the author of a pull request.
type User struct {
	Login string
	URL   string
}

// PullRequest is a closed change request as reported by the hosting API.
type PullRequest struct {
	Number            int
	Title             string
	Body              string
	Labels            []string
	AuthorAssociation string
	User              User
	URL               string
	BaseBranch        string
	UpdatedAt         time.Time
	ClosedAt          time.Time
}

// HasLabel reports whether the pull request carries the named label.
func (p *PullRequest) HasLabel(name string) bool {
	for _, l := range p.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// IsContribution reports whether the author is an external contributor.
func (p *PullRequest) IsContribution() bool {
	return p.AuthorAssociation == AuthorContributor
}

// Time returns the close time; a pull request cutoff is bounded by when it merged.
func (p *PullRequest) Time() time.Time {
	return p.ClosedAt
}

// Description implements Cutoff.
func (p *PullRequest) Description() string {
	return fmt.Sprintf("PR: [%d] %s", p.Number, p.Title)
}

// Commit is a single commit on a branch.
type Commit struct {
	SHA         string
	Message     string
	CommittedAt time.Time
}

// Time returns the committer date.
func (c *Commit) Time() time.Time {
	return c.CommittedAt
}

// Description implements Cutoff.
func (c *Commit) Description() string {
	sha := c.SHA
	if len(sha) > 5 {
		sha = sha[:5]
	}
	return fmt.Sprintf("Commit: [%s...] %s", sha, c.Message)
}

// Release is a published release of the repository.
type Release struct {
	TagName     string
	PublishedAt time.Time
}
