package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/model"
)

// Finder is the lookup surface cutoff strategies search through. *Client
// implements it.
type Finder interface {
	SearchClosedPull(ctx context.Context, phrase string) (*model.PullRequest, error)
	GetPull(ctx context.Context, number int) (*model.PullRequest, error)
	GetCommit(ctx context.Context, sha string) (*model.Commit, error)
	ListCommitsPage(ctx context.Context, page int) ([]*model.Commit, error)
}

// CutoffStrategy locates the marker of the previous release.
type CutoffStrategy interface {
	// Search returns the cutoff, or nil when none matches and the whole
	// history should be scanned.
	Search(ctx context.Context, f Finder) (model.Cutoff, error)
	// String describes what the strategy looks for.
	String() string
}

// ByTitlePrefix finds the most recently updated closed pull request whose
// title contains Prefix, typically the version-bump pull request.
type ByTitlePrefix struct {
	Prefix string
}

func (s ByTitlePrefix) Search(ctx context.Context, f Finder) (model.Cutoff, error) {
	pr, err := f.SearchClosedPull(ctx, s.Prefix)
	if err != nil || pr == nil {
		return nil, err
	}
	return pr, nil
}

func (s ByTitlePrefix) String() string {
	return fmt.Sprintf(`pull request with: { TitlePrefix = "%s" }`, s.Prefix)
}

// ByNumber uses a specific pull request as the cutoff.
type ByNumber struct {
	Number int
}

func (s ByNumber) Search(ctx context.Context, f Finder) (model.Cutoff, error) {
	pr, err := f.GetPull(ctx, s.Number)
	if err != nil {
		return nil, err
	}
	return pr, nil
}

func (s ByNumber) String() string {
	return fmt.Sprintf("pull request with: { Number = %d }", s.Number)
}

// ByCommitPrefix walks the branch history, newest first, for the first commit
// whose message starts with Prefix.
type ByCommitPrefix struct {
	Prefix string
}

func (s ByCommitPrefix) Search(ctx context.Context, f Finder) (model.Cutoff, error) {
	for page := 1; ; page++ {
		commits, err := f.ListCommitsPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(commits) == 0 {
			return nil, nil
		}
		for _, commit := range commits {
			if strings.HasPrefix(commit.Message, s.Prefix) {
				return commit, nil
			}
		}
	}
}

func (s ByCommitPrefix) String() string {
	return fmt.Sprintf(`commit with: { MessagePrefix = "%s" }`, s.Prefix)
}

// ByCommitSha uses a specific commit as the cutoff.
type ByCommitSha struct {
	SHA string
}

func (s ByCommitSha) Search(ctx context.Context, f Finder) (model.Cutoff, error) {
	commit, err := f.GetCommit(ctx, s.SHA)
	if err != nil {
		return nil, err
	}
	return commit, nil
}

func (s ByCommitSha) String() string {
	return fmt.Sprintf(`commit with: { Sha = "%s" }`, s.SHA)
}
