// Package releasenotes runs the release notes pipeline: locate the previous
// release, scan the pull requests closed since, extract and version the notes,
// and render both output documents.
package releasenotes

import (
	"context"
	"io"
	"time"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/github"
	"github.com/ariel-frischer/relnotes/internal/logger"
	"github.com/ariel-frischer/relnotes/internal/model"
	"github.com/ariel-frischer/relnotes/internal/notes"
)

const (
	// DefaultReleaseLabel marks pull requests that carry release notes.
	DefaultReleaseLabel = "release-note"
	// DefaultTitlePrefix is the title of the version-bump pull request used
	// as the default cutoff.
	DefaultTitlePrefix = "Bumped version to"
)

// Source is the hosting-platform surface the generator reads from.
type Source interface {
	github.Finder
	HTMLURL() string
	Authenticated() bool
	FindPullsSince(ctx context.Context, cutoff model.Cutoff) ([]*model.PullRequest, error)
	FindLastRelease(ctx context.Context) (*model.Release, error)
}

// Activity is shown while a long scan is running.
type Activity interface {
	Start(suffix string)
	Stop()
}

// Options configures one generation run.
type Options struct {
	// Strategy locates the previous release. Nil uses ByTitlePrefix with DefaultTitlePrefix.
	Strategy github.CutoffStrategy
	// NextVersion skips estimation when set.
	NextVersion string
	// ReleaseDate is printed in the documentation-site header. Zero means tomorrow.
	ReleaseDate time.Time
	// ReleaseLabel gates which pull requests contribute notes. Empty uses DefaultReleaseLabel.
	ReleaseLabel string
	Sections     notes.SectionTable
	SiteURL      string
	WrapWidth    int
	// Now is the clock behind the default release date. Nil uses time.Now.
	Now func() time.Time

	// Progress receives verbose output. Nil runs quietly.
	Progress io.Writer
	// Color enables the colored release notes marker in progress output.
	Color bool
	// Activity is started around the pull request scan. Nil shows nothing.
	Activity Activity
	Logger   *logger.Logger
}

// Scan is the set of pull requests closed after the cutoff.
type Scan struct {
	// Cutoff is nil when no previous release was found.
	Cutoff model.Cutoff
	// Pulls are ordered by close time, oldest first.
	Pulls []*model.PullRequest
}

// Result is a completed generation run.
type Result struct {
	Scan
	// Labeled are the pulls that carried the release label.
	Labeled []*model.PullRequest
	Notes   []notes.Note
	Version string
	Devsite string
	GitHub  string
}

// Generator orchestrates one run against a single repository.
type Generator struct {
	source Source
	opts   Options
	report *reporter
	log    *logger.Logger
}

// New creates a generator reading from source.
func New(source Source, opts Options) *Generator {
	if opts.Strategy == nil {
		opts.Strategy = github.ByTitlePrefix{Prefix: DefaultTitlePrefix}
	}
	if opts.ReleaseLabel == "" {
		opts.ReleaseLabel = DefaultReleaseLabel
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Generator{
		source: source,
		opts:   opts,
		report: newReporter(opts.Progress, opts.Color),
		log:    opts.Logger,
	}
}

// Scan locates the cutoff and lists the pull requests closed after it. It
// fails with an empty-result error when there are none.
func (g *Generator) Scan(ctx context.Context) (*Scan, error) {
	g.report.line("Analyzing GitHub history in %s", g.source.HTMLURL())
	if !g.source.Authenticated() {
		g.report.line("Accessing GitHub API without authentication credentials")
	}

	cutoff, err := g.findCutoff(ctx)
	if err != nil {
		return nil, err
	}

	g.startActivity("Scanning pull requests")
	pulls, err := g.source.FindPullsSince(ctx, cutoff)
	g.stopActivity()
	if err != nil {
		return nil, err
	}
	if len(pulls) == 0 {
		return nil, clierrors.NoPullsSinceRelease()
	}
	g.log.Debug("scanned pull requests", "count", len(pulls))

	return &Scan{Cutoff: cutoff, Pulls: pulls}, nil
}

func (g *Generator) findCutoff(ctx context.Context) (model.Cutoff, error) {
	g.report.line("Looking for a %s", g.opts.Strategy)
	cutoff, err := g.opts.Strategy.Search(ctx, g.source)
	if err != nil {
		return nil, err
	}

	if cutoff != nil {
		g.report.line("Found cutoff %s", truncateOrPad(cutoff.Description(), summaryWidth))
		g.log.Debug("cutoff located", "time", cutoff.Time())
	} else {
		g.report.line("No matching cutoff PR was found.")
	}
	g.report.blank()
	return cutoff, nil
}

// Generate runs the full pipeline. Both documents are rendered before
// returning, so a failure never leaves partial output behind.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	scan, err := g.Scan(ctx)
	if err != nil {
		return nil, err
	}

	g.report.pulls(scan.Pulls, g.opts.ReleaseLabel)
	g.report.blank()

	labeled := filterLabeled(scan.Pulls, g.opts.ReleaseLabel)
	if len(labeled) == 0 {
		return nil, clierrors.NoLabeledPulls(g.opts.ReleaseLabel)
	}

	extracted := notes.NewParser(g.opts.Sections).Extract(labeled)
	g.report.line("Extracted release notes from %d pull requests.", len(labeled))

	version, err := g.nextVersion(ctx, extracted)
	if err != nil {
		return nil, err
	}

	if g.opts.ReleaseDate.IsZero() {
		g.report.line("Release date not specified. Release date will be set to tomorrow.")
		g.report.blank()
	}

	return &Result{
		Scan:    *scan,
		Labeled: labeled,
		Notes:   extracted,
		Version: version,
		Devsite: notes.RenderDevsite(extracted, version, notes.DevsiteOptions{
			ReleaseDate: g.opts.ReleaseDate,
			Now:         g.opts.Now,
			SiteURL:     g.opts.SiteURL,
			Width:       g.opts.WrapWidth,
			Sections:    g.opts.Sections,
		}),
		GitHub: notes.RenderGitHub(extracted, version, notes.GitHubOptions{
			SiteURL:  g.opts.SiteURL,
			Sections: g.opts.Sections,
		}),
	}, nil
}

// nextVersion returns the explicit version, or estimates one from the latest
// release. A repository without releases starts from 0.0.0.
func (g *Generator) nextVersion(ctx context.Context, extracted []notes.Note) (string, error) {
	if g.opts.NextVersion != "" {
		v, err := notes.ParseVersion(g.opts.NextVersion)
		if err != nil {
			return "", clierrors.InvalidVersion(g.opts.NextVersion)
		}
		return v.String(), nil
	}

	release, err := g.source.FindLastRelease(ctx)
	if err != nil {
		return "", err
	}

	var last notes.SemanticVersion
	if release != nil {
		last, err = notes.ParseVersion(release.TagName)
		if err != nil {
			return "", clierrors.UnparsableReleaseTag(release.TagName, err)
		}
	}

	version, err := notes.EstimateNextVersion(&last, extracted)
	if err != nil {
		return "", clierrors.Wrap(err, clierrors.Runtime)
	}
	g.report.line("Estimated next version to be: %s", version)
	return version, nil
}

func (g *Generator) startActivity(msg string) {
	if g.opts.Activity != nil {
		g.opts.Activity.Start(msg)
	}
}

func (g *Generator) stopActivity() {
	if g.opts.Activity != nil {
		g.opts.Activity.Stop()
	}
}

func filterLabeled(pulls []*model.PullRequest, label string) []*model.PullRequest {
	var labeled []*model.PullRequest
	for _, pr := range pulls {
		if pr.HasLabel(label) {
			labeled = append(labeled, pr)
		}
	}
	return labeled
}
