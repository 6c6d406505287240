// Package cli wires the relnotes commands: the root command that generates
// release notes, plus the pulls, init, and version subcommands.
package cli

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/github"
	"github.com/ariel-frischer/relnotes/internal/progress"
	"github.com/ariel-frischer/relnotes/internal/releasenotes"
)

// environment holds the process-level dependencies of the commands.
type environment struct {
	newSource func(repo string, opts github.Options) (releasenotes.Source, error)
	terminal  func() progress.TerminalCapabilities
	now       func() time.Time
	// userConfigPath overrides the user config location. Empty uses the default.
	userConfigPath string
}

func defaultEnvironment() *environment {
	return &environment{
		newSource: func(repo string, opts github.Options) (releasenotes.Source, error) {
			return github.NewClient(repo, opts)
		},
		terminal: func() progress.TerminalCapabilities {
			return progress.DetectTerminalCapabilities(os.Stderr)
		},
		now: time.Now,
	}
}

// flags holds every command-line option. Cutoff, connection, and output
// flags are persistent so the pulls subcommand shares them.
type flags struct {
	configPath   string
	repoPath     string
	branch       string
	token        string
	logLevel     string
	noColor      bool
	quiet        bool
	sincePR      int
	titlePrefix  string
	commitPrefix string
	commitSha    string
	nextVersion  string
	date         string
}

// newRootCmd builds the command tree around env.
func newRootCmd(env *environment) (*cobra.Command, *flags) {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "relnotes [owner/repo]",
		Short: "Generate release notes from merged pull requests",
		Long: heredoc.Doc(`
			Generate release notes for a GitHub repository.

			relnotes finds the pull request that bumped the previous version, collects
			every pull request closed since then that carries the release-note label,
			and prints the notes in two flavors: documentation-site markdown and a
			GitHub release body. The next version is estimated from the kinds of
			changes unless --next-version is given.

			Progress is written to stderr and the documents to stdout.
		`),
		Example: heredoc.Doc(`
			# Notes since the last "Bumped version to" pull request
			$ relnotes firebase/firebase-admin-go

			# Infer the repository from the origin remote of a local checkout
			$ relnotes --repo-path .

			# Cut off at a specific pull request and pin the version and date
			$ relnotes org/repo --since-pr 421 --next-version 4.2.0 --date 2024-03-05

			# Scan every base branch, quietly
			$ relnotes org/repo --branch '*' --quiet
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, env, f)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "Path to a project config file (default: .relnotes.yml)")
	pf.StringVar(&f.repoPath, "repo-path", ".", "Local checkout used to infer owner/repo when it is not given")
	pf.StringVar(&f.branch, "branch", "", "Base branch to scan; '*' scans all branches (default from config: master)")
	pf.StringVar(&f.token, "token", "", "GitHub access token (default: $RELNOTES_TOKEN or $TAPROBANA_GITHUB_TOKEN)")
	pf.StringVar(&f.logLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error")
	pf.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	pf.BoolVarP(&f.quiet, "quiet", "q", false, "Suppress progress output")
	pf.IntVar(&f.sincePR, "since-pr", 0, "Cut off at the pull request with this number")
	pf.StringVar(&f.titlePrefix, "title-prefix", "", "Cut off at the latest closed pull request whose title starts with this text")
	pf.StringVar(&f.commitPrefix, "commit-prefix", "", "Cut off at the latest commit whose message starts with this text")
	pf.StringVar(&f.commitSha, "commit-sha", "", "Cut off at the commit with this SHA")

	cmd.Flags().StringVar(&f.nextVersion, "next-version", "", "Version of the upcoming release (default: estimated)")
	cmd.Flags().StringVar(&f.date, "date", "", "Release date as YYYY-MM-DD (default: tomorrow)")

	cmd.AddCommand(newPullsCmd(env, f))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd, f
}

// Execute runs the root command and prints any failure to stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env := defaultEnvironment()
	cmd, f := newRootCmd(env)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		useColor := !f.noColor && env.terminal().SupportsColor
		clierrors.PrintAny(os.Stderr, err, useColor)
	}
	return err
}
