package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/github"
	"github.com/ariel-frischer/relnotes/internal/gitremote"
	"github.com/ariel-frischer/relnotes/internal/lifecycle"
	"github.com/ariel-frischer/relnotes/internal/logger"
	"github.com/ariel-frischer/relnotes/internal/progress"
	"github.com/ariel-frischer/relnotes/internal/releasenotes"
)

// dateLayout is the --date format, YYYY-MM-DD.
const dateLayout = "2006-01-02"

// cutoffFlags are the mutually exclusive ways to locate the previous release,
// in precedence order.
var cutoffFlags = []string{"since-pr", "commit-sha", "commit-prefix", "title-prefix"}

// session is the state shared by every command that talks to GitHub.
type session struct {
	cfg      *config.Configuration
	source   releasenotes.Source
	strategy github.CutoffStrategy
	log      *logger.Logger
	color    bool
	spinner  *progress.Spinner
}

// options returns the generator options common to all commands.
func (s *session) options(cmd *cobra.Command, f *flags) releasenotes.Options {
	opts := releasenotes.Options{
		Strategy:     s.strategy,
		ReleaseLabel: s.cfg.ReleaseLabel,
		Sections:     s.cfg.Sections,
		SiteURL:      s.cfg.SiteURL,
		WrapWidth:    s.cfg.WrapWidth,
		Color:        s.color,
		Logger:       s.log,
	}
	if !f.quiet {
		opts.Progress = cmd.ErrOrStderr()
		opts.Activity = s.spinner
	}
	return opts
}

// newSession loads configuration, applies flag overrides, resolves the
// repository, and picks the cutoff strategy. It never touches the network.
func newSession(cmd *cobra.Command, args []string, env *environment, f *flags) (*session, error) {
	cfg, err := loadConfig(env, f)
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cmd, cfg, f)

	log := logger.NewLoggerTo(cmd.ErrOrStderr(), cfg.LogLevel)
	gitremote.SetDebugLogger(log.Debug)
	if cfg.AllBranches() {
		log.Debug("base branch filter disabled")
	}

	repo, err := resolveRepo(args, f.repoPath)
	if err != nil {
		return nil, err
	}

	strategy, err := selectStrategy(cmd, f, cfg.TitlePrefix)
	if err != nil {
		return nil, err
	}

	source, err := env.newSource(repo, github.Options{
		Branch: cfg.Branch,
		Token:  cfg.Token,
		APIURL: cfg.APIURL,
		Logger: log.With("repo", repo),
	})
	if err != nil {
		return nil, err
	}
	log.Debug("session ready", "repo", repo, "branch", cfg.Branch, "cutoff", strategy.String())

	caps := env.terminal()
	return &session{
		cfg:      cfg,
		source:   source,
		strategy: strategy,
		log:      log,
		color:    !f.noColor && caps.SupportsColor,
		spinner:  progress.NewSpinner(cmd.ErrOrStderr(), caps),
	}, nil
}

func runGenerate(cmd *cobra.Command, args []string, env *environment, f *flags) error {
	releaseDate, err := parseReleaseDate(f.date)
	if err != nil {
		return err
	}

	s, err := newSession(cmd, args, env, f)
	if err != nil {
		return err
	}

	opts := s.options(cmd, f)
	opts.NextVersion = f.nextVersion
	opts.ReleaseDate = releaseDate
	opts.Now = env.now

	return lifecycle.Run(commandLog{s.log}, "generate", func() error {
		result, err := releasenotes.New(s.source, opts).Generate(cmd.Context())
		if err != nil {
			return err
		}
		return result.Write(cmd.OutOrStdout())
	})
}

// commandLog reports command timings to the diagnostic log.
type commandLog struct {
	log *logger.Logger
}

func (c commandLog) OnCommandComplete(name string, success bool, duration time.Duration) {
	c.log.Info("command finished", "command", name, "success", success, "duration", duration.Round(time.Millisecond))
}

func loadConfig(env *environment, f *flags) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: f.configPath,
		UserConfigPath:    env.userConfigPath,
	})
	if err == nil {
		return cfg, nil
	}

	var validationErr *config.ValidationError
	if errors.As(err, &validationErr) && validationErr.Key != "" {
		return nil, clierrors.ConfigValidationError(err)
	}
	path := f.configPath
	if validationErr != nil {
		path = validationErr.Source
	}
	return nil, clierrors.ConfigParseError(path, err)
}

// applyFlagOverrides copies explicitly set flags over the loaded configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Configuration, f *flags) {
	changed := cmd.Flags().Changed
	if changed("branch") {
		cfg.Branch = f.branch
	}
	if changed("token") {
		cfg.Token = f.token
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
}

// resolveRepo takes the positional owner/repo, falling back to the origin
// remote of the checkout at repoPath.
func resolveRepo(args []string, repoPath string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}
	if repoPath != "" {
		if repo, err := gitremote.InferRepo(repoPath); err == nil {
			return repo, nil
		}
	}
	return "", clierrors.RepoNotSpecified()
}

// selectStrategy maps the cutoff flags to a search strategy. At most one may
// be given; with none, the configured title prefix is used.
func selectStrategy(cmd *cobra.Command, f *flags, defaultPrefix string) (github.CutoffStrategy, error) {
	var given []string
	for _, name := range cutoffFlags {
		if cmd.Flags().Changed(name) {
			given = append(given, "--"+name)
		}
	}
	if len(given) > 1 {
		return nil, clierrors.InvalidFlagCombination(strings.Join(given, ", "),
			"Give at most one of --since-pr, --commit-sha, --commit-prefix, --title-prefix")
	}

	name := "title-prefix"
	if len(given) == 1 {
		name = strings.TrimPrefix(given[0], "--")
	}

	switch name {
	case "since-pr":
		if f.sincePR <= 0 {
			return nil, clierrors.NewArgumentError("--since-pr must be a positive pull request number")
		}
		return github.ByNumber{Number: f.sincePR}, nil
	case "commit-sha":
		if f.commitSha == "" {
			return nil, clierrors.NewArgumentError("--commit-sha must not be empty")
		}
		return github.ByCommitSha{SHA: f.commitSha}, nil
	case "commit-prefix":
		if f.commitPrefix == "" {
			return nil, clierrors.NewArgumentError("--commit-prefix must not be empty")
		}
		return github.ByCommitPrefix{Prefix: f.commitPrefix}, nil
	default:
		prefix := defaultPrefix
		if len(given) == 1 {
			prefix = f.titlePrefix
		}
		if prefix == "" {
			return nil, clierrors.NewArgumentError("--title-prefix must not be empty")
		}
		return github.ByTitlePrefix{Prefix: prefix}, nil
	}
}

// parseReleaseDate parses --date. An empty value yields the zero time, which
// the generator replaces with tomorrow.
func parseReleaseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, clierrors.InvalidDate(value, "YYYY-MM-DD", err)
	}
	return date, nil
}
