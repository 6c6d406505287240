package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/github"
	"github.com/ariel-frischer/relnotes/internal/model"
	"github.com/ariel-frischer/relnotes/internal/progress"
	"github.com/ariel-frischer/relnotes/internal/releasenotes"
)

var cutoffTime = time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

type fakeSource struct {
	pulls []*model.PullRequest
}

func (f *fakeSource) HTMLURL() string     { return "https://github.com/org/repo" }
func (f *fakeSource) Authenticated() bool { return true }

func (f *fakeSource) SearchClosedPull(context.Context, string) (*model.PullRequest, error) {
	return &model.PullRequest{Number: 10, Title: "Bumped version to 1.2.3", ClosedAt: cutoffTime}, nil
}

func (f *fakeSource) GetPull(_ context.Context, number int) (*model.PullRequest, error) {
	return &model.PullRequest{Number: number, ClosedAt: cutoffTime}, nil
}

func (f *fakeSource) GetCommit(_ context.Context, sha string) (*model.Commit, error) {
	return &model.Commit{SHA: sha, CommittedAt: cutoffTime}, nil
}

func (f *fakeSource) ListCommitsPage(context.Context, int) ([]*model.Commit, error) {
	return nil, nil
}

func (f *fakeSource) FindPullsSince(context.Context, model.Cutoff) ([]*model.PullRequest, error) {
	return f.pulls, nil
}

func (f *fakeSource) FindLastRelease(context.Context) (*model.Release, error) {
	return &model.Release{TagName: "v1.2.3"}, nil
}

// sourceRecorder captures what the commands asked the factory for.
type sourceRecorder struct {
	mu    sync.Mutex
	calls []string
	opts  github.Options
}

func testEnvironment(t *testing.T) (*environment, *sourceRecorder) {
	t.Helper()

	rec := &sourceRecorder{}
	env := &environment{
		newSource: func(repo string, opts github.Options) (releasenotes.Source, error) {
			rec.mu.Lock()
			defer rec.mu.Unlock()
			rec.calls = append(rec.calls, repo)
			rec.opts = opts
			return &fakeSource{pulls: []*model.PullRequest{
				{
					Number:     12,
					Title:      "feat(fcm): Added new token API",
					Labels:     []string{"release-note"},
					BaseBranch: "master",
					ClosedAt:   cutoffTime.Add(time.Hour),
				},
				{
					Number:     14,
					Title:      "Update CI config",
					BaseBranch: "master",
					ClosedAt:   cutoffTime.Add(2 * time.Hour),
				},
			}}, nil
		},
		terminal:       func() progress.TerminalCapabilities { return progress.TerminalCapabilities{} },
		now:            func() time.Time { return time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC) },
		userConfigPath: filepath.Join(t.TempDir(), "missing.yml"),
	}
	return env, rec
}

func execute(t *testing.T, env *environment, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd, _ := newRootCmd(env)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	env, _ := testEnvironment(t)
	cmd, _ := newRootCmd(env)

	assert.Equal(t, "relnotes [owner/repo]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"pulls", "init", "version"}, names)
}

func TestRootCmd_Flags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName   string
		persistent bool
	}{
		"config":        {flagName: "config", persistent: true},
		"repo-path":     {flagName: "repo-path", persistent: true},
		"branch":        {flagName: "branch", persistent: true},
		"token":         {flagName: "token", persistent: true},
		"log-level":     {flagName: "log-level", persistent: true},
		"no-color":      {flagName: "no-color", persistent: true},
		"quiet":         {flagName: "quiet", persistent: true},
		"since-pr":      {flagName: "since-pr", persistent: true},
		"title-prefix":  {flagName: "title-prefix", persistent: true},
		"commit-prefix": {flagName: "commit-prefix", persistent: true},
		"commit-sha":    {flagName: "commit-sha", persistent: true},
		"next-version":  {flagName: "next-version"},
		"date":          {flagName: "date"},
	}

	env, _ := testEnvironment(t)
	cmd, _ := newRootCmd(env)

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if tt.persistent {
				assert.NotNil(t, cmd.PersistentFlags().Lookup(tt.flagName))
				return
			}
			assert.NotNil(t, cmd.Flags().Lookup(tt.flagName))
			assert.Nil(t, cmd.PersistentFlags().Lookup(tt.flagName))
		})
	}
}

func TestGenerateCommand(t *testing.T) {
	t.Parallel()

	env, rec := testEnvironment(t)
	stdout, stderr, err := execute(t, env, "org/repo", "--date", "2024-03-05", "--quiet")
	require.NoError(t, err)

	want := "Devsite release notes\n" +
		"=====================\n" +
		"## <a name=\"1.3.0\">Version 1.3.0 - 05 March, 2024</a>\n" +
		"\n" +
		"### {{messaging_longer}}\n" +
		"\n" +
		"- {{feature}} Added new token API.\n" +
		"\n" +
		"\n" +
		"Github release notes\n" +
		"====================\n" +
		"1.3.0\n" +
		"\n" +
		"### Cloud Messaging\n" +
		"\n" +
		"- [Feature] Added new token API.\n" +
		"\n" +
		"\n"
	assert.Equal(t, want, stdout)
	assert.Empty(t, stderr)
	assert.Equal(t, []string{"org/repo"}, rec.calls)
	assert.Equal(t, "master", rec.opts.Branch)
}

func TestGenerateCommandVerbose(t *testing.T) {
	t.Parallel()

	env, _ := testEnvironment(t)
	_, stderr, err := execute(t, env, "org/repo", "--branch", "*")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Analyzing GitHub history in https://github.com/org/repo\n")
	assert.Contains(t, stderr, `Looking for a pull request with: { TitlePrefix = "Bumped version to" }`)
	assert.Contains(t, stderr, "Extracted release notes from 1 pull requests.\n")
	assert.Contains(t, stderr, "Release date not specified. Release date will be set to tomorrow.\n")
	assert.NotContains(t, stderr, "\x1b[")
}

func TestGenerateCommandFlagOverrides(t *testing.T) {
	t.Parallel()

	env, rec := testEnvironment(t)
	_, _, err := execute(t, env, "org/repo", "-q", "--branch", "*", "--token", "secret", "--next-version", "v5.0.0")
	require.NoError(t, err)

	assert.Equal(t, github.AllBranches, rec.opts.Branch)
	assert.Equal(t, "secret", rec.opts.Token)
	assert.NotNil(t, rec.opts.Logger)
}

func TestGenerateCommandErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args         []string
		wantCategory clierrors.ErrorCategory
		wantMessage  string
		wantSource   bool
	}{
		"repo not specified": {
			args:         nil,
			wantCategory: clierrors.Configuration,
			wantMessage:  "Repo not specified.",
		},
		"bad date": {
			args:         []string{"org/repo", "--date", "05/03/2024"},
			wantCategory: clierrors.Argument,
			wantMessage:  `invalid release date "05/03/2024"`,
		},
		"bad next version": {
			args:         []string{"org/repo", "-q", "--next-version", "1.2"},
			wantCategory: clierrors.Argument,
			wantMessage:  `invalid version "1.2": expected MAJOR.MINOR.PATCH`,
			wantSource:   true,
		},
		"two cutoff flags": {
			args:         []string{"org/repo", "--since-pr", "3", "--commit-sha", "abc"},
			wantCategory: clierrors.Argument,
			wantMessage:  "invalid flag combination: --since-pr, --commit-sha",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			env, rec := testEnvironment(t)
			args := append([]string{"--repo-path", t.TempDir()}, tt.args...)

			stdout, _, err := execute(t, env, args...)
			require.Error(t, err)
			assert.Empty(t, stdout)
			assert.True(t, clierrors.HasCategory(err, tt.wantCategory), "got %v", err)
			assert.Equal(t, tt.wantMessage, err.Error())
			assert.Equal(t, tt.wantSource, len(rec.calls) > 0)
		})
	}
}

func TestGenerateCommandConfigErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content     string
		wantMessage string
	}{
		"yaml syntax": {
			content:     "branch: [unclosed\n",
			wantMessage: "failed to parse config file",
		},
		"invalid value": {
			content:     "wrap_width: 5000\n",
			wantMessage: "invalid configuration",
		},
		"invalid url names its key": {
			content:     "site_url: not a url\n",
			wantMessage: "invalid configuration: config validation failed: config: site_url must be a valid URL",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), ".relnotes.yml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			env, _ := testEnvironment(t)
			_, _, err := execute(t, env, "org/repo", "--config", path)
			require.Error(t, err)
			assert.True(t, clierrors.HasCategory(err, clierrors.Configuration))
			assert.True(t, strings.HasPrefix(err.Error(), tt.wantMessage), "got %q", err.Error())
		})
	}
}

func TestGenerateCommandProjectConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".relnotes.yml")
	require.NoError(t, os.WriteFile(path, []byte("branch: develop\nrelease_label: notes\n"), 0o644))

	env, rec := testEnvironment(t)
	_, _, err := execute(t, env, "org/repo", "-q", "--config", path)

	require.Error(t, err)
	assert.Equal(t, "No pull requests labeled with release notes.", err.Error())
	assert.Equal(t, "develop", rec.opts.Branch)
}

func TestSelectStrategy(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args    []string
		want    github.CutoffStrategy
		wantErr string
	}{
		"default title prefix": {
			want: github.ByTitlePrefix{Prefix: "Bumped version to"},
		},
		"explicit title prefix": {
			args: []string{"--title-prefix", "Release"},
			want: github.ByTitlePrefix{Prefix: "Release"},
		},
		"since pr": {
			args: []string{"--since-pr", "42"},
			want: github.ByNumber{Number: 42},
		},
		"commit prefix": {
			args: []string{"--commit-prefix", "chore: release"},
			want: github.ByCommitPrefix{Prefix: "chore: release"},
		},
		"commit sha": {
			args: []string{"--commit-sha", "abc123"},
			want: github.ByCommitSha{SHA: "abc123"},
		},
		"non positive pr": {
			args:    []string{"--since-pr", "0"},
			wantErr: "--since-pr must be a positive pull request number",
		},
		"empty commit sha": {
			args:    []string{"--commit-sha", ""},
			wantErr: "--commit-sha must not be empty",
		},
		"title and commit prefix": {
			args:    []string{"--title-prefix", "a", "--commit-prefix", "b"},
			wantErr: "invalid flag combination: --commit-prefix, --title-prefix",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			env, _ := testEnvironment(t)
			cmd, f := newRootCmd(env)
			require.NoError(t, cmd.ParseFlags(tt.args))

			got, err := selectStrategy(cmd, f, "Bumped version to")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.True(t, clierrors.HasCategory(err, clierrors.Argument))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReleaseDate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value   string
		want    time.Time
		wantErr bool
	}{
		"empty":      {value: "", want: time.Time{}},
		"valid":      {value: "2024-03-05", want: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		"wrong form": {value: "March 5", wantErr: true},
		"bad month":  {value: "2024-13-01", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := parseReleaseDate(tt.value)
			if tt.wantErr {
				assert.True(t, clierrors.HasCategory(err, clierrors.Argument))
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestResolveRepo(t *testing.T) {
	t.Parallel()

	checkout := t.TempDir()
	repo, err := git.PlainInit(checkout, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:firebase/firebase-admin-go.git"},
	})
	require.NoError(t, err)

	tests := map[string]struct {
		args     []string
		repoPath string
		want     string
		wantErr  bool
	}{
		"argument wins": {
			args:     []string{"org/repo"},
			repoPath: checkout,
			want:     "org/repo",
		},
		"inferred from origin": {
			repoPath: checkout,
			want:     "firebase/firebase-admin-go",
		},
		"blank argument falls back": {
			args:     []string{"  "},
			repoPath: checkout,
			want:     "firebase/firebase-admin-go",
		},
		"no checkout": {
			repoPath: t.TempDir(),
			wantErr:  true,
		},
		"no repo path": {
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveRepo(tt.args, tt.repoPath)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "Repo not specified.", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPullsCommand(t *testing.T) {
	t.Parallel()

	env, _ := testEnvironment(t)
	stdout, _, err := execute(t, env, "pulls", "org/repo", "-q")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "NUMBER")
	assert.Contains(t, lines[0], "RELEASE NOTE")
	assert.Regexp(t, `^\s*12[\s|]+master[\s|]+2024-02-01 01:00[\s|]+yes[\s|]+feat\(fcm\): Added new token API`, lines[2])
	assert.Regexp(t, `^\s*14[\s|]+master[\s|]+2024-02-01 02:00[\s|]+Update CI config`, lines[3])
}

func TestInitializeConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", ".relnotes.yml")
	var out bytes.Buffer

	written, err := initializeConfig(&out, path, false)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Contains(t, out.String(), "Config created at")

	cfg, err := config.LoadWithOptions(config.LoadOptions{ProjectConfigPath: path, UserConfigPath: filepath.Join(t.TempDir(), "none.yml")})
	require.NoError(t, err)
	assert.Equal(t, "master", cfg.Branch)

	out.Reset()
	written, err = initializeConfig(&out, path, false)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Contains(t, out.String(), "Config exists at")

	out.Reset()
	written, err = initializeConfig(&out, path, true)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Contains(t, out.String(), "Config overwritten at")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	env, _ := testEnvironment(t)

	stdout, _, err := execute(t, env, "version", "--plain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "relnotes dev\ncommit: unknown\n"))

	stdout, _, err = execute(t, env, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "relnotes dev (commit unknown, built unknown)")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitFailure, ExitCode(clierrors.RepoNotSpecified()))
}
