package errors

import "fmt"

// Common error messages for the relnotes CLI.

// RepoNotSpecified is raised before any network call when no repository was
// given and none could be inferred.
func RepoNotSpecified() *CLIError {
	err := NewConfigError(
		"Repo not specified.",
		"Pass the repository as the first argument, e.g. relnotes firebase/firebase-admin-go",
		"Or run inside a checkout whose origin remote points at GitHub",
	)
	err.Usage = "relnotes <owner/repo> [flags]"
	return err
}

// InvalidRepo creates an error for a repository argument that is not owner/name.
func InvalidRepo(repo string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid repository %q: expected owner/name", repo),
		"relnotes <owner/repo> [flags]",
	)
}

// NoPullsSinceRelease is raised when the scan found nothing after the cutoff.
func NoPullsSinceRelease() *CLIError {
	return NewEmptyResultError(
		"No new pull requests since the last release.",
		"Check the cutoff with --since-pr, --commit-sha or --commit-prefix",
		"Use --branch '*' to include every base branch",
	)
}

// NoLabeledPulls is raised when no scanned pull request carries the release label.
func NoLabeledPulls(label string) *CLIError {
	return NewEmptyResultError(
		"No pull requests labeled with release notes.",
		fmt.Sprintf("Add the %q label to pull requests that should appear in the notes", label),
	)
}

// InvalidVersion creates an error for an explicit version that is not X.Y.Z.
func InvalidVersion(version string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid version %q: expected MAJOR.MINOR.PATCH", version),
		"relnotes <owner/repo> --next-version 1.2.3",
	)
}

// UnparsableReleaseTag is raised when the latest release tag cannot seed the estimator.
func UnparsableReleaseTag(tag string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("cannot estimate next version from release tag %q", tag),
		"Pass the version explicitly with --next-version",
	)
}

// InvalidDate creates an error for a malformed --date value.
// The parse failure is kept as the cause, not in the message.
func InvalidDate(value, layout string, err error) *CLIError {
	dateErr := NewArgumentError(
		fmt.Sprintf("invalid release date %q", value),
		fmt.Sprintf("Use the %s format, e.g. --date %s", layout, "2024-03-05"),
	)
	dateErr.Err = err
	return dateErr
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'relnotes --help' to see valid options",
	)
}

// UpstreamFailure wraps a hosting platform error with the operation that failed.
func UpstreamFailure(operation string, err error) *CLIError {
	return WrapWithMessage(err, Upstream,
		fmt.Sprintf("GitHub API request failed while %s", operation),
		"Check your network connection",
		"Pass a token with --token or RELNOTES_TOKEN to raise rate limits",
	)
}

// ConfigParseError creates an error for invalid config file format.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for YAML or JSON syntax errors",
	)
}

// ConfigValidationError creates an error for config values that fail validation.
func ConfigValidationError(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Fix the reported keys in .relnotes.yml or the RELNOTES_* environment variables",
	)
}
