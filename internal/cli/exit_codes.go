package cli

// Exit codes for the relnotes CLI
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates any reported failure: bad arguments or config,
	// no new pull requests, or a GitHub API error
	ExitFailure = 1
)

// ExitCode maps the error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err != nil {
		return ExitFailure
	}
	return ExitSuccess
}
