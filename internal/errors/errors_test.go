package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategoryString(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"empty result":  {category: EmptyResult, want: "Empty Result"},
		"upstream":      {category: Upstream, want: "Upstream Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"unknown":       {category: ErrorCategory(42), want: "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("connection reset")
	err := UpstreamFailure("listing pull requests", cause)

	assert.Equal(t, Upstream, err.Category)
	assert.Equal(t, "GitHub API request failed while listing pull requests: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "x"))
}

func TestInvalidDateKeepsCauseOutOfMessage(t *testing.T) {
	t.Parallel()

	_, cause := time.Parse("2006-01-02", "05/03/2024")
	require.Error(t, cause)

	err := InvalidDate("05/03/2024", "YYYY-MM-DD", cause)
	assert.Equal(t, Argument, err.Category)
	assert.Equal(t, `invalid release date "05/03/2024"`, err.Error())
	assert.ErrorIs(t, err, cause)

	var parseErr *time.ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, []string{"Use the YYYY-MM-DD format, e.g. --date 2024-03-05"}, err.Remediation)
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	base := NoPullsSinceRelease()
	wrapped := fmt.Errorf("generate: %w", base)

	assert.Same(t, base, AsCLIError(wrapped))
	assert.True(t, IsCLIError(wrapped))
	assert.True(t, HasCategory(wrapped, EmptyResult))
	assert.False(t, HasCategory(wrapped, Upstream))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
	assert.False(t, HasCategory(nil, Runtime))
}

func TestMessages(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err      *CLIError
		category ErrorCategory
		message  string
	}{
		"repo not specified": {
			err:      RepoNotSpecified(),
			category: Configuration,
			message:  "Repo not specified.",
		},
		"no pulls": {
			err:      NoPullsSinceRelease(),
			category: EmptyResult,
			message:  "No new pull requests since the last release.",
		},
		"no labeled pulls": {
			err:      NoLabeledPulls("release-note"),
			category: EmptyResult,
			message:  "No pull requests labeled with release notes.",
		},
		"invalid version": {
			err:      InvalidVersion("1.2"),
			category: Argument,
			message:  `invalid version "1.2": expected MAJOR.MINOR.PATCH`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.message, tt.err.Message)
		})
	}
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	got := FormatErrorPlain(RepoNotSpecified())
	want := "Error [Configuration Error]: Repo not specified.\n" +
		"\n" +
		"Usage: relnotes <owner/repo> [flags]\n" +
		"\n" +
		"To fix this:\n" +
		"  - Pass the repository as the first argument, e.g. relnotes firebase/firebase-admin-go\n" +
		"  - Or run inside a checkout whose origin remote points at GitHub\n"
	assert.Equal(t, want, got)
	assert.Empty(t, FormatErrorPlain(nil))
	assert.Empty(t, FormatError(nil))
}

func TestPrintAny(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintAny(&buf, stderrors.New("boom"), false)
	require.Equal(t, "Error [Runtime Error]: boom\n", buf.String())

	buf.Reset()
	PrintAny(&buf, RepoNotSpecified(), false)
	assert.Equal(t, FormatErrorPlain(RepoNotSpecified()), buf.String())

	buf.Reset()
	PrintAny(&buf, nil, false)
	assert.Empty(t, buf.String())

	buf.Reset()
	PrintAny(&buf, fmt.Errorf("wrapped: %w", NoLabeledPulls("release-note")), false)
	assert.Contains(t, buf.String(), "Error [Empty Result]: No pull requests labeled with release notes.")
}
