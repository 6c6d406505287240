// Package gitremote infers the hosted repository (owner/name) of a local git
// checkout from its origin remote. It uses go-git, so no git binary is needed.
package gitremote

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
)

// OriginRemote is the remote consulted for inference.
const OriginRemote = "origin"

// ErrNoOrigin is returned when the checkout has no usable origin remote.
var ErrNoOrigin = errors.New("no origin remote configured")

var (
	debugMu sync.RWMutex
	// debugLogger receives diagnostic messages. Nil disables them.
	debugLogger func(msg string, args ...any)
)

// SetDebugLogger configures the debug logger for remote inference.
func SetDebugLogger(logger func(msg string, args ...any)) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugLogger = logger
}

func logDebug(msg string, args ...any) {
	debugMu.RLock()
	logger := debugLogger
	debugMu.RUnlock()
	if logger != nil {
		logger(msg, args...)
	}
}

// openRepo opens the repository containing path, walking up to find .git.
// An empty path means the current working directory.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("opening repository", "path", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// InferRepo returns "owner/name" for the checkout at path.
func InferRepo(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(OriginRemote)
	if errors.Is(err, git.ErrRemoteNotFound) {
		return "", ErrNoOrigin
	}
	if err != nil {
		return "", fmt.Errorf("reading origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", ErrNoOrigin
	}

	owner, name, err := ParseRemoteURL(urls[0])
	if err != nil {
		return "", err
	}
	logDebug("inferred repository", "url", urls[0], "repo", owner+"/"+name)
	return owner + "/" + name, nil
}

// ParseRemoteURL extracts owner and name from a remote URL in https, ssh, or
// scp-like (git@host:owner/name.git) form.
func ParseRemoteURL(raw string) (owner, name string, err error) {
	path, err := remotePath(strings.TrimSpace(raw))
	if err != nil {
		return "", "", err
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("remote URL %q does not name owner/repo", raw)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}

func remotePath(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty remote URL")
	}
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("parsing remote URL %q: %w", raw, err)
		}
		return u.Path, nil
	}
	// scp-like syntax: [user@]host:path
	if _, path, ok := strings.Cut(raw, ":"); ok {
		return path, nil
	}
	return "", fmt.Errorf("unrecognized remote URL %q", raw)
}
