package notes

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMissingVersion is returned when a next version is estimated without a last version.
var ErrMissingVersion = errors.New("last release version is required to estimate the next version")

var semverPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// SemanticVersion is a major.minor.patch release version.
type SemanticVersion struct {
	Major int
	Minor int
	Patch int
}

// String formats the version as major.minor.patch.
func (v SemanticVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion parses a release tag such as "v1.2.3" or "1.2.3".
func ParseVersion(tag string) (SemanticVersion, error) {
	m := semverPattern.FindStringSubmatch(strings.TrimPrefix(tag, "v"))
	if m == nil {
		return SemanticVersion{}, fmt.Errorf("invalid release version %q (expected: X.Y.Z or vX.Y.Z)", tag)
	}

	parts := make([]int, 3)
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return SemanticVersion{}, fmt.Errorf("invalid release version %q: %w", tag, err)
		}
		parts[i] = n
	}
	return SemanticVersion{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// EstimateNextVersion bumps one component of last based on the kinds present
// in notes: any Changed note bumps major, else any Feature bumps minor, else
// patch. A major bump leaves minor and patch untouched (1.2.3 -> 2.2.3); a
// minor bump restarts patch at zero (1.2.3 -> 1.3.0).
func EstimateNextVersion(last *SemanticVersion, notes []Note) (string, error) {
	if last == nil {
		return "", ErrMissingVersion
	}

	next := *last
	switch {
	case hasKind(notes, Changed):
		next.Major++
	case hasKind(notes, Feature):
		next.Minor++
		next.Patch = 0
	default:
		next.Patch++
	}
	return next.String(), nil
}

func hasKind(notes []Note, kind Kind) bool {
	for _, n := range notes {
		if n.Kind == kind {
			return true
		}
	}
	return false
}
