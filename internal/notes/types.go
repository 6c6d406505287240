package notes

// Kind classifies a release note.
type Kind int

const (
	// Fixed is a bug fix or any change that is neither a feature nor an API change.
	Fixed Kind = iota
	// Feature is a new capability, from a `feat` conventional title.
	Feature
	// Changed is a breaking or API change, from an `API CHANGE:` body marker.
	Changed
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Feature:
		return "feature"
	case Changed:
		return "changed"
	default:
		return "fixed"
	}
}

// Attribution credits an external contributor for a note.
type Attribution struct {
	Login          string
	ProfileURL     string
	PullRequestURL string
}

// Note is a single release note entry. Notes are immutable once parsed and
// carry no reference back to the pull request they came from.
type Note struct {
	Kind        Kind
	Description string
	// Section is the scope key the note is grouped under. Empty means the
	// default, ungrouped section.
	Section     string
	Attribution *Attribution
}
