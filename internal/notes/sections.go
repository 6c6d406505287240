package notes

import (
	"maps"
	"slices"
)

// Dialect selects an output format convention.
type Dialect int

const (
	// Devsite is the documentation-site dialect.
	Devsite Dialect = iota
	// GitHub is the host-platform (GitHub release) dialect.
	GitHub
)

// Well-known section keys.
const (
	DefaultSection   = ""
	SectionAuth      = "auth"
	SectionMessaging = "fcm"
)

// SectionTitles holds the per-dialect heading for one section.
type SectionTitles struct {
	Devsite string `koanf:"devsite" yaml:"devsite"`
	GitHub  string `koanf:"github" yaml:"github"`
}

// SectionTable maps conventional-commit scopes to section headings.
// Scopes missing from the table fall into the default section.
type SectionTable map[string]SectionTitles

// DefaultSections returns the built-in scope table.
func DefaultSections() SectionTable {
	return SectionTable{
		SectionAuth:      {Devsite: "{{auth}}", GitHub: "Authentication"},
		SectionMessaging: {Devsite: "{{messaging_longer}}", GitHub: "Cloud Messaging"},
	}
}

// SectionFor returns the section key for a parsed scope.
func (t SectionTable) SectionFor(scope string) string {
	if _, ok := t[scope]; ok {
		return scope
	}
	return DefaultSection
}

// Title returns the heading for a section key in the given dialect, falling
// back to the key itself.
func (t SectionTable) Title(key string, d Dialect) string {
	titles, ok := t[key]
	if !ok {
		return key
	}
	title := titles.Devsite
	if d == GitHub {
		title = titles.GitHub
	}
	if title == "" {
		return key
	}
	return title
}

// Key is the inverse of Title: it recovers the section key from a rendered
// heading. Unknown headings are returned unchanged.
func (t SectionTable) Key(title string, d Dialect) string {
	for _, key := range slices.Sorted(maps.Keys(t)) {
		if t.Title(key, d) == title {
			return key
		}
	}
	return title
}
