package notes

import (
	"slices"
	"strings"
)

// Formatter renders the pieces of one output dialect. Render drives the
// grouping loop and calls through this interface.
type Formatter interface {
	// Header returns the document header, including trailing blank line.
	Header() string
	// SectionHeader returns the heading block for a non-default section key.
	SectionHeader(section string) string
	// NoteLine returns the bullet for one note without a trailing newline.
	// Wrapped dialects may return several lines.
	NoteLine(n Note) string
	// SectionFooter returns the text closing a section.
	SectionFooter(section string) string
}

// Render groups notes by section and writes them through f. The default
// section always comes first, followed by the remaining sections in
// lexicographic order. Notes keep their input order within a section.
func Render(notes []Note, f Formatter) string {
	groups, keys := groupBySection(notes)

	var b strings.Builder
	b.WriteString(f.Header())
	for _, key := range keys {
		if key != DefaultSection {
			b.WriteString(f.SectionHeader(key))
		}
		for _, n := range groups[key] {
			b.WriteString(f.NoteLine(n))
			b.WriteString("\n")
		}
		b.WriteString(f.SectionFooter(key))
	}
	return b.String()
}

// groupBySection buckets notes and returns the bucket keys in render order.
func groupBySection(notes []Note) (map[string][]Note, []string) {
	groups := make(map[string][]Note)
	var keys []string
	for _, n := range notes {
		if _, ok := groups[n.Section]; !ok {
			keys = append(keys, n.Section)
		}
		groups[n.Section] = append(groups[n.Section], n)
	}

	slices.SortFunc(keys, compareSections)
	return groups, keys
}

// compareSections orders the default section before every named section.
func compareSections(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == DefaultSection:
		return -1
	case b == DefaultSection:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
