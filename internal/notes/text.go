package notes

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultSiteURL is the documentation site whose links are rewritten.
const DefaultSiteURL = "https://firebase.google.com"

// DefaultWrapWidth is the documentation-site column limit.
const DefaultWrapWidth = 80

// continuationIndent prefixes every wrapped line after the first.
const continuationIndent = "  "

// relativeLinks strips siteURL from markdown link targets: `](https://site/x)` -> `](/x)`.
func relativeLinks(text, siteURL string) string {
	if siteURL == "" {
		return text
	}
	return strings.ReplaceAll(text, "]("+siteURL+"/", "](/")
}

// absoluteLinks prefixes siteURL to site-relative markdown link targets: `](/x)` -> `](https://site/x)`.
func absoluteLinks(text, siteURL string) string {
	if siteURL == "" {
		return text
	}
	return strings.ReplaceAll(text, "](/", "]("+siteURL+"/")
}

// attributionText thanks an external contributor, or returns "" when the note
// has no attribution.
func attributionText(n Note) string {
	a := n.Attribution
	if a == nil {
		return ""
	}
	return fmt.Sprintf(" Thanks [%s](%s) for the [contribution](%s).", a.Login, a.ProfileURL, a.PullRequestURL)
}

// wrapLine word-wraps line to width display columns. Continuation lines are
// indented and the indent counts toward the width. Words are never split, so
// a single word longer than the width stays on its own over-long line.
func wrapLine(line string, width int) string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return line
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return line
	}

	var lines []string
	current := words[0]
	currentWidth := runewidth.StringWidth(current)
	for _, word := range words[1:] {
		wordWidth := runewidth.StringWidth(word)
		if currentWidth+1+wordWidth > width {
			lines = append(lines, current)
			current = continuationIndent + word
			currentWidth = runewidth.StringWidth(continuationIndent) + wordWidth
			continue
		}
		current += " " + word
		currentWidth += 1 + wordWidth
	}
	lines = append(lines, current)

	return strings.Join(lines, "\n")
}
