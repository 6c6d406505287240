package notes

import (
	"regexp"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/model"
)

const (
	// apiChangeMarker flags a pull request as a breaking API change.
	apiChangeMarker = "API CHANGE:"
	// releaseNoteMarker introduces one release note description in a body.
	releaseNoteMarker = "RELEASE NOTE:"
	// featureType is the conventional commit type that marks a feature.
	featureType = "feat"
)

// conventionalTitle finds `type(scope): description` anywhere in a title, so
// prefixes such as "[Backport] " are skipped.
var conventionalTitle = regexp.MustCompile(`(?P<type>\w+)(\((?P<scope>\w+)\))?:\s+(?P<desc>.+)`)

// Source yields the release notes carried by one pull request.
type Source interface {
	Notes() []Note
}

// Parser converts pull requests into release notes.
type Parser struct {
	sections SectionTable
}

// NewParser creates a parser that maps scopes through the given table.
// A nil table uses DefaultSections.
func NewParser(sections SectionTable) *Parser {
	if sections == nil {
		sections = DefaultSections()
	}
	return &Parser{sections: sections}
}

// Parse picks a message strategy for the pull request. Titles that do not
// follow the conventional pattern silently fall back to the plain strategy.
func (p *Parser) Parse(pr *model.PullRequest) Source {
	plain := plainMessage{
		title:       pr.Title,
		body:        pr.Body,
		attribution: attributionFor(pr),
	}

	m := conventionalTitle.FindStringSubmatch(pr.Title)
	if m == nil {
		return plain
	}

	plain.title = m[conventionalTitle.SubexpIndex("desc")]
	return conventionalMessage{
		plainMessage: plain,
		commitType:   m[conventionalTitle.SubexpIndex("type")],
		section:      p.sections.SectionFor(m[conventionalTitle.SubexpIndex("scope")]),
	}
}

// Extract parses every pull request and flattens the resulting notes,
// preserving pull request order.
func (p *Parser) Extract(pulls []*model.PullRequest) []Note {
	var result []Note
	for _, pr := range pulls {
		result = append(result, p.Parse(pr).Notes()...)
	}
	return result
}

// plainMessage uses the whole title and always lands in the default section.
type plainMessage struct {
	title       string
	body        string
	attribution *Attribution
}

func (m plainMessage) Notes() []Note {
	return buildNotes(m.kind(), DefaultSection, m.descriptions(), m.attribution)
}

func (m plainMessage) kind() Kind {
	if hasLinePrefix(m.body, apiChangeMarker) {
		return Changed
	}
	return Fixed
}

// descriptions prefers `RELEASE NOTE:` lines, then the text of `API CHANGE:`
// lines, then the title.
func (m plainMessage) descriptions() []string {
	if descs := markedLines(m.body, releaseNoteMarker); len(descs) > 0 {
		return descs
	}
	if descs := markedLines(m.body, apiChangeMarker); len(descs) > 0 {
		return descs
	}
	return []string{m.title}
}

// conventionalMessage adds the commit type and scope captured from the title.
type conventionalMessage struct {
	plainMessage
	commitType string
	section    string
}

func (m conventionalMessage) Notes() []Note {
	return buildNotes(m.kind(), m.section, m.descriptions(), m.attribution)
}

func (m conventionalMessage) kind() Kind {
	if k := m.plainMessage.kind(); k != Fixed {
		return k
	}
	if m.commitType == featureType {
		return Feature
	}
	return Fixed
}

func buildNotes(kind Kind, section string, descs []string, attribution *Attribution) []Note {
	result := make([]Note, 0, len(descs))
	for _, desc := range descs {
		result = append(result, Note{
			Kind:        kind,
			Description: withFullStop(desc),
			Section:     section,
			Attribution: attribution,
		})
	}
	return result
}

func attributionFor(pr *model.PullRequest) *Attribution {
	if !pr.IsContribution() {
		return nil
	}
	return &Attribution{
		Login:          pr.User.Login,
		ProfileURL:     pr.User.URL,
		PullRequestURL: pr.URL,
	}
}

func bodyLines(body string) []string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// markedLines returns the trimmed, non-empty text after marker on every body
// line that starts with it.
func markedLines(body, marker string) []string {
	var result []string
	for _, line := range bodyLines(body) {
		if !strings.HasPrefix(line, marker) {
			continue
		}
		if text := strings.TrimSpace(strings.TrimPrefix(line, marker)); text != "" {
			result = append(result, text)
		}
	}
	return result
}

func hasLinePrefix(body, prefix string) bool {
	for _, line := range bodyLines(body) {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// withFullStop appends a period unless the text already ends with one.
func withFullStop(text string) string {
	if strings.HasSuffix(text, ".") {
		return text
	}
	return text + "."
}
