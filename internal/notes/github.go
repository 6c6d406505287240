package notes

import (
	"fmt"
	"strings"
)

// devsiteMacros maps documentation-site macros to their GitHub rendering.
var devsiteMacros = []struct{ macro, text string }{
	{"{{feature}}", "[Feature]"},
	{"{{changed}}", "[Changed]"},
	{"{{fixed}}", "[Fixed]"},
	{"{{messaging_longer}}", "Firebase Cloud Messaging"},
}

// GitHubOptions configures the host-platform dialect.
type GitHubOptions struct {
	// SiteURL is prefixed to site-relative links. Empty uses DefaultSiteURL.
	SiteURL  string
	Sections SectionTable
}

// GitHubFormatter renders the GitHub release dialect: bracketed tags,
// absolute links, no wrapping.
type GitHubFormatter struct {
	version string
	opts    GitHubOptions
}

// NewGitHubFormatter creates a GitHub release formatter for version.
func NewGitHubFormatter(version string, opts GitHubOptions) *GitHubFormatter {
	if opts.Sections == nil {
		opts.Sections = DefaultSections()
	}
	if opts.SiteURL == "" {
		opts.SiteURL = DefaultSiteURL
	}
	return &GitHubFormatter{version: version, opts: opts}
}

// RenderGitHub renders notes as a GitHub release document.
func RenderGitHub(notes []Note, version string, opts GitHubOptions) string {
	return Render(notes, NewGitHubFormatter(version, opts))
}

func (f *GitHubFormatter) Header() string {
	return f.version + "\n\n"
}

func (f *GitHubFormatter) SectionHeader(section string) string {
	return fmt.Sprintf("### %s\n\n", f.opts.Sections.Title(section, GitHub))
}

func (f *GitHubFormatter) NoteLine(n Note) string {
	desc := withFullStop(absoluteLinks(replaceMacros(n.Description), f.opts.SiteURL))
	return fmt.Sprintf("- %s %s%s", githubTag(n.Kind), desc, attributionText(n))
}

func (f *GitHubFormatter) SectionFooter(string) string {
	return "\n"
}

func githubTag(k Kind) string {
	switch k {
	case Feature:
		return "[Feature]"
	case Changed:
		return "[Changed]"
	default:
		return "[Fixed]"
	}
}

func replaceMacros(text string) string {
	for _, m := range devsiteMacros {
		text = strings.ReplaceAll(text, m.macro, m.text)
	}
	return text
}
