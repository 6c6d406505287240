package notes

import (
	"fmt"
	"time"
)

// devsiteDateFormat renders dates as "DD Month, YYYY".
const devsiteDateFormat = "02 January, 2006"

// DevsiteOptions configures the documentation-site dialect.
type DevsiteOptions struct {
	// ReleaseDate is printed in the header. Zero means tomorrow according to Now.
	ReleaseDate time.Time
	// Now is the clock used for the default release date. Nil uses time.Now.
	Now func() time.Time
	// SiteURL is stripped from absolute links. Empty uses DefaultSiteURL.
	SiteURL string
	// Width is the wrap column. Zero uses DefaultWrapWidth, negative disables wrapping.
	Width    int
	Sections SectionTable
}

// DevsiteFormatter renders the documentation-site dialect: `{{feature}}`
// style macro tags, site-relative links, and lines wrapped to Width columns.
type DevsiteFormatter struct {
	version string
	opts    DevsiteOptions
}

// NewDevsiteFormatter creates a documentation-site formatter for version.
func NewDevsiteFormatter(version string, opts DevsiteOptions) *DevsiteFormatter {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sections == nil {
		opts.Sections = DefaultSections()
	}
	if opts.SiteURL == "" {
		opts.SiteURL = DefaultSiteURL
	}
	if opts.Width == 0 {
		opts.Width = DefaultWrapWidth
	}
	return &DevsiteFormatter{version: version, opts: opts}
}

// RenderDevsite renders notes as a documentation-site document.
func RenderDevsite(notes []Note, version string, opts DevsiteOptions) string {
	return Render(notes, NewDevsiteFormatter(version, opts))
}

// ReleaseDate returns the date printed in the header.
func (f *DevsiteFormatter) ReleaseDate() time.Time {
	if !f.opts.ReleaseDate.IsZero() {
		return f.opts.ReleaseDate
	}
	return f.opts.Now().AddDate(0, 0, 1)
}

func (f *DevsiteFormatter) Header() string {
	date := f.ReleaseDate().Format(devsiteDateFormat)
	return fmt.Sprintf("## <a name=\"%s\">Version %s - %s</a>\n\n", f.version, f.version, date)
}

func (f *DevsiteFormatter) SectionHeader(section string) string {
	return fmt.Sprintf("### %s\n\n", f.opts.Sections.Title(section, Devsite))
}

func (f *DevsiteFormatter) NoteLine(n Note) string {
	desc := withFullStop(relativeLinks(n.Description, f.opts.SiteURL))
	line := fmt.Sprintf("- %s %s%s", devsiteTag(n.Kind), desc, attributionText(n))
	return wrapLine(line, f.opts.Width)
}

func (f *DevsiteFormatter) SectionFooter(string) string {
	return "\n"
}

func devsiteTag(k Kind) string {
	switch k {
	case Feature:
		return "{{feature}}"
	case Changed:
		return "{{changed}}"
	default:
		return "{{fixed}}"
	}
}
