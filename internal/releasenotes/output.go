package releasenotes

import (
	"fmt"
	"io"
	"strings"
)

const (
	devsiteHeading = "Devsite release notes"
	githubHeading  = "Github release notes"
)

// Write prints both documents under their headings.
func (r *Result) Write(w io.Writer) error {
	var b strings.Builder
	writeDocument(&b, devsiteHeading, r.Devsite)
	writeDocument(&b, githubHeading, r.GitHub)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeDocument(b *strings.Builder, heading, doc string) {
	fmt.Fprintf(b, "%s\n%s\n%s\n", heading, strings.Repeat("=", len(heading)), doc)
}
