// Package notes turns merged pull requests into release notes.
//
// This package implements:
//   - Message parsing: conventional (`type(scope): description`) and plain titles,
//     `RELEASE NOTE:` and `API CHANGE:` body markers, contributor attribution
//   - Next-version estimation from the kinds of collected notes
//   - Grouped rendering in two dialects: the documentation site (macro tags,
//     relative links, wrapped at 80 columns) and GitHub releases (bracketed tags,
//     absolute links, unwrapped)
//
// Rendering is deterministic: the same notes, version and release date always
// produce byte-identical output.
package notes
