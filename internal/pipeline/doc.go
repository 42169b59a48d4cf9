// Package pipeline implements the profile-to-document rendering stages.
//
// The stages run in a fixed chain:
//   - MarkdownRenderer turns a profile into the canonical Markdown document
//   - HTMLConverter parses that Markdown with Goldmark and renders an HTML page
//   - TextConverter parses the same Markdown and walks the tree to plain text
//
// Markdown is the single source of truth for content and ordering; HTML and
// plain text never look at the profile directly. PDF output is produced by
// the root profilemd package from the plain-text or HTML stage.
package pipeline
