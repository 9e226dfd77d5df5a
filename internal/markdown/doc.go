// Package markdown turns blog post files into interfaces.Document values:
// front-matter extraction, single-directory discovery, summary derivation
// and optional HTML rendering through goldmark.
package markdown
