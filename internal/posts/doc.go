// Package posts builds the blog data module consumed by the portfolio site.
//
// A run is linear: list the source directory, parse each post, assemble its
// record (deriving a description when none is given), attach images, order
// the records newest first, render the module and replace the destination
// file atomically. Records are rebuilt from disk on every run.
package posts
