// Package sitegen drives a build: it enumerates the post directories of the
// content root, converts every Markdown source through the configured parser
// and writes header + fragment + footer into a mirrored output tree.
//
// Paths are always joined against explicit roots; the process working
// directory is never changed.
package sitegen
