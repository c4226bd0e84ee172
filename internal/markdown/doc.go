// Package markdown converts Markdown sources into HTML fragments with goldmark.
// The default feature set covers tables, strikethrough, underline, inline
// LaTeX math spans, permissive autolinks and task lists; underline and math
// spans are implemented as goldmark extensions in this package.
package markdown
