package interfaces

import "io"

// MarkdownParser converts raw Markdown bytes into an HTML fragment. The parser
// is the only collaborator the site builder delegates document semantics to;
// a returned error is treated as a failed conversion of that one source.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
	// Render streams the HTML fragment into w in document order. No chunk
	// size is guaranteed; w may be written to any number of times.
	Render(markdown []byte, w io.Writer) error
}

// ParseOptions customises Markdown parsing behaviour. Extension names are
// case-insensitive; unknown names are ignored.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}
