package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// DefaultExtensions lists the features enabled when ParseOptions names none.
var DefaultExtensions = []string{
	"tables",
	"strikethrough",
	"underline",
	"latexmath",
	"autolink",
	"tasklist",
}

// GoldmarkParser implements interfaces.MarkdownParser using the goldmark engine.
// The engine for the default options is built once and reused; goldmark
// engines are safe for concurrent Convert calls.
type GoldmarkParser struct {
	defaultOptions interfaces.ParseOptions
	engine         goldmark.Markdown
}

var _ interfaces.MarkdownParser = (*GoldmarkParser)(nil)

// NewGoldmarkParser constructs a parser using defaults as its baseline
// configuration.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaultOptions: defaults,
		engine:         newGoldmarkEngine(defaults),
	}
}

// Parse renders Markdown into HTML using the parser's default configuration.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Render(markdown, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseWithOptions renders Markdown into HTML using the provided options.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := convert(newGoldmarkEngine(opts), markdown, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render streams the HTML fragment for markdown into w.
func (p *GoldmarkParser) Render(markdown []byte, w io.Writer) error {
	return convert(p.engine, markdown, w)
}

func convert(engine goldmark.Markdown, markdown []byte, w io.Writer) error {
	if err := engine.Convert(markdown, w); err != nil {
		return fmt.Errorf("markdown convert: %w", err)
	}
	return nil
}

// newGoldmarkEngine builds a goldmark.Markdown configured from opts. Headings
// get no generated ids so fragments stay byte-for-byte predictable.
func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	var rendererOptions []renderer.Option
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithExtensions(collectExtensions(opts.Extensions)...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"underline":     Underline,
	"latexmath":     MathSpans,
	"math":          MathSpans,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		names = DefaultExtensions
	}

	var extenders []goldmark.Extender
	seen := map[goldmark.Extender]struct{}{}
	for _, name := range names {
		ext, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		extenders = append(extenders, ext)
	}
	return extenders
}
