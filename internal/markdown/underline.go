package markdown

import (
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindUnderline is the node kind of UnderlineSpan.
var KindUnderline = gast.NewNodeKind("Underline")

// UnderlineSpan is an inline node produced by underscore delimiters.
type UnderlineSpan struct {
	gast.BaseInline
}

// Kind implements ast.Node.
func (n *UnderlineSpan) Kind() gast.NodeKind { return KindUnderline }

// Dump implements ast.Node.
func (n *UnderlineSpan) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

type underlineDelimiterProcessor struct{}

func (underlineDelimiterProcessor) IsDelimiter(b byte) bool { return b == '_' }

func (underlineDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (underlineDelimiterProcessor) OnMatch(int) gast.Node { return &UnderlineSpan{} }

// underlineParser claims '_' ahead of the emphasis parser (priority 500), so
// underscores produce <u> while '*' keeps producing <em>/<strong>.
type underlineParser struct{}

func (underlineParser) Trigger() []byte { return []byte{'_'} }

func (underlineParser) Parse(_ gast.Node, block text.Reader, pc parser.Context) gast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 1, underlineDelimiterProcessor{})
	if node == nil {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

type underlineRenderer struct{}

func (r underlineRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindUnderline, r.render)
}

func (underlineRenderer) render(w util.BufWriter, _ []byte, _ gast.Node, entering bool) (gast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<u>")
	} else {
		_, _ = w.WriteString("</u>")
	}
	return gast.WalkContinue, nil
}

type underline struct{}

// Underline renders underscore-delimited spans as <u> elements.
var Underline goldmark.Extender = &underline{}

func (*underline) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(underlineParser{}, 450),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(underlineRenderer{}, 500),
	))
}
