package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMathSpan is the node kind of MathSpan.
var KindMathSpan = gast.NewNodeKind("MathSpan")

// MathSpan holds an inline ($...$) or display ($$...$$) LaTeX equation.
// The equation text is kept verbatim; rendering only escapes it.
type MathSpan struct {
	gast.BaseInline
	Display bool
	Content text.Segment
}

// Kind implements ast.Node.
func (n *MathSpan) Kind() gast.NodeKind { return KindMathSpan }

// Dump implements ast.Node.
func (n *MathSpan) Dump(source []byte, level int) {
	kv := map[string]string{"Content": string(n.Content.Value(source))}
	if n.Display {
		kv["Display"] = "true"
	}
	gast.DumpHelper(n, source, level, kv, nil)
}

type mathSpanParser struct{}

func (mathSpanParser) Trigger() []byte { return []byte{'$'} }

// Parse matches an opener of one or two dollars with a closer of the same
// width on the current line. Anything else is left to the text parser.
func (mathSpanParser) Parse(_ gast.Node, block text.Reader, _ parser.Context) gast.Node {
	line, segment := block.PeekLine()
	width := 0
	for width < len(line) && line[width] == '$' {
		width++
	}
	if width > 2 {
		return nil
	}

	delim := line[:width]
	rest := line[width:]
	for offset := 0; offset < len(rest); {
		idx := bytes.Index(rest[offset:], delim)
		if idx < 0 {
			return nil
		}
		end := offset + idx
		// The closer must be exactly width dollars long.
		if end+width < len(rest) && rest[end+width] == '$' {
			offset = end + width + 1
			continue
		}
		if end == 0 {
			return nil
		}
		node := &MathSpan{
			Display: width == 2,
			Content: text.NewSegment(segment.Start+width, segment.Start+width+end),
		}
		block.Advance(width + end + width)
		return node
	}
	return nil
}

type mathSpanRenderer struct{}

func (r mathSpanRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMathSpan, r.render)
}

func (mathSpanRenderer) render(w util.BufWriter, source []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	span := n.(*MathSpan)
	if span.Display {
		_, _ = w.WriteString(`<x-equation type="display">`)
	} else {
		_, _ = w.WriteString("<x-equation>")
	}
	_, _ = w.Write(util.EscapeHTML(span.Content.Value(source)))
	_, _ = w.WriteString("</x-equation>")
	return gast.WalkSkipChildren, nil
}

type mathSpans struct{}

// MathSpans renders $...$ and $$...$$ as <x-equation> elements.
var MathSpans goldmark.Extender = &mathSpans{}

func (*mathSpans) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(mathSpanParser{}, 150),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(mathSpanRenderer{}, 500),
	))
}
