// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// headingCommands maps Markdown heading levels to report-class sectioning
// commands. Level 1 is a chapter because the book uses the report class.
var headingCommands = [...]string{
	"chapter", "section", "subsection", "subsubsection", "paragraph", "subparagraph",
}

// latexRenderer renders a goldmark AST as LaTeX. Fenced blocks whose info
// string names an accepted target pass through raw; all other code becomes a
// Verbatim environment.
type latexRenderer struct {
	acceptTargets map[string]bool
}

func newLatexRenderer(accept []string) *latexRenderer {
	m := make(map[string]bool, len(accept))
	for _, t := range accept {
		m[strings.ToLower(t)] = true
	}
	return &latexRenderer{acceptTargets: m}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *latexRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindDocument, r.renderNoop)
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindTextBlock, r.renderTextBlock)
	reg.Register(ast.KindText, r.renderText)
	reg.Register(ast.KindString, r.renderString)
	reg.Register(ast.KindEmphasis, r.renderEmphasis)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
	reg.Register(ast.KindThematicBreak, r.renderThematicBreak)
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
}

func (r *latexRenderer) renderNoop(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	level := n.Level
	if level > len(headingCommands) {
		level = len(headingCommands)
	}
	if entering {
		fmt.Fprintf(w, "\\%s{", headingCommands[level-1])
	} else {
		w.WriteString("}\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderParagraph(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		w.WriteString("\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderTextBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering && node.NextSibling() != nil {
		w.WriteString("\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderText(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Text)
	w.WriteString(escape(n.Segment.Value(source)))
	switch {
	case n.HardLineBreak():
		w.WriteString("\\\\\n")
	case n.SoftLineBreak():
		w.WriteString("\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderString(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		w.WriteString(escape(node.(*ast.String).Value))
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderEmphasis(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	cmd := "\\emph{"
	if node.(*ast.Emphasis).Level == 2 {
		cmd = "\\textbf{"
	}
	if entering {
		w.WriteString(cmd)
	} else {
		w.WriteString("}")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderCodeSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		w.WriteString("\\texttt{")
	} else {
		w.WriteString("}")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := strings.ToLower(string(n.Language(source)))
	if r.acceptTargets[lang] {
		// Accepted target: the block is already in the output language.
		r.writeLines(w, source, n)
		w.WriteString("\n")
		return ast.WalkContinue, nil
	}
	r.writeVerbatim(w, source, n)
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.writeVerbatim(w, source, node)
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderList(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	env := "itemize"
	if node.(*ast.List).IsOrdered() {
		env = "enumerate"
	}
	if entering {
		fmt.Fprintf(w, "\\begin{%s}\n", env)
	} else {
		fmt.Fprintf(w, "\\end{%s}\n\n", env)
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderListItem(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		w.WriteString("\\item ")
	} else {
		w.WriteString("\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	// Link text renders inline; the destination lands in a footnote.
	if !entering {
		fmt.Fprintf(w, "\\footnote{\\texttt{%s}}", escape(node.(*ast.Link).Destination))
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		fmt.Fprintf(w, "\\texttt{%s}", escape(node.(*ast.AutoLink).URL(source)))
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		fmt.Fprintf(w, "\\includegraphics{%s}", string(node.(*ast.Image).Destination))
	}
	return ast.WalkSkipChildren, nil
}

func (r *latexRenderer) renderBlockquote(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		w.WriteString("\\begin{quote}\n")
	} else {
		w.WriteString("\\end{quote}\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderThematicBreak(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		w.WriteString("\\begin{center}\\rule{0.5\\linewidth}{0.4pt}\\end{center}\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	// Raw HTML is an alternate-output target: emitted verbatim when "html"
	// is accepted, dropped otherwise.
	if entering && r.acceptTargets["html"] {
		n := node.(*ast.HTMLBlock)
		r.writeLines(w, source, n)
		if n.HasClosure() {
			w.Write(n.ClosureLine.Value(source))
		}
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering && r.acceptTargets["html"] {
		n := node.(*ast.RawHTML)
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			w.Write(seg.Value(source))
		}
	}
	return ast.WalkSkipChildren, nil
}

// writeVerbatim wraps a block node's raw lines in a fancyvrb environment.
func (r *latexRenderer) writeVerbatim(w util.BufWriter, source []byte, n ast.Node) {
	w.WriteString("\\begin{Verbatim}\n")
	r.writeLines(w, source, n)
	w.WriteString("\\end{Verbatim}\n\n")
}

// writeLines copies a block node's source lines without interpretation.
func (r *latexRenderer) writeLines(w util.BufWriter, source []byte, n ast.Node) {
	l := n.Lines()
	for i := 0; i < l.Len(); i++ {
		seg := l.At(i)
		w.Write(seg.Value(source))
	}
}

// escape rewrites LaTeX special characters so chapter prose cannot break
// out of the surrounding document.
func escape(b []byte) string {
	var sb strings.Builder
	for i := 0; i < len(b); i++ {
		switch c := b[i]; c {
		case '\\':
			sb.WriteString("\\textbackslash{}")
		case '{':
			sb.WriteString("\\{")
		case '}':
			sb.WriteString("\\}")
		case '$', '&', '#', '_', '%':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '~':
			sb.WriteString("\\textasciitilde{}")
		case '^':
			sb.WriteString("\\textasciicircum{}")
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
