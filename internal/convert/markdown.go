// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// chapterMeta is the YAML frontmatter a Markdown chapter may carry. It is
// stripped before rendering so it never leaks into the LaTeX stream.
type chapterMeta struct {
	Title string `yaml:"title"`
	Draft bool   `yaml:"draft"`
}

// MarkdownConverter renders Markdown chapters to LaTeX. Parsing is delegated
// to goldmark; this package only renders the resulting AST. Markdown code
// blocks are literal by construction, so the VerbatimLiteral option only
// changes behavior in the Pod backend.
type MarkdownConverter struct {
	md goldmark.Markdown
}

// NewMarkdownConverter builds a converter honoring the accept-target list in cfg.
func NewMarkdownConverter(cfg types.ConvertConfig) *MarkdownConverter {
	r := renderer.NewRenderer(
		renderer.WithNodeRenderers(
			util.Prioritized(newLatexRenderer(cfg.AcceptTargets), 1000),
		),
	)
	return &MarkdownConverter{md: goldmark.New(goldmark.WithRenderer(r))}
}

// Convert reads the Markdown file at path, strips any YAML frontmatter, and
// writes the rendered LaTeX to w.
func (m *MarkdownConverter) Convert(path string, w io.Writer) error {
	body, err := readChapter(path)
	if err != nil {
		return err
	}
	if err := m.md.Convert(body, w); err != nil {
		return fmt.Errorf("converting %s: %w", path, err)
	}
	return nil
}

// readChapter opens a Markdown chapter and returns its body with any YAML
// frontmatter removed.
func readChapter(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chapter %s: %w", path, err)
	}
	defer f.Close()

	var meta chapterMeta
	body, err := frontmatter.Parse(f, &meta)
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter in %s: %w", path, err)
	}
	return body, nil
}

// Heading is one outline entry extracted from a Markdown chapter.
type Heading struct {
	Level int
	Text  string
}

// Headings parses the Markdown file at path and returns its headings in
// document order.
func Headings(path string) ([]Heading, error) {
	body, err := readChapter(path)
	if err != nil {
		return nil, err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(body))
	var out []Heading
	walkErr := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			out = append(out, Heading{Level: h.Level, Text: headingText(h, body)})
		}
		return ast.WalkContinue, nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

// headingText collects a heading's literal text from its inline children.
func headingText(h *ast.Heading, source []byte) string {
	var sb strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, source, &sb)
	}
	return sb.String()
}

func collectText(n ast.Node, source []byte, sb *strings.Builder) {
	switch t := n.(type) {
	case *ast.Text:
		sb.Write(t.Segment.Value(source))
	case *ast.String:
		sb.Write(t.Value)
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			collectText(c, source, sb)
		}
	}
}
