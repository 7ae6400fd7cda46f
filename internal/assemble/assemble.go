// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble emits a complete LaTeX document onto one output stream:
// a fixed preamble, one converted body per chapter file in argument order,
// and a fixed footer. The output is a pure function of the inputs and the
// resolved paper size; two runs over the same inputs are byte-identical.
package assemble

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/manuscript-engine/internal/convert"
	"github.com/pdiddy/manuscript-engine/internal/papersize"
)

// Metadata parameterizes the title block of the preamble.
type Metadata struct {
	Title   string
	Authors []string
}

// DefaultMetadata returns the title block the book has always shipped with.
func DefaultMetadata() Metadata {
	return Metadata{
		Title:   "Using Perl 6",
		Authors: []string{"The Perl 6 Community"},
	}
}

// Assembler orchestrates document emission. All markup parsing is delegated
// to the injected Converter.
type Assembler struct {
	conv convert.Converter
	meta Metadata
}

// New builds an Assembler over the given converter. Empty metadata fields
// fall back to the defaults.
func New(conv convert.Converter, meta Metadata) *Assembler {
	def := DefaultMetadata()
	if meta.Title == "" {
		meta.Title = def.Title
	}
	if len(meta.Authors) == 0 {
		meta.Authors = def.Authors
	}
	return &Assembler{conv: conv, meta: meta}
}

// Run writes the preamble, converts each chapter in the order given, and
// writes the footer. The first chapter that fails aborts the run: chapters
// after it are never touched, and output already written stays on the
// stream. With no chapters the preamble and footer are still emitted.
func (a *Assembler) Run(paperSize string, paths []string, w io.Writer) error {
	fmt.Fprintf(w, classLineFormat, papersize.ClassOption(paperSize))
	io.WriteString(w, setupBlock)
	fmt.Fprintf(w, "\\title{%s}\n", a.meta.Title)
	fmt.Fprintf(w, "\\author{%s}\n", strings.Join(a.meta.Authors, " \\and "))
	io.WriteString(w, tocBlock)

	for _, path := range paths {
		if err := a.conv.Convert(path, w); err != nil {
			return fmt.Errorf("assembling %s: %w", path, err)
		}
	}

	io.WriteString(w, footer)
	return nil
}
