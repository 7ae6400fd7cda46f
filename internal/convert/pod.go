// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/manuscript-engine/internal/toolchain"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// PodConverter renders Pod chapters through an external Pod-to-LaTeX
// renderer. It depends on a toolchain.Renderer (raku or perl6) injected at
// construction time.
type PodConverter struct {
	renderer toolchain.Renderer
	opts     toolchain.RenderOptions
}

// NewPodConverter creates a converter over the given renderer. It verifies
// that the renderer is operational before returning.
func NewPodConverter(r toolchain.Renderer, cfg types.ConvertConfig) (*PodConverter, error) {
	if !r.Available() {
		return nil, fmt.Errorf("pod renderer %s not available", r.Name())
	}
	return &PodConverter{
		renderer: r,
		opts: toolchain.RenderOptions{
			AcceptTargets:   cfg.AcceptTargets,
			VerbatimLiteral: cfg.VerbatimLiteral,
		},
	}, nil
}

// Convert renders the Pod file at path to LaTeX on w. A missing file or a
// renderer failure is returned as-is; there is no fallback.
func (p *PodConverter) Convert(path string, w io.Writer) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("opening chapter %s: %w", path, err)
	}
	return p.renderer.Render(path, p.opts, w)
}
