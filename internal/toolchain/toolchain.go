// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain implements Pod renderer detection and execution.
//
// The renderer is an external binary that parses a Pod chapter and writes
// LaTeX on stdout. Both raku and perl6 expose the same --doc interface;
// raku is preferred when both are installed.
package toolchain

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	binRaku  = "raku"
	binPerl6 = "perl6"

	docFlag = "--doc=LaTeX"
)

// RenderOptions carries the fixed conversion options through to the renderer
// process environment.
type RenderOptions struct {
	// AcceptTargets lists alternate-output target names rendered as plain
	// text (exported as POD_ACCEPT_TARGETS, comma separated).
	AcceptTargets []string

	// VerbatimLiteral keeps code blocks literal instead of re-parsing
	// nested formatting codes (exported as POD_CODES_IN_VERBATIM=0).
	VerbatimLiteral bool
}

// environ returns the extra environment entries for a render invocation.
func (o RenderOptions) environ() []string {
	env := []string{}
	if len(o.AcceptTargets) > 0 {
		env = append(env, "POD_ACCEPT_TARGETS="+strings.Join(o.AcceptTargets, ","))
	}
	if o.VerbatimLiteral {
		env = append(env, "POD_CODES_IN_VERBATIM=0")
	} else {
		env = append(env, "POD_CODES_IN_VERBATIM=1")
	}
	return env
}

// Renderer runs an external Pod-to-LaTeX renderer.
type Renderer interface {
	// Name returns the renderer binary name ("raku" or "perl6").
	Name() string

	// Available reports whether the binary exists on PATH and responds
	// to a version query.
	Available() bool

	// Render parses the Pod file at path and writes LaTeX to stdout.
	Render(path string, opts RenderOptions, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunRedirected(name string, args, extraEnv []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunRedirected(name string, args, extraEnv []string, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), extraEnv...)
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// renderer implements Renderer for a specific binary. raku and perl6 share
// the same invocation; they differ only in binary name.
type renderer struct {
	bin  string
	exec executor
}

func (r *renderer) Name() string { return r.bin }

func (r *renderer) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "--version") == nil
}

func (r *renderer) Render(path string, opts RenderOptions, stdout io.Writer) error {
	args := []string{docFlag, path}
	if err := r.exec.RunRedirected(r.bin, args, opts.environ(), stdout); err != nil {
		return fmt.Errorf("rendering %s with %s: %w", path, r.bin, err)
	}
	return nil
}

func newRakuRenderer(exec executor) *renderer {
	return &renderer{bin: binRaku, exec: exec}
}

func newPerl6Renderer(exec executor) *renderer {
	return &renderer{bin: binPerl6, exec: exec}
}

var defaultExec = &osExecutor{}

// DetectRenderer tries raku first, falls back to perl6. Returns an error
// if neither binary is available.
func DetectRenderer() (Renderer, error) {
	return detectRenderer(defaultExec)
}

func detectRenderer(exec executor) (Renderer, error) {
	raku := newRakuRenderer(exec)
	if raku.Available() {
		return raku, nil
	}

	perl6 := newPerl6Renderer(exec)
	if perl6.Available() {
		return perl6, nil
	}

	return nil, fmt.Errorf(
		"no Pod renderer available: neither %s nor %s found or operational",
		binRaku, binPerl6,
	)
}
