// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolchain

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	redirected    func(name string, args, extraEnv []string, stdout io.Writer) error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunRedirected(name string, args, extraEnv []string, stdout io.Writer) error {
	if m.redirected != nil {
		return m.redirected(name, args, extraEnv, stdout)
	}
	return nil
}

func TestDetectRenderer(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "raku available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"raku": true},
				runnableCmds:  map[string]bool{"raku --version": true},
			},
			wantName: "raku",
		},
		{
			name: "perl6 fallback when raku missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"perl6": true},
				runnableCmds:  map[string]bool{"perl6 --version": true},
			},
			wantName: "perl6",
		},
		{
			name: "raku on PATH but version check fails, perl6 works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"raku": true, "perl6": true},
				runnableCmds:  map[string]bool{"perl6 --version": true},
			},
			wantName: "perl6",
		},
		{
			name: "both available, raku preferred",
			exec: &mockExecutor{
				availableBins: map[string]bool{"raku": true, "perl6": true},
				runnableCmds:  map[string]bool{"raku --version": true, "perl6 --version": true},
			},
			wantName: "raku",
		},
		{
			name: "neither available",
			exec: &mockExecutor{
				availableBins: map[string]bool{},
				runnableCmds:  map[string]bool{},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := detectRenderer(tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "no Pod renderer available") {
					t.Errorf("error should mention no renderer available, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Name() != tt.wantName {
				t.Errorf("got renderer %q, want %q", r.Name(), tt.wantName)
			}
		})
	}
}

func TestRender(t *testing.T) {
	var gotName string
	var gotArgs, gotEnv []string
	exec := &mockExecutor{
		redirected: func(name string, args, extraEnv []string, stdout io.Writer) error {
			gotName = name
			gotArgs = args
			gotEnv = extraEnv
			io.WriteString(stdout, "\\chapter{Intro}\n")
			return nil
		},
	}

	r := newRakuRenderer(exec)
	opts := RenderOptions{
		AcceptTargets:   []string{"latex"},
		VerbatimLiteral: true,
	}

	var out bytes.Buffer
	if err := r.Render("src/intro.pod", opts, &out); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if gotName != "raku" {
		t.Errorf("binary = %q, want raku", gotName)
	}
	wantArgs := []string{"--doc=LaTeX", "src/intro.pod"}
	if strings.Join(gotArgs, " ") != strings.Join(wantArgs, " ") {
		t.Errorf("args = %v, want %v", gotArgs, wantArgs)
	}
	env := strings.Join(gotEnv, " ")
	if !strings.Contains(env, "POD_ACCEPT_TARGETS=latex") {
		t.Errorf("env %q should carry accept targets", env)
	}
	if !strings.Contains(env, "POD_CODES_IN_VERBATIM=0") {
		t.Errorf("env %q should disable codes in verbatim", env)
	}
	if out.String() != "\\chapter{Intro}\n" {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestRenderFailure(t *testing.T) {
	exec := &mockExecutor{
		redirected: func(name string, args, extraEnv []string, stdout io.Writer) error {
			return errors.New("exit status 1")
		},
	}

	r := newPerl6Renderer(exec)
	var out bytes.Buffer
	err := r.Render("bad.pod", RenderOptions{}, &out)
	if err == nil {
		t.Fatal("expected error for failed render")
	}
	if !strings.Contains(err.Error(), "bad.pod") {
		t.Errorf("error should name the file, got: %v", err)
	}
}

func TestRenderOptionsEnviron(t *testing.T) {
	opts := RenderOptions{AcceptTargets: []string{"latex", "html"}}
	env := strings.Join(opts.environ(), " ")
	if !strings.Contains(env, "POD_ACCEPT_TARGETS=latex,html") {
		t.Errorf("environ = %q, want comma-joined targets", env)
	}
	if !strings.Contains(env, "POD_CODES_IN_VERBATIM=1") {
		t.Errorf("environ = %q, want codes in verbatim enabled", env)
	}
}
