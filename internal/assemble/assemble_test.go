// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

// scriptedConverter writes a canned body per path and fails on configured
// paths, recording call order.
type scriptedConverter struct {
	failOn map[string]bool
	calls  []string
}

func (s *scriptedConverter) Convert(path string, w io.Writer) error {
	s.calls = append(s.calls, path)
	if s.failOn[path] {
		return errors.New("conversion failed")
	}
	fmt.Fprintf(w, "BODY(%s)\n", path)
	return nil
}

func TestRunEmptyInput(t *testing.T) {
	conv := &scriptedConverter{}
	a := New(conv, Metadata{})

	var out bytes.Buffer
	if err := a.Run("a4", nil, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "\\documentclass[11pt,a4paper,oneside]{report}\n") {
		t.Errorf("output should start with the class line, got %q", got[:50])
	}
	if !strings.HasSuffix(got, "\\end{document}\n") {
		t.Error("output should end with the closing directive")
	}
	if len(conv.calls) != 0 {
		t.Errorf("converter calls = %d, want 0", len(conv.calls))
	}
	if strings.Contains(got, "BODY(") {
		t.Error("no body content expected for empty input")
	}
}

func TestRunEmitsBodiesInOrder(t *testing.T) {
	conv := &scriptedConverter{}
	a := New(conv, Metadata{})
	paths := []string{"intro.pod", "subs.pod", "ops.pod"}

	var out bytes.Buffer
	if err := a.Run("a4", paths, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := out.String()
	if n := strings.Count(got, "\\documentclass"); n != 1 {
		t.Errorf("preamble appears %d times, want 1", n)
	}
	if n := strings.Count(got, "\\end{document}"); n != 1 {
		t.Errorf("footer appears %d times, want 1", n)
	}
	if len(conv.calls) != len(paths) {
		t.Fatalf("converter invocations = %d, want %d", len(conv.calls), len(paths))
	}

	last := 0
	for _, p := range paths {
		idx := strings.Index(got, "BODY("+p+")")
		if idx < 0 {
			t.Fatalf("missing body for %s", p)
		}
		if idx < last {
			t.Errorf("body for %s out of order", p)
		}
		last = idx
	}
	if strings.Index(got, "\\tableofcontents") > strings.Index(got, "BODY(intro.pod)") {
		t.Error("table of contents must precede the first body")
	}
	if strings.Index(got, "BODY(ops.pod)") > strings.Index(got, "\\end{document}") {
		t.Error("footer must follow the last body")
	}
}

func TestRunFailFast(t *testing.T) {
	conv := &scriptedConverter{failOn: map[string]bool{"subs.pod": true}}
	a := New(conv, Metadata{})
	paths := []string{"intro.pod", "subs.pod", "ops.pod", "regex.pod"}

	var out bytes.Buffer
	err := a.Run("a4", paths, &out)
	if err == nil {
		t.Fatal("expected error when a chapter fails")
	}
	if !strings.Contains(err.Error(), "subs.pod") {
		t.Errorf("error should name the failing chapter, got: %v", err)
	}

	want := []string{"intro.pod", "subs.pod"}
	if strings.Join(conv.calls, ",") != strings.Join(want, ",") {
		t.Errorf("converter calls = %v, want %v", conv.calls, want)
	}

	// Output already written stays; the footer is never emitted.
	got := out.String()
	if !strings.Contains(got, "BODY(intro.pod)") {
		t.Error("output written before the failure should remain")
	}
	if strings.Contains(got, "\\end{document}") {
		t.Error("footer must not be emitted after a failure")
	}
}

func TestRunClassLineSubstitution(t *testing.T) {
	tests := []struct {
		size string
		want string
	}{
		{size: "a4", want: "\\documentclass[11pt,a4paper,oneside]{report}"},
		{size: "letter", want: "\\documentclass[11pt,letterpaper,oneside]{report}"},
	}
	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			var out bytes.Buffer
			a := New(&scriptedConverter{}, Metadata{})
			if err := a.Run(tt.size, nil, &out); err != nil {
				t.Fatalf("Run: %v", err)
			}
			firstLine, _, _ := strings.Cut(out.String(), "\n")
			if firstLine != tt.want {
				t.Errorf("class line = %q, want %q", firstLine, tt.want)
			}
		})
	}
}

func TestRunDeterministic(t *testing.T) {
	paths := []string{"intro.pod", "subs.pod"}

	var first, second bytes.Buffer
	if err := New(&scriptedConverter{}, Metadata{}).Run("a4", paths, &first); err != nil {
		t.Fatal(err)
	}
	if err := New(&scriptedConverter{}, Metadata{}).Run("a4", paths, &second); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two runs over the same inputs must produce byte-identical output")
	}
}

func TestRunTitleBlock(t *testing.T) {
	var out bytes.Buffer
	meta := Metadata{Title: "Using Raku", Authors: []string{"Ana", "Ben"}}
	if err := New(&scriptedConverter{}, meta).Run("a4", nil, &out); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "\\title{Using Raku}\n") {
		t.Error("title block should carry the configured title")
	}
	if !strings.Contains(got, "\\author{Ana \\and Ben}\n") {
		t.Error("authors should be joined with \\and")
	}
}

func TestDefaultMetadataFallback(t *testing.T) {
	var out bytes.Buffer
	if err := New(&scriptedConverter{}, Metadata{}).Run("a4", nil, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\\title{Using Perl 6}") {
		t.Error("empty metadata should fall back to the default title")
	}
}
