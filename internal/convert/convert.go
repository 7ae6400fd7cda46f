// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements markup-to-LaTeX conversion with pluggable
// backends. Pod chapters go through an external renderer; Markdown chapters
// are parsed by goldmark and rendered natively. The assembler never parses
// markup itself; it only calls a Converter.
package convert

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Converter renders one markup file into LaTeX on w. An error aborts the
// whole run; callers do not retry or skip.
type Converter interface {
	Convert(path string, w io.Writer) error
}

// Dispatcher routes a chapter file to a backend by extension. The pod
// backend may be nil when no external renderer is wired; converting a Pod
// file then fails.
type Dispatcher struct {
	pod      Converter
	markdown Converter
}

// NewDispatcher builds a Dispatcher over the given backends.
func NewDispatcher(pod, markdown Converter) *Dispatcher {
	return &Dispatcher{pod: pod, markdown: markdown}
}

// IsPodFile reports whether path carries a Pod file extension.
func IsPodFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pod", ".pod6", ".rakudoc":
		return true
	}
	return false
}

// Convert renders path with the backend its extension selects.
func (d *Dispatcher) Convert(path string, w io.Writer) error {
	if IsPodFile(path) {
		if d.pod == nil {
			return fmt.Errorf("no Pod renderer configured for %s", path)
		}
		return d.pod.Convert(path, w)
	}
	return d.markdown.Convert(path, w)
}
