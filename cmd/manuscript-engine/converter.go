// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/pdiddy/manuscript-engine/internal/convert"
	"github.com/pdiddy/manuscript-engine/internal/toolchain"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// newConverter builds the chapter converter for the selected backend. The
// external Pod renderer is only detected when a Pod chapter will actually
// need it, so pure-Markdown manuscripts build on hosts without raku.
func newConverter(backend types.Backend, paths []string, cfg types.ConvertConfig) (convert.Converter, error) {
	markdown := convert.NewMarkdownConverter(cfg)

	switch backend {
	case types.BackendMarkdown:
		return markdown, nil

	case types.BackendPod:
		pod, err := newPodConverter(cfg)
		if err != nil {
			return nil, err
		}
		return pod, nil

	case types.BackendAuto:
		if !anyPodFile(paths) {
			return convert.NewDispatcher(nil, markdown), nil
		}
		pod, err := newPodConverter(cfg)
		if err != nil {
			return nil, err
		}
		return convert.NewDispatcher(pod, markdown), nil

	default:
		return nil, fmt.Errorf("unknown backend %q (want auto, pod, or markdown)", backend)
	}
}

func newPodConverter(cfg types.ConvertConfig) (convert.Converter, error) {
	r, err := toolchain.DetectRenderer()
	if err != nil {
		return nil, err
	}
	return convert.NewPodConverter(r, cfg)
}

func anyPodFile(paths []string) bool {
	for _, p := range paths {
		if convert.IsPodFile(p) {
			return true
		}
	}
	return false
}
