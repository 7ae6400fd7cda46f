// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manuscript-engine/internal/assemble"
	"github.com/pdiddy/manuscript-engine/internal/manifest"
	"github.com/pdiddy/manuscript-engine/internal/papersize"
	"github.com/pdiddy/manuscript-engine/internal/tracker"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the whole book from its book.yaml manifest",
	Long: `Build reads the manuscript manifest (book.yaml), assembles every listed
chapter into a single LaTeX document, and records per-chapter build state in
the tracker index so status can report stale chapters later.

The manifest's title and author list parameterize the title block. Like
assemble, the first chapter that fails conversion aborts the build.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("book-dir", ".", "manuscript root containing book.yaml")
	buildCmd.Flags().String("output", "build/book.tex", "destination for the assembled LaTeX document")
	buildCmd.Flags().String("tracker-dir", "build", "directory for the build-state index")
	buildCmd.Flags().String("backend", "auto", "conversion backend: auto, pod, or markdown")
	buildCmd.Flags().String("paper-size", "", "paper size token, bypassing host detection")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := buildFlags(cmd)

	m, err := manifest.Load(cfg.BookDir)
	if err != nil {
		return err
	}
	paths := manifest.ChapterPaths(cfg.BookDir, m)

	backend, _ := cmd.Flags().GetString("backend")
	conv, err := newConverter(types.Backend(backend), paths, types.DefaultConvertConfig())
	if err != nil {
		return err
	}

	size, _ := cmd.Flags().GetString("paper-size")
	if size == "" {
		size = viper.GetString("paper_size")
	}
	if size == "" {
		size = papersize.Resolve()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", cfg.OutputPath, err)
	}

	a := assemble.New(conv, assemble.Metadata{Title: m.Title, Authors: m.Authors})
	if err := a.Run(size, paths, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.OutputPath, err)
	}

	tr, err := tracker.Open(cfg.TrackerDir)
	if err != nil {
		return err
	}
	defer tr.Close()

	if err := tr.RecordAll(cmd.Context(), paths, os.Stdout); err != nil {
		return err
	}

	fmt.Printf("Built %s (%d chapters)\n", cfg.OutputPath, len(paths))
	return nil
}

func buildFlags(cmd *cobra.Command) types.BuildConfig {
	bookDir, _ := cmd.Flags().GetString("book-dir")
	output, _ := cmd.Flags().GetString("output")
	trackerDir, _ := cmd.Flags().GetString("tracker-dir")
	return types.BuildConfig{
		BookDir:    bookDir,
		OutputPath: output,
		TrackerDir: trackerDir,
	}
}
