// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/convert"
	"github.com/pdiddy/manuscript-engine/internal/manifest"
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Print the book outline from the manifest and chapter headings",
	Long: `Outline lists the manifest's chapters in reading order. For Markdown
chapters the headings are printed indented beneath the file; Pod chapters
are listed by filename only, since their structure belongs to the external
renderer.`,
	RunE: runOutline,
}

func init() {
	outlineCmd.Flags().String("book-dir", ".", "manuscript root containing book.yaml")

	rootCmd.AddCommand(outlineCmd)
}

func runOutline(cmd *cobra.Command, args []string) error {
	bookDir, _ := cmd.Flags().GetString("book-dir")

	m, err := manifest.Load(bookDir)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, m.Title)
	for _, path := range manifest.ChapterPaths(bookDir, m) {
		fmt.Fprintf(os.Stdout, "  %s\n", path)
		if convert.IsPodFile(path) {
			continue
		}
		headings, err := convert.Headings(path)
		if err != nil {
			return err
		}
		for _, h := range headings {
			fmt.Fprintf(os.Stdout, "  %s%s\n", strings.Repeat("  ", h.Level), h.Text)
		}
	}
	return nil
}
