// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manuscript-engine/internal/manifest"
	"github.com/pdiddy/manuscript-engine/internal/tracker"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report chapters changed since the last build",
	Long: `Status compares every chapter the manifest lists against the build-state
index and reports each one as fresh, stale, new, or missing.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().String("book-dir", ".", "manuscript root containing book.yaml")
	statusCmd.Flags().String("tracker-dir", "build", "directory for the build-state index")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	bookDir, _ := cmd.Flags().GetString("book-dir")
	trackerDir, _ := cmd.Flags().GetString("tracker-dir")

	m, err := manifest.Load(bookDir)
	if err != nil {
		return err
	}
	paths := manifest.ChapterPaths(bookDir, m)

	tr, err := tracker.Open(trackerDir)
	if err != nil {
		return err
	}
	defer tr.Close()

	statuses, err := tr.Status(cmd.Context(), paths)
	if err != nil {
		return err
	}

	counts := map[types.ChapterState]int{}
	for _, st := range statuses {
		counts[st.State]++
		if st.State == types.ChapterMissing {
			fmt.Fprintf(os.Stdout, "%-8s %s\n", st.State, st.Path)
			continue
		}
		fmt.Fprintf(os.Stdout, "%-8s %s (%d words)\n", st.State, st.Path, st.Words)
	}

	fmt.Fprintf(os.Stdout, "\n%d fresh, %d stale, %d new, %d missing\n",
		counts[types.ChapterFresh], counts[types.ChapterStale],
		counts[types.ChapterNew], counts[types.ChapterMissing])

	if counts[types.ChapterMissing] > 0 {
		return fmt.Errorf("%d chapter(s) missing from disk", counts[types.ChapterMissing])
	}
	return nil
}
