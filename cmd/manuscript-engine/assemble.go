// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manuscript-engine/internal/assemble"
	"github.com/pdiddy/manuscript-engine/internal/papersize"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble [files...]",
	Short: "Assemble markup files into a LaTeX document on stdout",
	Long: `Assemble emits a complete LaTeX document to standard output: the fixed
preamble parameterized by the resolved paper size, the converted body of
each input file in argument order, and the closing directive.

Paper size comes from paperconf, then the PAPERSIZE environment variable,
then the literal "a4". With no input files the preamble and footer are
still emitted. The first file that fails to convert aborts the run; files
after it are not touched.`,
	RunE: runAssemble,
}

func init() {
	assembleCmd.Flags().String("backend", "auto", "conversion backend: auto, pod, or markdown")
	assembleCmd.Flags().String("paper-size", "", "paper size token, bypassing host detection (e.g. a4, letter)")

	rootCmd.AddCommand(assembleCmd)
}

func runAssemble(cmd *cobra.Command, args []string) error {
	backend, _ := cmd.Flags().GetString("backend")
	size, _ := cmd.Flags().GetString("paper-size")
	if size == "" {
		size = viper.GetString("paper_size")
	}
	if size == "" {
		size = papersize.Resolve()
	}

	conv, err := newConverter(types.Backend(backend), args, types.DefaultConvertConfig())
	if err != nil {
		return err
	}

	a := assemble.New(conv, assemble.Metadata{})
	return a.Run(size, args, os.Stdout)
}
