package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/gatecount/pkg/liberty"
	"github.com/OpenTraceLab/gatecount/pkg/report"
)

var cellsCmd = &cobra.Command{
	Use:   "cells <liberty-file>",
	Short: "List the cell areas found in a Liberty library",
	Long: `Scan a standard-cell Liberty file the same way the report does and print
the area found for every cell. Cells whose area could not be located are
listed at the end.

Examples:
  gatecount cells osu035_stdcells.lib
  gatecount cells -v --lang pt-BR osu050_stdcells.lib`,
	Args: cobra.ExactArgs(1),
	RunE: runCells,
}

func init() {
	rootCmd.AddCommand(cellsCmd)
}

func runCells(cmd *cobra.Command, args []string) error {
	filename := args[0]

	tag, err := report.Language(lang)
	if err != nil {
		return err
	}

	lib, err := liberty.ScanFile(filename)
	if err != nil {
		return fmt.Errorf("failed to scan library: %w", err)
	}

	w := report.NewWriter(cmd.OutOrStdout(), tag)
	w.Areas(filename, lib.Areas(), lib.Dropped())
	return w.Err()
}
