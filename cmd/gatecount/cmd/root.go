package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/gatecount/internal/logger"
	"github.com/OpenTraceLab/gatecount/pkg/gates"
	"github.com/OpenTraceLab/gatecount/pkg/pipeline"
	"github.com/OpenTraceLab/gatecount/pkg/report"
)

var (
	// Global flags
	verbose   bool
	logFormat string
	lang      string

	// Report flags
	reference string
	breakdown bool
)

var errUsage = errors.New("pass the qflow_vars.sh file (or the project directory) as a parameter")

var rootCmd = &cobra.Command{
	Use:   "gatecount <qflow_vars.sh | project-dir>",
	Short: "Gate-equivalent count and maximum frequency from qflow synthesis results",
	Long: `Read a qflow project's configuration script, locate the synthesis log,
count the standard cells used by the design and express their total area as
a number of equivalent two-input NAND gates. The maximum clock frequency
found by static timing analysis is reported alongside.

Examples:
  gatecount counter/qflow_vars.sh                # Report for one project
  gatecount counter/                             # Find qflow_vars.sh under a directory
  gatecount --breakdown --reference INVX1 counter/
  gatecount --lang pt-BR counter/qflow_vars.sh   # Portuguese report
  gatecount cells /usr/share/qflow/tech/osu035/osu035_stdcells.lib`,
	Version: "1.0.0",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errUsage
		}
		return nil
	},
	PersistentPreRunE: setupLogging,
	RunE:              runReport,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gatecount:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format on stderr (text or json)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "",
		"report language (en, pt-BR); defaults to English")

	rootCmd.Flags().StringVar(&reference, "reference", gates.DefaultReference,
		"cell used as one gate equivalent")
	rootCmd.Flags().BoolVarP(&breakdown, "breakdown", "b", false,
		"show gate equivalents per cell type")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	cfg := logger.DefaultConfig()
	cfg.Format = logFormat
	cfg.Output = cmd.ErrOrStderr()
	if verbose {
		cfg.Level = slog.LevelDebug
	}
	return logger.Init(cfg)
}

func runReport(cmd *cobra.Command, args []string) error {
	tag, err := report.Language(lang)
	if err != nil {
		return err
	}

	opts := pipeline.DefaultOptions()
	opts.Config = args[0]
	opts.Reference = reference
	opts.Breakdown = breakdown
	opts.Language = tag

	_, err = pipeline.Run(opts, cmd.OutOrStdout())
	return err
}
