// Package pipeline runs the four gatecount stages in order: configuration
// script, synthesis log, cell library, aggregation.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/language"

	"github.com/OpenTraceLab/gatecount/internal/logger"
	"github.com/OpenTraceLab/gatecount/pkg/gates"
	"github.com/OpenTraceLab/gatecount/pkg/liberty"
	"github.com/OpenTraceLab/gatecount/pkg/qflow"
	"github.com/OpenTraceLab/gatecount/pkg/report"
	"github.com/OpenTraceLab/gatecount/pkg/synthlog"
)

// Options controls a run.
type Options struct {
	// Config is a qflow_vars.sh path or a project directory.
	Config string

	// Reference is the normalization cell.
	Reference string

	// Breakdown prints per-cell gate equivalents before the total.
	Breakdown bool

	Language language.Tag
}

// DefaultOptions returns options for the OSU libraries with English output.
func DefaultOptions() Options {
	return Options{
		Reference: gates.DefaultReference,
		Language:  language.English,
	}
}

// Result holds everything a run extracted.
type Result struct {
	ScriptPath    string
	SynthLogPath  string
	Synth         *synthlog.Result
	LibraryPath   string
	Areas         liberty.CellAreas
	Dropped       []string
	Contributions []gates.Contribution
	Gates         float64
}

// Run executes the pipeline and prints the report to out. Diagnostic lines
// are written as each file is located, so a failing run still shows how far
// it got.
func Run(opts Options, out io.Writer) (*Result, error) {
	if opts.Reference == "" {
		opts.Reference = gates.DefaultReference
	}
	w := report.NewWriter(out, opts.Language)
	log := logger.ForComponent("pipeline")
	res := &Result{}

	script, err := qflow.ResolveScript(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("configuration script: %w", err)
	}
	res.ScriptPath = script
	log.Debug("using configuration script", "path", script)

	parser, err := qflow.NewParser()
	if err != nil {
		return nil, err
	}
	vars, err := parser.ParseFile(script)
	if err != nil {
		return nil, fmt.Errorf("configuration script %s: %w", script, err)
	}
	synthPath, err := vars.SynthLog()
	if err != nil {
		return nil, fmt.Errorf("configuration script %s: %w", script, err)
	}
	res.SynthLogPath = resolvePath(synthPath, filepath.Dir(script))
	w.SynthLog(res.SynthLogPath)

	res.Synth, err = synthlog.ScanFile(res.SynthLogPath)
	if err != nil {
		return nil, fmt.Errorf("synthesis log: %w", err)
	}
	libPath, err := res.Synth.Library()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", res.SynthLogPath, err)
	}
	res.LibraryPath = resolvePath(libPath, filepath.Dir(res.SynthLogPath))
	w.Library(res.LibraryPath)
	w.Usage(res.Synth.Usage)

	lib, err := liberty.ScanFile(res.LibraryPath)
	if err != nil {
		return nil, fmt.Errorf("cell library: %w", err)
	}
	res.Areas = lib.Areas()
	res.Dropped = lib.Dropped()

	res.Contributions, err = gates.Breakdown(res.Synth.Usage, res.Areas, opts.Reference)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", res.LibraryPath, err)
	}
	res.Gates = gates.Sum(res.Contributions)
	log.Debug("aggregated", "cell_types", len(res.Contributions), "gates", res.Gates)

	if opts.Breakdown {
		rows := append([]gates.Contribution(nil), res.Contributions...)
		gates.SortByGates(rows)
		w.Breakdown(rows, opts.Reference)
	}
	w.Summary(res.Gates, res.Synth.MaxFreq)

	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return res, nil
}

// resolvePath keeps paths that exist relative to the working directory and
// otherwise tries them relative to base, the directory of the file that
// named them.
func resolvePath(path, base string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil || !errors.Is(err, os.ErrNotExist) {
		return path
	}
	alt := filepath.Join(base, path)
	if _, err := os.Stat(alt); err == nil {
		return alt
	}
	return path
}
