// Package synthlog scrapes the results qflow's synthesis step writes to
// synth.log: per-cell usage reported by ABC, the Liberty file used for
// mapping, and the maximum clock frequency from static timing analysis.
package synthlog

import (
	"errors"
	"io"
	"regexp"
	"strconv"

	"github.com/OpenTraceLab/gatecount/internal/logger"
	"github.com/OpenTraceLab/gatecount/pkg/textio"
)

// Values used when the log carries no timing report.
const (
	FreqNotDefined = "NOT DEFINED"
	FreqHelp       = `Run "qflow sta <project_name>" to obtain timing results`
)

// ErrNoLibrary is returned by Result.Library when no library line was seen.
var ErrNoLibrary = errors.New("synthlog: no Library declaration in synthesis log")

var (
	cellUsageRe = regexp.MustCompile(`ABC RESULTS.*:\s*([A-Z]+.*) cells.*:\s*(\d+)`)
	libraryRe   = regexp.MustCompile(`Library.*"(.*)"`)
	maxFreqRe   = regexp.MustCompile(`.*maximum clock frequency.* (\d+\.?\d*) (.*)`)
)

// CellUsage maps a cell type to its instance count.
type CellUsage map[string]int

// Names returns the cell types in sorted order.
func (u CellUsage) Names() []string {
	return sortedKeys(u)
}

// Total is the number of cell instances.
func (u CellUsage) Total() int {
	total := 0
	for _, n := range u {
		total += n
	}
	return total
}

// MaxFrequency is the scraped frequency. Value and Unit are kept as text
// so the fallback can carry guidance instead of a number.
type MaxFrequency struct {
	Value string
	Unit  string
}

// Defined reports whether a timing report line was found.
func (f MaxFrequency) Defined() bool {
	return f.Value != FreqNotDefined
}

func (f MaxFrequency) String() string {
	return f.Value + " " + f.Unit
}

// Result is everything scraped from one synthesis log.
type Result struct {
	Usage       CellUsage
	LibraryPath string
	MaxFreq     MaxFrequency
}

// Library returns the Liberty path, or ErrNoLibrary.
func (r *Result) Library() (string, error) {
	if r.LibraryPath == "" {
		return "", ErrNoLibrary
	}
	return r.LibraryPath, nil
}

// Scan reads a synthesis log. Every line is tested against all three
// patterns; later matches overwrite earlier ones.
func Scan(r io.Reader) (*Result, error) {
	return scan(textio.NewLineScanner("", r))
}

// ScanFile opens and scans the synthesis log at path.
func ScanFile(path string) (*Result, error) {
	f, err := textio.Open(path)
	if err != nil {
		return nil, err
	}
	if f.Encoding != textio.EncodingUTF8 {
		logger.ForComponent("synthlog").Debug("transcoding synthesis log", "path", path, "encoding", f.Encoding)
	}
	return scan(f.Lines())
}

func scan(sc *textio.LineScanner) (*Result, error) {
	usage := make(CellUsage)
	library := ""
	freq := MaxFrequency{Value: FreqNotDefined, Unit: FreqHelp}

	for sc.Scan() {
		line := sc.Text()

		if m := cellUsageRe.FindStringSubmatch(line); m != nil {
			count, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, sc.Errorf("cell count for %s: %w", m[1], err)
			}
			usage[m[1]] = count
		}

		if m := libraryRe.FindStringSubmatch(line); m != nil {
			library = m[1]
		}

		if m := maxFreqRe.FindStringSubmatch(line); m != nil {
			freq = MaxFrequency{Value: m[1], Unit: m[2]}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	logger.ForComponent("synthlog").Debug("scanned synthesis log",
		"cell_types", len(usage), "library", library, "max_freq", freq.Defined())

	return &Result{Usage: usage, LibraryPath: library, MaxFreq: freq}, nil
}
