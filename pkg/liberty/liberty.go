// Package liberty extracts cell areas from Liberty (.lib) standard-cell
// libraries.
//
// Only the two layouts qflow's technology files use are recognised:
//
//	cell (INVX1) { area : 2
//
// with the area inline, and
//
//	cell (NAND2X1) {
//	  area : 3
//
// with the area on a following line. The scanner is line oriented and does
// not attempt to parse the full Liberty grammar.
package liberty

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/gatecount/internal/logger"
	"github.com/OpenTraceLab/gatecount/pkg/textio"
)

var (
	inlineCellRe = regexp.MustCompile(`cell \((.*)\) \{ area : (\d+(?:\.\d+)?)`)
	cellRe       = regexp.MustCompile(`cell \((.*)\)`)
	numberRe     = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
)

// CellAreas maps a cell type to its area.
type CellAreas map[string]float64

// Names returns the cell types in sorted order.
func (a CellAreas) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type scanState int

const (
	stateIdle scanState = iota
	statePending
)

func (s scanState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case statePending:
		return "pending"
	}
	return fmt.Sprintf("scanState(%d)", int(s))
}

// Scanner consumes a library one line at a time. It holds at most one cell
// whose area has not been seen yet.
type Scanner struct {
	areas   CellAreas
	state   scanState
	pending string
	dropped []string
	log     *slog.Logger
}

func NewScanner() *Scanner {
	return &Scanner{
		areas: make(CellAreas),
		log:   logger.ForComponent("liberty"),
	}
}

// Feed advances the scanner by one line.
func (s *Scanner) Feed(line string) error {
	if m := inlineCellRe.FindStringSubmatch(line); m != nil {
		area, err := parseArea(m[2])
		if err != nil {
			return fmt.Errorf("cell %s: %w", m[1], err)
		}
		s.areas[cellName(m[1])] = area
		return nil
	}

	switch s.state {
	case statePending:
		if m := cellRe.FindStringSubmatch(line); m != nil {
			s.drop(s.pending)
			s.pending = cellName(m[1])
			return nil
		}
		if m := numberRe.FindStringSubmatch(line); m != nil {
			area, err := parseArea(m[1])
			if err != nil {
				return fmt.Errorf("cell %s: %w", s.pending, err)
			}
			s.areas[s.pending] = area
			s.pending = ""
			s.state = stateIdle
		}
	case stateIdle:
		if m := cellRe.FindStringSubmatch(line); m != nil {
			s.pending = cellName(m[1])
			s.state = statePending
		}
	}
	return nil
}

// Finish marks the end of input. A cell still waiting for its area is
// reported as dropped.
func (s *Scanner) Finish() {
	if s.state == statePending {
		s.drop(s.pending)
		s.pending = ""
		s.state = stateIdle
	}
}

func (s *Scanner) drop(cell string) {
	s.log.Warn("cell declared without area", "cell", cell)
	s.dropped = append(s.dropped, cell)
}

// Areas returns the cells scanned so far.
func (s *Scanner) Areas() CellAreas { return s.areas }

// Dropped lists cells whose area was never found, in the order they were
// abandoned.
func (s *Scanner) Dropped() []string { return s.dropped }

// ScanLines feeds every line from sc and calls Finish.
func (s *Scanner) ScanLines(sc *textio.LineScanner) error {
	for sc.Scan() {
		if err := s.Feed(sc.Text()); err != nil {
			return sc.Errorf("%w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	s.Finish()
	s.log.Debug("scanned library", "cells", len(s.areas), "dropped", len(s.dropped))
	return nil
}

// Scan reads a whole library from r.
func Scan(r io.Reader) (CellAreas, error) {
	s := NewScanner()
	if err := s.ScanLines(textio.NewLineScanner("", r)); err != nil {
		return nil, err
	}
	return s.Areas(), nil
}

// ScanFile opens and scans the library at path.
func ScanFile(path string) (*Scanner, error) {
	f, err := textio.Open(path)
	if err != nil {
		return nil, err
	}
	s := NewScanner()
	if err := s.ScanLines(f.Lines()); err != nil {
		return nil, err
	}
	return s, nil
}

func parseArea(text string) (float64, error) {
	area, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid area %q: %w", text, err)
	}
	return area, nil
}

func cellName(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), `"`)
}
