// Package report prints synthesis results as plain text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/OpenTraceLab/gatecount/pkg/gates"
	"github.com/OpenTraceLab/gatecount/pkg/liberty"
	"github.com/OpenTraceLab/gatecount/pkg/synthlog"
)

// Writer renders report sections. Counts are passed to the printer as
// strings so the output never picks up locale digit grouping. The first
// write error is kept and returned by Err; later writes become no-ops.
type Writer struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func NewWriter(w io.Writer, tag language.Tag) *Writer {
	return &Writer{w: w, p: message.NewPrinter(tag, message.Catalog(messages))}
}

func (w *Writer) printf(key message.Reference, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = w.p.Fprintf(w.w, key, args...)
}

func (w *Writer) newline() {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintln(w.w)
}

// Err returns the first write error.
func (w *Writer) Err() error { return w.err }

// SynthLog announces the synthesis log located from the configuration.
func (w *Writer) SynthLog(path string) { w.printf(msgSynthLog, path) }

// Library announces the cell library named in the synthesis log.
func (w *Writer) Library(path string) { w.printf(msgLibrary, path) }

// Usage lists cell types and instance counts, sorted by name, followed by
// the number of instances.
func (w *Writer) Usage(usage synthlog.CellUsage) {
	w.newline()
	w.printf(msgUsageHeader)
	for _, cell := range usage.Names() {
		w.printf("\t%s: %s\n", cell, strconv.Itoa(usage[cell]))
	}
	w.printf(msgUsageTotal, strconv.Itoa(usage.Total()))
}

// Breakdown lists each cell type's gate equivalents in the order given.
func (w *Writer) Breakdown(parts []gates.Contribution, reference string) {
	w.newline()
	w.printf(msgBreakdown, reference)
	for _, c := range parts {
		w.printf("\t%-12s %6s x %8s = %s\n", c.Cell, strconv.Itoa(c.Count), FormatNumber(c.Ratio), FormatNumber(c.Gates))
	}
}

// Summary prints the gate-equivalent total and the maximum frequency.
func (w *Writer) Summary(total float64, freq synthlog.MaxFrequency) {
	w.newline()
	w.printf(msgGates, FormatNumber(total))
	if freq.Defined() {
		w.printf(msgMaxFreq, freq.Value, freq.Unit)
		return
	}
	w.printf(msgMaxFreq, w.p.Sprintf(freq.Value), w.p.Sprintf(freq.Unit))
}

// Areas lists a library's cell areas.
func (w *Writer) Areas(path string, areas liberty.CellAreas, dropped []string) {
	w.printf(msgAreasHeader, path, strconv.Itoa(len(areas)))
	for _, cell := range areas.Names() {
		w.printf("\t%s: %s\n", cell, FormatNumber(areas[cell]))
	}
	if len(dropped) > 0 {
		w.newline()
		w.printf(msgDropped, strings.Join(dropped, ", "))
	}
}

// FormatNumber prints f with 12 significant digits, the way qflow's Python
// helper printed floats, and always keeps a fractional part or exponent so
// whole numbers read "20.0".
func FormatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'g', 12, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}
