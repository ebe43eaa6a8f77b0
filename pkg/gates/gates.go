// Package gates converts cell usage into a gate-equivalent count: the total
// cell area expressed in multiples of a reference two-input NAND.
package gates

import (
	"errors"
	"fmt"
	"sort"

	"github.com/OpenTraceLab/gatecount/pkg/liberty"
	"github.com/OpenTraceLab/gatecount/pkg/synthlog"
)

// DefaultReference is the normalization cell of the OSU libraries qflow ships.
const DefaultReference = "NAND2X1"

var (
	ErrMissingArea       = errors.New("gates: cell has no area in library")
	ErrZeroReferenceArea = errors.New("gates: reference cell has zero area")
)

// MissingAreaError names the cell whose area lookup failed.
type MissingAreaError struct {
	Cell      string
	Reference bool
}

func (e *MissingAreaError) Error() string {
	if e.Reference {
		return fmt.Sprintf("gates: reference cell %s not found in library", e.Cell)
	}
	return fmt.Sprintf("gates: cell %s used in design but not found in library", e.Cell)
}

func (e *MissingAreaError) Is(target error) bool {
	return target == ErrMissingArea
}

// Contribution is one cell type's share of the total.
type Contribution struct {
	Cell  string
	Count int
	Area  float64
	Ratio float64 // Area / reference area
	Gates float64 // Ratio * Count
}

// Breakdown computes per-cell contributions sorted by cell name.
func Breakdown(usage synthlog.CellUsage, areas liberty.CellAreas, reference string) ([]Contribution, error) {
	if reference == "" {
		reference = DefaultReference
	}
	refArea, ok := areas[reference]
	if !ok {
		return nil, &MissingAreaError{Cell: reference, Reference: true}
	}
	if refArea == 0 {
		return nil, fmt.Errorf("%w: %s", ErrZeroReferenceArea, reference)
	}

	out := make([]Contribution, 0, len(usage))
	for _, cell := range usage.Names() {
		area, ok := areas[cell]
		if !ok {
			return nil, &MissingAreaError{Cell: cell}
		}
		count := usage[cell]
		ratio := area / refArea
		out = append(out, Contribution{
			Cell:  cell,
			Count: count,
			Area:  area,
			Ratio: ratio,
			Gates: ratio * float64(count),
		})
	}
	return out, nil
}

// Count returns the gate-equivalent total of usage.
func Count(usage synthlog.CellUsage, areas liberty.CellAreas, reference string) (float64, error) {
	parts, err := Breakdown(usage, areas, reference)
	if err != nil {
		return 0, err
	}
	return Sum(parts), nil
}

// Sum adds up contributions in order.
func Sum(parts []Contribution) float64 {
	total := 0.0
	for _, p := range parts {
		total += p.Gates
	}
	return total
}

// SortByGates orders contributions largest first, ties by name.
func SortByGates(parts []Contribution) {
	sort.SliceStable(parts, func(i, j int) bool {
		if parts[i].Gates != parts[j].Gates {
			return parts[i].Gates > parts[j].Gates
		}
		return parts[i].Cell < parts[j].Cell
	})
}
