package liberty

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const osuLib = `library (osu035_stdcells) {
  delay_model : table_lookup ;
  time_unit : "1ns" ;

cell (AND2X2) {
  area : 96 ;
  cell_footprint : and2 ;
  pin (A) {
    direction : input ;
  }
}

cell (INVX1) { area : 32
  cell_footprint : inv ;
}

cell (NAND2X1) {
  area : 48 ;
}

cell (DFFPOSX1) {
  area : 192.5 ;
  ff (DS0000,P0000) {
    next_state : "D" ;
  }
}
}
`

func TestScanBothLayouts(t *testing.T) {
	areas, err := Scan(strings.NewReader(osuLib))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := CellAreas{
		"AND2X2":   96,
		"INVX1":    32,
		"NAND2X1":  48,
		"DFFPOSX1": 192.5,
	}
	if !reflect.DeepEqual(areas, want) {
		t.Errorf("Expected %v, got %v", want, areas)
	}
	if got := strings.Join(areas.Names(), ","); got != "AND2X2,DFFPOSX1,INVX1,NAND2X1" {
		t.Errorf("Unexpected order: %s", got)
	}
}

func TestScanInlineOnly(t *testing.T) {
	input := "cell (INVX1) { area : 2\ncell (NAND2X1) { area : 1\n"

	areas, err := Scan(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if areas["INVX1"] != 2 || areas["NAND2X1"] != 1 {
		t.Errorf("Unexpected areas: %v", areas)
	}
}

func TestScanAreaOnFollowingLine(t *testing.T) {
	input := `cell (BUFX2) {
  /* comment without numbers */

  area : 40 ;
}
`
	areas, err := Scan(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if areas["BUFX2"] != 40 {
		t.Errorf("Expected BUFX2 area 40, got %v", areas)
	}
}

func TestInlineWhilePending(t *testing.T) {
	input := `cell (A) {
cell (B) { area : 5
  area : 7
`
	s := NewScanner()
	for _, line := range strings.Split(input, "\n") {
		if err := s.Feed(line); err != nil {
			t.Fatalf("Feed failed: %v", err)
		}
	}
	s.Finish()

	if s.Areas()["B"] != 5 {
		t.Errorf("Expected inline B area 5, got %v", s.Areas()["B"])
	}
	if s.Areas()["A"] != 7 {
		t.Errorf("Expected pending A to pick up 7, got %v", s.Areas()["A"])
	}
	if len(s.Dropped()) != 0 {
		t.Errorf("Expected no dropped cells, got %v", s.Dropped())
	}
}

func TestPendingReplacedByNewDeclaration(t *testing.T) {
	input := `cell (LOST) {
cell (NAND2X1) {
  area : 3
`
	s := NewScanner()
	for _, line := range strings.Split(input, "\n") {
		if err := s.Feed(line); err != nil {
			t.Fatalf("Feed failed: %v", err)
		}
	}
	s.Finish()

	areas := s.Areas()
	if _, ok := areas["LOST"]; ok {
		t.Errorf("LOST should have no area, got %v", areas["LOST"])
	}
	if areas["NAND2X1"] != 3 {
		t.Errorf("Expected NAND2X1 area 3, got %v", areas["NAND2X1"])
	}
	if !reflect.DeepEqual(s.Dropped(), []string{"LOST"}) {
		t.Errorf("Expected [LOST] dropped, got %v", s.Dropped())
	}
}

func TestPendingAtEndOfInput(t *testing.T) {
	s := NewScanner()
	if err := s.Feed("cell (TAIL) {"); err != nil {
		t.Fatal(err)
	}
	if s.state != statePending {
		t.Fatalf("Expected pending state, got %s", s.state)
	}
	s.Finish()

	if s.state != stateIdle {
		t.Errorf("Expected idle state after Finish, got %s", s.state)
	}
	if !reflect.DeepEqual(s.Dropped(), []string{"TAIL"}) {
		t.Errorf("Expected [TAIL] dropped, got %v", s.Dropped())
	}
}

func TestEmptyInlineAreaFallsBackToNextLine(t *testing.T) {
	areas, err := Scan(strings.NewReader("cell (X) { area : \n 12\n"))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if areas["X"] != 12 {
		t.Errorf("Expected X area 12, got %v", areas)
	}
}

func TestQuotedCellName(t *testing.T) {
	areas, err := Scan(strings.NewReader(`cell ("OR2X1") { area : 4` + "\n"))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if areas["OR2X1"] != 4 {
		t.Errorf("Expected OR2X1 area 4, got %v", areas)
	}
}

func TestScanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "osu035_stdcells.lib")
	if err := os.WriteFile(path, []byte(osuLib), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := ScanFile(path)
	if err != nil {
		t.Fatalf("ScanFile failed: %v", err)
	}
	if len(s.Areas()) != 4 {
		t.Errorf("Expected 4 cells, got %d", len(s.Areas()))
	}

	if _, err := ScanFile(filepath.Join(t.TempDir(), "none.lib")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}
