package qflow

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseQflowVars(t *testing.T) {
	input := `#!/bin/tcsh -f
#-------------------------------------------
# project variables for project /home/user/counter
#-------------------------------------------

set projectpath=/home/user/counter
set techdir=/usr/share/qflow/tech/osu035
set sourcedir=/home/user/counter/source
set synthdir=/home/user/counter/synthesis
set layoutdir=/home/user/counter/layout
set techname=osu035
set scriptdir=/usr/lib/qflow/scripts
set bindir=/usr/lib/qflow/bin
set synthlog=/home/user/counter/synth.log
#-------------------------------------------
`

	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}

	script, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if n := len(script.Assignments()); n != 9 {
		t.Fatalf("Expected 9 assignments, got %d", n)
	}

	path, err := script.SynthLog()
	if err != nil {
		t.Fatalf("SynthLog failed: %v", err)
	}
	if path != "/home/user/counter/synth.log" {
		t.Errorf("Expected synthlog '/home/user/counter/synth.log', got '%s'", path)
	}

	if v, _ := script.Lookup("techname"); v != "osu035" {
		t.Errorf("Expected techname 'osu035', got '%s'", v)
	}
}

func TestSynthLogLastAssignmentWins(t *testing.T) {
	input := "set synthlog=first.log\nset synthlog=second.log\n"

	path, err := SynthLogPath(strings.NewReader(input))
	if err != nil {
		t.Fatalf("SynthLogPath failed: %v", err)
	}
	if path != "second.log" {
		t.Errorf("Expected 'second.log', got '%s'", path)
	}
}

func TestSynthLogUndefined(t *testing.T) {
	inputs := map[string]string{
		"empty":       "",
		"comments":    "# set synthlog=commented.log\n",
		"other vars":  "set techname=osu050\nsetenv synthlog foo.log\n",
		"empty value": "set synthlog=\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := SynthLogPath(strings.NewReader(input))
			if !errors.Is(err, ErrSynthLogUndefined) {
				t.Errorf("Expected ErrSynthLogUndefined, got %v", err)
			}
		})
	}
}

func TestParseShellNoise(t *testing.T) {
	input := `if ( -f project_vars.sh ) then
   source project_vars.sh
endif
echo "don't panic"
set noglob
set synthlog = "/tmp/my proj/synth.log"   # trailing comment
unset noglob
`

	script, err := ParseScript(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	path, err := script.SynthLog()
	if err != nil {
		t.Fatalf("SynthLog failed: %v", err)
	}
	if path != "/tmp/my proj/synth.log" {
		t.Errorf("Expected quoted path to be unquoted, got '%s'", path)
	}
}

func TestSynthLogValueIsRestOfLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"space in path", "set synthlog=/my dir/synth.log\n", "/my dir/synth.log"},
		{"apostrophe", "set synthlog=it's.log\n", "it's.log"},
		{"semicolon kept", "set synthlog=a.log ; set other=b\n", "a.log ; set other=b"},
		{"crlf", "set synthlog=/w/synth.log\r\n", "/w/synth.log"},
		{"hash inside word", "set synthlog=/w/run#2/synth.log\n", "/w/run#2/synth.log"},
		{"single quoted", "set synthlog='/w/a b.log' # note\n", "/w/a b.log"},
		{"no trailing newline", "set synthlog=/w/x.log", "/w/x.log"},
		{"blank around equals", "set synthlog =  /w/y.log  \n", "/w/y.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := SynthLogPath(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("SynthLogPath failed: %v", err)
			}
			if path != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, path)
			}
		})
	}
}

func TestAssignmentPosition(t *testing.T) {
	script, err := ParseScript(strings.NewReader("set a=1\n\nset synthlog=syn.log\n"))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	var line int
	for _, a := range script.Assignments() {
		if a.Name == SynthLogVar {
			line = a.Pos.Line
		}
	}
	if line != 3 {
		t.Errorf("Expected synthlog on line 3, got %d", line)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ScriptName)
	if err := os.WriteFile(path, []byte("set synthlog=syn.log\n"), 0644); err != nil {
		t.Fatal(err)
	}

	parser, err := NewParser()
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	script, err := parser.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if v, _ := script.Lookup(SynthLogVar); v != "syn.log" {
		t.Errorf("Expected 'syn.log', got '%s'", v)
	}
}
