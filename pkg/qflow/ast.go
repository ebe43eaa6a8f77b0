package qflow

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Script is a parsed variable script.
type Script struct {
	Lines []*Line `( @@ | EOL )*`
}

// Line is one statement; a line may hold several assignments
// (e.g. "if ($x) set synthlog=a").
type Line struct {
	Items []*Item `@@+`
}

// Item is either an assignment or any other token.
type Item struct {
	Set   *Assignment `  @@`
	Token string      `| @( KwSet | Word | String | Assign | Stray )`
}

// Assignment is a "set name=value" directive.
// Example: set synthlog=/home/user/proj/log/synth.log
type Assignment struct {
	Pos   lexer.Position
	Name  string   `KwSet @Word Assign`
	Parts []string `@( Word | String | Assign | Stray )*`

	// raw is the source text from after "=" to the end of the line.
	raw    string
	hasRaw bool
}

// Value returns the assigned text: everything after "=" up to the end of
// the line, without surrounding blanks or a trailing "# comment". A value
// that is a single quoted string is unquoted.
func (a *Assignment) Value() string {
	if a.hasRaw {
		return cleanValue(a.raw)
	}
	return cleanValue(strings.Join(a.Parts, " "))
}

// attach records the raw value of every assignment from the parsed source.
func (s *Script) attach(src string) {
	for _, a := range s.Assignments() {
		if a.Pos.Offset < 0 || a.Pos.Offset > len(src) {
			continue
		}
		line := src[a.Pos.Offset:]
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		// The name is a single word without "=", so the first "=" is the
		// assignment operator.
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		a.raw, a.hasRaw = line[eq+1:], true
	}
}

func cleanValue(v string) string {
	return unquote(strings.TrimSpace(stripComment(v)))
}

// stripComment cuts a "#" that starts a word outside quotes. A quote
// without a closing partner is ordinary text (it's.log).
func stripComment(v string) string {
	var quote byte
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			if strings.IndexByte(v[i+1:], c) >= 0 {
				quote = c
			}
		case c == '#' && (i == 0 || v[i-1] == ' ' || v[i-1] == '\t'):
			return v[:i]
		}
	}
	return v
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			if strings.IndexByte(s[1:len(s)-1], s[0]) < 0 {
				return s[1 : len(s)-1]
			}
		}
	}
	return s
}

// Assignments returns every assignment in file order.
func (s *Script) Assignments() []*Assignment {
	var out []*Assignment
	for _, line := range s.Lines {
		if line == nil {
			continue
		}
		for _, item := range line.Items {
			if item.Set != nil {
				out = append(out, item.Set)
			}
		}
	}
	return out
}

// Lookup returns the value of the last assignment to name.
func (s *Script) Lookup(name string) (string, bool) {
	a := s.last(name)
	if a == nil {
		return "", false
	}
	return a.Value(), true
}

func (s *Script) last(name string) *Assignment {
	var found *Assignment
	for _, a := range s.Assignments() {
		if a.Name == name {
			found = a
		}
	}
	return found
}
