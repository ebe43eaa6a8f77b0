// Package qflow reads qflow project configuration scripts.
package qflow

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"

	"github.com/OpenTraceLab/gatecount/pkg/textio"
)

// SynthLogVar is the variable qflow uses for the synthesis log path.
const SynthLogVar = "synthlog"

// ErrSynthLogUndefined is returned when no line assigns the synthesis log.
var ErrSynthLogUndefined = errors.New("qflow: synthlog is not set in the configuration script")

// Parser parses qflow variable scripts.
type Parser struct {
	parser *participle.Parser[Script]
}

// NewParser creates a new script parser instance.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[Script](
		participle.Lexer(ScriptLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(3),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser}, nil
}

// Parse parses a script from a reader.
func (p *Parser) Parse(name string, r io.Reader) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return p.parse(name, string(data))
}

// ParseString parses a script from a string.
func (p *Parser) ParseString(input string) (*Script, error) {
	return p.parse("", input)
}

func (p *Parser) parse(name, src string) (*Script, error) {
	script, err := p.parser.ParseString(name, src)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	script.attach(src)
	return script, nil
}

// ParseFile parses a script from a file path.
func (p *Parser) ParseFile(filename string) (*Script, error) {
	file, err := textio.Open(filename)
	if err != nil {
		return nil, err
	}
	return p.Parse(filename, file)
}

// ParseScript is a convenience wrapper building a one-shot parser.
func ParseScript(r io.Reader) (*Script, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	return p.Parse("", r)
}

// SynthLog returns the synthesis log path assigned in the script.
func (s *Script) SynthLog() (string, error) {
	path, ok := s.Lookup(SynthLogVar)
	if !ok || path == "" {
		return "", ErrSynthLogUndefined
	}
	return path, nil
}

// SynthLogPath parses r and returns the synthesis log path.
func SynthLogPath(r io.Reader) (string, error) {
	script, err := ParseScript(r)
	if err != nil {
		return "", err
	}
	return script.SynthLog()
}
