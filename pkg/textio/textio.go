// Package textio opens the line-oriented text files read by gatecount.
//
// qflow projects are frequently created on machines with a Latin-1 locale,
// and some tools emit UTF-16 with a byte order mark. Open sniffs the file,
// picks a decoder from golang.org/x/text and hands back UTF-8 text so the
// scanners can match plain ASCII patterns without caring about the source
// encoding.
package textio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names reported by Detect.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
	EncodingLatin1  = "iso-8859-1"
)

// maxLineSize bounds a single line. Synthesis logs carry long netlist dumps.
const maxLineSize = 1024 * 1024

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect guesses the encoding of data. Anything that is neither BOM-marked
// nor valid UTF-8 is treated as ISO-8859-1.
func Detect(data []byte) string {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return EncodingUTF16BE
	case utf8.Valid(data):
		return EncodingUTF8
	default:
		return EncodingLatin1
	}
}

func decoderFor(name string) encoding.Encoding {
	switch name {
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	case EncodingLatin1:
		return charmap.ISO8859_1
	default:
		return unicode.UTF8BOM
	}
}

// Decode returns a reader producing the UTF-8 form of data together with the
// name of the detected source encoding.
func Decode(data []byte) (io.Reader, string) {
	name := Detect(data)
	dec := decoderFor(name).NewDecoder()
	return transform.NewReader(bytes.NewReader(data), dec), name
}

// File is a decoded input file.
type File struct {
	Name     string
	Encoding string
	r        io.Reader
}

// Open reads path fully and prepares a UTF-8 reader over its contents.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	r, name := Decode(data)
	return &File{Name: path, Encoding: name, r: r}, nil
}

func (f *File) Read(p []byte) (int, error) {
	return f.r.Read(p)
}

// Lines returns a LineScanner over the decoded contents.
func (f *File) Lines() *LineScanner {
	return NewLineScanner(f.Name, f)
}

// LineScanner walks a reader line by line and remembers the line number so
// that errors can point at the offending line.
type LineScanner struct {
	name string
	sc   *bufio.Scanner
	line int
}

func NewLineScanner(name string, r io.Reader) *LineScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &LineScanner{name: name, sc: sc}
}

func (s *LineScanner) Scan() bool {
	if !s.sc.Scan() {
		return false
	}
	s.line++
	return true
}

func (s *LineScanner) Text() string { return s.sc.Text() }
func (s *LineScanner) Line() int    { return s.line }

// Err returns the first read error, wrapped with the file position.
func (s *LineScanner) Err() error {
	if err := s.sc.Err(); err != nil {
		return &LineError{File: s.name, Line: s.line, Err: err}
	}
	return nil
}

// Errorf builds a LineError for the current line.
func (s *LineScanner) Errorf(format string, args ...any) error {
	return &LineError{File: s.name, Line: s.line, Err: fmt.Errorf(format, args...)}
}

// LineError locates a scan failure in an input file.
type LineError struct {
	File string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	name := e.File
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d: %v", name, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
