package compiler

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/pmatch/pattern"
)

// ErrUnsupported is returned for pattern kinds the compiler does not
// support.
var ErrUnsupported = errors.New("this feature is currently not implemented")

// ErrMissingSource is returned when a case is initialized without a
// source its guard requires.
var ErrMissingSource = errors.New("missing source value")

// SyntaxError reports an invalid pattern. Line is 1-based, Col is a
// 0-based offset into Text, the line of source text the error occurred
// in (empty if the compiler has not been given the source text).
type SyntaxError struct {
	Msg      string
	Filename string
	Line     int
	Col      int
	Text     string
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	if e.Filename != "" {
		sb.WriteString(e.Filename)
		sb.WriteByte(':')
	}
	if e.Line > 0 {
		fmt.Fprintf(&sb, "%d:%d: ", e.Line, e.Col)
	} else if e.Filename != "" {
		sb.WriteByte(' ')
	}
	sb.WriteString(e.Msg)
	if e.Text != "" {
		sb.WriteString("\n    ")
		sb.WriteString(e.Text)
		sb.WriteString("\n    ")
		for i := 0; i < e.Col && i < len(e.Text); i++ {
			if e.Text[i] == '\t' {
				sb.WriteByte('\t')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('^')
	}
	return sb.String()
}

// ArityError is returned from matching if a deconstructor receives fewer
// parts from the extraction protocol than it has sub-patterns.
// It is never turned into a non-match.
type ArityError struct {
	Tags []string
	Want int
	Have int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("unpacking of '%s'-value did not provide enough arguments: want %d, have %d",
		pattern.TagString(e.Tags), e.Want, e.Have)
}

// --- Source positions ------------------------------------------------------

// source holds what the compiler knows about the text a pattern has been
// parsed from.
type source struct {
	filename string
	lines    []string
}

func newSource(filename, text string) *source {
	src := &source{filename: filename}
	if text != "" {
		src.lines = strings.Split(text, "\n")
	}
	return src
}

func (src *source) errorAt(pos pattern.Pos, format string, args ...interface{}) *SyntaxError {
	e := &SyntaxError{
		Msg:      fmt.Sprintf(format, args...),
		Filename: src.filename,
	}
	if pos.IsKnown() {
		e.Line, e.Col = pos.Line, pos.Col
		if pos.Line <= len(src.lines) {
			e.Text = strings.TrimRight(src.lines[pos.Line-1], "\r")
		}
	}
	return e
}
