/*
File    : go-mix/diag/span.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package diag provides the shared diagnostic substrate used by every
// pipeline stage: byte-offset spans into a source string, a SourceMap that
// converts those spans into 1-based line/column ranges, and the Error type
// each stage accumulates when it cannot proceed.
package diag

import "fmt"

// Span is a view into a source string, expressed as a byte offset and
// length rather than a copied substring, so it stays cheap to carry on
// every AST node and token without duplicating source text.
type Span struct {
	Offset int // byte offset of the first byte of the span
	Length int // number of bytes covered by the span
}

// End returns the byte offset one past the last byte of the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// NewSpan builds a Span from a start and end byte offset (end exclusive).
func NewSpan(start, end int) Span {
	if end < start {
		end = start
	}
	return Span{Offset: start, Length: end - start}
}

// Text returns the substring of src covered by the span. Callers must
// ensure src is the same source string the span was computed against.
func (s Span) Text(src string) string {
	if s.Offset < 0 || s.End() > len(src) {
		return ""
	}
	return src[s.Offset:s.End()]
}

// Position is a 1-based line/column pair.
type Position struct {
	Line   int
	Column int
}

// Range is a 1-based, end-exclusive line/column range, as rendered by a
// SourceMap from a byte Span.
type Range struct {
	Start Position
	End   Position
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", r.Start.Line, r.Start.Column, r.End.Line, r.End.Column)
}

// SourceMap converts byte offsets within one source string into 1-based
// (line, column) positions. Line-end offsets are precomputed once at
// construction so lookups walk that list rather than rescanning the source.
type SourceMap struct {
	src      string
	lineEnds []int // byte offset of each '\n', in ascending order
}

// NewSourceMap builds a SourceMap over src, precomputing line-end offsets.
func NewSourceMap(src string) *SourceMap {
	sm := &SourceMap{src: src}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			sm.lineEnds = append(sm.lineEnds, i)
		}
	}
	return sm
}

// position returns the 1-based line/column of byte offset, clamped into
// [0, len(src)].
func (sm *SourceMap) position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(sm.src) {
		offset = len(sm.src)
	}
	// line is the count of newlines strictly before offset, plus one.
	line := 1
	lineStart := 0
	for _, end := range sm.lineEnds {
		if end < offset {
			line++
			lineStart = end + 1
		} else {
			break
		}
	}
	return Position{Line: line, Column: offset - lineStart + 1}
}

// Resolve converts a byte Span into a 1-based, end-exclusive Range.
func (sm *SourceMap) Resolve(span Span) Range {
	return Range{
		Start: sm.position(span.Offset),
		End:   sm.position(span.End()),
	}
}

// Error is a diagnostic produced by any pipeline stage: a message, the
// source text it was raised against (so a long-lived interpreter can
// attribute an error to the right REPL fragment), and the span of the
// offending construct within that source.
type Error struct {
	Message string
	Source  string
	Span    Span
}

func (e *Error) Error() string {
	return e.Message
}

// Snippet returns the literal source text covered by the error's span.
func (e *Error) Snippet() string {
	return e.Span.Text(e.Source)
}

// Range resolves the error's span against a fresh SourceMap over its
// source. Callers that render many errors against the same source should
// build one SourceMap and call Resolve directly instead.
func (e *Error) Range() Range {
	return NewSourceMap(e.Source).Resolve(e.Span)
}
