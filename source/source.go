// Package source defines named source text with line and column positions.
package source

import (
	"bytes"
	"unicode/utf8"
)

// Source contains source name and content.
// Line numbers start from firstLine (1 by default), so a single line taken from a larger input
// reports its real position.
type Source struct {
	name          string
	content       []byte
	firstLine     int
	lineStarts    []int
	prevLineIndex int
}

// New creates a source, content is used as is, no copy is made.
func New(name string, content []byte) *Source {
	return NewLine(name, 1, content)
}

// NewLine creates a source which content starts at line firstLine of a larger input.
// firstLine values less than 1 are treated as 1.
func NewLine(name string, firstLine int, content []byte) *Source {
	if firstLine < 1 {
		firstLine = 1
	}
	s := &Source{name: name, content: content, firstLine: firstLine, prevLineIndex: -1}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

// Name returns source name.
func (s *Source) Name() string {
	return s.name
}

// Content returns source content.
func (s *Source) Content() []byte {
	return s.content
}

// Len returns content length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// LineCol returns line and column numbers (starting from 1) for byte position.
// Column is counted in runes.
func (s *Source) LineCol(pos int) (line, col int) {
	var lineIndex int
	if pos < 0 {
		pos = 0
		lineIndex = 0
	} else if pos >= len(s.content) {
		pos = len(s.content)
		lineIndex = len(s.lineStarts) - 1
	} else {
		lineIndex = s.findLineIndex(pos)
	}

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + s.firstLine, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

func (s *Source) findLineIndex(pos int) int {
	if s.prevLineIndex >= 0 && s.lineStarts[s.prevLineIndex] <= pos {
		lineIndex := s.prevLineIndex
		last := len(s.lineStarts) - 1
		for lineIndex <= last && s.lineStarts[lineIndex] <= pos {
			lineIndex++
		}
		lineIndex--
		s.prevLineIndex = lineIndex
		return lineIndex
	}

	leftIndex := 0
	rightIndex := len(s.lineStarts) - 1
	index := 0
	if s.prevLineIndex >= 0 {
		rightIndex = s.prevLineIndex
	}
	for leftIndex < rightIndex {
		index = (leftIndex + rightIndex + 1) >> 1
		lineStart := s.lineStarts[index]
		if lineStart == pos {
			return index
		}

		if lineStart < pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
			index = rightIndex
		}
	}
	s.prevLineIndex = index
	return index
}

// Pos is a position in source, it implements exprdoc.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates position for byte offset in src, src may be nil.
func NewPos(src *Source, pos int) Pos {
	res := Pos{src: src, pos: pos}
	if src != nil {
		res.line, res.col = src.LineCol(pos)
	}
	return res
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}

// NormalizeNls replaces "\r\n" and lone "\r" with "\n".
func NormalizeNls(content *[]byte) {
	c := *content
	if bytes.IndexByte(c, '\r') < 0 {
		return
	}

	c = bytes.ReplaceAll(c, []byte("\r\n"), []byte("\n"))
	*content = bytes.ReplaceAll(c, []byte("\r"), []byte("\n"))
}
