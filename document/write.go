package document

import (
	"bufio"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ava12/exprdoc/ast"
)

// Format is document output format.
type Format int

const (
	FormatXML Format = iota
	FormatJSON
	FormatYAML
)

var formatNames = []string{"xml", "json", "yaml"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat returns format by its name, empty name means FormatXML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "xml":
		return FormatXML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, outputFormatError(name)
}

// FormatForPath guesses format by file extension, unknown extensions give FormatXML.
func FormatForPath(path string) Format {
	f, e := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if e != nil {
		return FormatXML
	}
	return f
}

// Tags and attributes of the document tree.
const (
	TagRoot     = "root"
	TagAssign   = "variable"
	TagConstant = "constant"
	TagVariable = "variable"
	TagUnary    = "un_op"
	TagBinary   = "bin_op"

	AttrValue = "value"
	AttrType  = "type"
)

// Tag returns the tag name for expression node.
func Tag(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Leaf:
		if n.Kind == ast.VariableLeaf {
			return TagVariable
		}
		return TagConstant
	case *ast.UnaryOp:
		return TagUnary
	case *ast.BinaryOp:
		return TagBinary
	}
	return ""
}

// Write writes document to w in given format.
// Nothing is written if some statement tree is incomplete.
func Write(w io.Writer, d *Document, f Format) error {
	for _, st := range d.Statements {
		if !completeTree(st.Tree) {
			return incompleteTreeError(st)
		}
	}

	switch f {
	case FormatXML:
		return writeXML(w, d)
	case FormatJSON:
		return writeJSON(w, d)
	case FormatYAML:
		return writeYAML(w, d)
	}
	return outputFormatError(f.String())
}

// WriteFile writes document to file at path, the file is created or truncated.
func WriteFile(path string, d *Document, f Format) error {
	file, e := os.Create(path)
	if e != nil {
		return fmt.Errorf("cannot create output file: %w", e)
	}

	e = Write(file, d, f)
	ce := file.Close()
	if e == nil && ce != nil {
		e = fmt.Errorf("cannot write output file: %w", ce)
	}
	return e
}

func completeTree(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Leaf:
		return n != nil
	case *ast.UnaryOp:
		return n != nil && completeTree(n.Operand)
	case *ast.BinaryOp:
		return n != nil && completeTree(n.Left) && completeTree(n.Right)
	}
	return false
}

func writeXML(w io.Writer, d *Document) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("<" + TagRoot + ">\n")
	for _, st := range d.Statements {
		bw.WriteString("  <!--")
		bw.WriteString(commentText(st.Source))
		bw.WriteString("-->\n  ")
		writeElementStart(bw, TagAssign, AttrValue, st.Target, false)
		writeNode(bw, st.Tree)
		bw.WriteString("</" + TagAssign + ">\n")
	}
	bw.WriteString("</" + TagRoot + ">\n")
	return bw.Flush()
}

// commentText makes s a valid XML comment body: no "--" inside, no "-" at the end,
// characters not allowed in XML and broken UTF-8 sequences are replaced with U+FFFD.
func commentText(s string) string {
	s = strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return utf8.RuneError
	}, s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	if strings.HasSuffix(s, "-") {
		s += " "
	}
	return s
}

func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		(r >= 0x20 && r <= 0xd7ff) ||
		(r >= 0xe000 && r <= 0xfffd) ||
		(r >= 0x10000 && r <= 0x10ffff)
}

func writeElementStart(w *bufio.Writer, tag, attr, value string, empty bool) {
	w.WriteString("<" + tag + " " + attr + "=\"")
	xml.EscapeText(w, []byte(value))
	if empty {
		w.WriteString("\"/>")
	} else {
		w.WriteString("\">")
	}
}

func writeNode(w *bufio.Writer, n ast.Node) {
	switch n := n.(type) {
	case *ast.Leaf:
		writeElementStart(w, Tag(n), AttrValue, n.Value, true)

	case *ast.UnaryOp:
		writeElementStart(w, TagUnary, AttrType, n.Symbol, false)
		writeNode(w, n.Operand)
		w.WriteString("</" + TagUnary + ">")

	case *ast.BinaryOp:
		writeElementStart(w, TagBinary, AttrType, n.Symbol, false)
		writeNode(w, n.Left)
		writeNode(w, n.Right)
		w.WriteString("</" + TagBinary + ">")
	}
}

type element struct {
	Tag      string     `json:"tag" yaml:"tag"`
	Value    string     `json:"value,omitempty" yaml:"value,omitempty"`
	Type     string     `json:"type,omitempty" yaml:"type,omitempty"`
	Children []*element `json:"children,omitempty" yaml:"children,omitempty"`
}

type statementView struct {
	Source string   `json:"source" yaml:"source"`
	Target string   `json:"target" yaml:"target"`
	Tree   *element `json:"tree" yaml:"tree"`
}

type documentView struct {
	Statements []statementView `json:"statements" yaml:"statements"`
}

func newElement(n ast.Node) *element {
	el := &element{Tag: Tag(n)}
	switch n := n.(type) {
	case *ast.Leaf:
		el.Value = n.Value
	case *ast.UnaryOp:
		el.Type = n.Symbol
	case *ast.BinaryOp:
		el.Type = n.Symbol
	}
	for _, c := range ast.Children(n) {
		el.Children = append(el.Children, newElement(c))
	}
	return el
}

func newDocumentView(d *Document) documentView {
	v := documentView{Statements: make([]statementView, len(d.Statements))}
	for i, st := range d.Statements {
		v.Statements[i] = statementView{st.Source, st.Target, newElement(st.Tree)}
	}
	return v
}

func writeJSON(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocumentView(d))
}

func writeYAML(w io.Writer, d *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if e := enc.Encode(newDocumentView(d)); e != nil {
		return e
	}
	return enc.Close()
}
