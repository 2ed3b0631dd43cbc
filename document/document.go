// Package document assembles assignment statements into a document and writes it out.
//
// Each input line has the form "target = expression". The expression is parsed and encoded
// with a grammar, the resulting Statement keeps the original line, the target name, and
// the expression tree. Statements are kept in input order.
package document

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/ava12/exprdoc/ast"
	"github.com/ava12/exprdoc/grammar"
	"github.com/ava12/exprdoc/parser"
	"github.com/ava12/exprdoc/source"
)

// DefaultSourceName is used in error messages when no source name is set.
const DefaultSourceName = "input"

// Statement is a single encoded assignment.
type Statement struct {
	// Source contains the original line.
	Source string
	// Target contains the name being assigned.
	Target string
	// Tree contains the encoded expression.
	Tree ast.Node
	// Line contains line number in the input or 0.
	Line int
}

// Document is an ordered list of statements.
type Document struct {
	Statements []Statement
}

// Len returns the number of statements.
func (d *Document) Len() int {
	return len(d.Statements)
}

// Append adds statements to the end of the document.
func (d *Document) Append(ss ...Statement) {
	d.Statements = append(d.Statements, ss...)
}

// Option configures Assembler.
type Option func(*Assembler)

// WithKeepGoing makes Assembler skip failed statements and report all errors at once
// instead of stopping at the first one.
func WithKeepGoing(keep bool) Option {
	return func(a *Assembler) {
		a.keepGoing = keep
	}
}

// WithLogger sets the logger, nil means no logging.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l == nil {
			l = discardLogger()
		}
		a.logger = l
	}
}

// WithSourceName sets the name reported in error messages.
func WithSourceName(name string) Option {
	return func(a *Assembler) {
		a.name = name
	}
}

// Assembler turns input lines into statements.
// Assembler holds no per-document state, so a single instance may serve many documents concurrently.
type Assembler struct {
	parser    *parser.Parser
	encoder   *ast.Encoder
	keepGoing bool
	logger    *slog.Logger
	name      string
}

// NewAssembler creates Assembler for grammar g.
func NewAssembler(g *grammar.Grammar, opts ...Option) *Assembler {
	a := &Assembler{
		parser:  parser.New(g),
		encoder: ast.NewEncoder(g),
		logger:  discardLogger(),
		name:    DefaultSourceName,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// KeepGoing reports whether failed statements are skipped.
func (a *Assembler) KeepGoing() bool {
	return a.keepGoing
}

// ParseLine encodes a single "target = expression" line.
func (a *Assembler) ParseLine(line string) (Statement, error) {
	return a.parseLine(a.name, 1, line)
}

func (a *Assembler) parseLine(name string, lineNo int, line string) (Statement, error) {
	src := source.NewLine(name, lineNo, []byte(line))
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return Statement{}, assignmentFormatError(src, "missing \"=\"")
	}
	if strings.IndexByte(line[eq+1:], '=') >= 0 {
		return Statement{}, assignmentFormatError(src, "more than one \"=\"")
	}

	target := strings.TrimSpace(line[:eq])
	if target == "" {
		return Statement{}, assignmentFormatError(src, "empty target name")
	}
	if strings.TrimSpace(line[eq+1:]) == "" {
		return Statement{}, assignmentFormatError(src, "empty expression")
	}

	res, e := a.parser.Parse(src, eq+1, len(line))
	if e != nil {
		return Statement{}, e
	}

	tree, e := a.encoder.Encode(res)
	if e != nil {
		return Statement{}, e
	}

	a.logger.Debug("statement encoded", "source", name, "line", lineNo, "target", target, "tree", tree.String())
	return Statement{Source: line, Target: target, Tree: tree, Line: lineNo}, nil
}

type numberedLine struct {
	text string
	num  int
}

// Assemble encodes lines, line numbers start from 1.
// Without keep-going the first error stops processing and no document is returned.
// With keep-going the document contains all successfully encoded statements and the error
// joins statement errors in input order.
func (a *Assembler) Assemble(lines []string) (*Document, error) {
	nls := make([]numberedLine, len(lines))
	for i, l := range lines {
		nls[i] = numberedLine{l, i + 1}
	}
	return a.assemble(a.name, nls)
}

// AssembleReader reads lines from r and encodes them, blank lines are skipped.
func (a *Assembler) AssembleReader(r io.Reader) (*Document, error) {
	return a.AssembleNamed(a.name, r)
}

// AssembleNamed is like AssembleReader, but uses name in error messages.
// Line breaks may be "\n", "\r\n", or "\r", line length is not limited.
func (a *Assembler) AssembleNamed(name string, r io.Reader) (*Document, error) {
	content, e := io.ReadAll(r)
	if e != nil {
		return nil, e
	}

	source.NormalizeNls(&content)
	var nls []numberedLine
	for i, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			nls = append(nls, numberedLine{line, i + 1})
		}
	}

	return a.assemble(name, nls)
}

func (a *Assembler) assemble(name string, lines []numberedLine) (*Document, error) {
	d := &Document{Statements: make([]Statement, 0, len(lines))}
	var errs []error
	for _, l := range lines {
		st, e := a.parseLine(name, l.num, l.text)
		if e == nil {
			d.Append(st)
			continue
		}

		if !a.keepGoing {
			return nil, e
		}

		a.logger.Warn("statement skipped", "source", name, "line", l.num, "error", e)
		errs = append(errs, e)
	}

	a.logger.Info("document assembled", "source", name, "statements", d.Len(), "errors", len(errs))
	return d, errors.Join(errs...)
}
