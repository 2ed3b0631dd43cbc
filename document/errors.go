package document

import (
	"github.com/ava12/exprdoc"
	"github.com/ava12/exprdoc/source"
)

// Error codes used by document:
const (
	// AssignmentFormatError indicates a line without exactly one "=" or with an empty side.
	AssignmentFormatError = exprdoc.DocumentErrors + iota

	// OutputFormatError indicates unknown output format.
	OutputFormatError

	// IncompleteTreeError indicates a statement with missing expression node, nothing is written.
	IncompleteTreeError
)

func assignmentFormatError(src *source.Source, reason string) *exprdoc.Error {
	return exprdoc.FormatErrorPos(source.NewPos(src, 0), AssignmentFormatError, "%s in %q", reason, string(src.Content()))
}

func outputFormatError(name string) *exprdoc.Error {
	return exprdoc.FormatError(OutputFormatError, "unknown output format %q, expecting xml, json, or yaml", name)
}

func incompleteTreeError(st Statement) *exprdoc.Error {
	return exprdoc.FormatError(IncompleteTreeError, "incomplete expression tree for %q at line %d", st.Target, st.Line)
}
