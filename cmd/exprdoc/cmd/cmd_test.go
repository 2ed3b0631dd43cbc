package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/exprdoc"
	"github.com/ava12/exprdoc/ast"
	"github.com/ava12/exprdoc/document"
	"github.com/ava12/exprdoc/grammar"
	"github.com/ava12/exprdoc/parser"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenExpr(t *testing.T) {
	out, _, err := run(t, "", "gen", "-e", "X = 3", "-e", "Z = 3!")
	require.NoError(t, err)
	expected := `<root>
  <!--X = 3-->
  <variable value="X"><constant value="3"/></variable>
  <!--Z = 3!-->
  <variable value="Z"><un_op type="!"><constant value="3"/></un_op></variable>
</root>
`
	assert.Equal(t, expected, out)
}

func TestGenStdin(t *testing.T) {
	out, _, err := run(t, "x = 9 - 2 - 3\n", "gen", "--format", "json", "--fold", "left")
	require.NoError(t, err)
	assert.Contains(t, out, `"source": "x = 9 - 2 - 3"`)

	out2, _, err := run(t, "x = 9 - 2 - 3\n", "gen", "--format", "json")
	require.NoError(t, err)
	assert.NotEqual(t, out, out2)
}

func TestGenOutputFile(t *testing.T) {
	input := writeFile(t, "input.txt", "A = 1\nB = max(a, 2)\n")
	output := filepath.Join(t.TempDir(), "doc.yaml")
	out, errOut, err := run(t, "", "gen", input, "-o", output, "--display")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "bin_op max")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "statements:"))
}

func TestGenErrors(t *testing.T) {
	input := writeFile(t, "input.txt", "A = 1\nB 2\nC = 3\nD = 4 +\n")

	out, _, err := run(t, "", "gen", input)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, document.AssignmentFormatError, exprdoc.Code(err))

	out, errOut, err := run(t, "", "gen", "--keep-going", input)
	require.Error(t, err)
	assert.Contains(t, out, `<variable value="A">`)
	assert.Contains(t, out, `<variable value="C">`)
	assert.NotContains(t, out, `<variable value="B">`)
	assert.Contains(t, err.Error(), "line 4")
	assert.Contains(t, errOut, "statement skipped")
}

func TestGenConfig(t *testing.T) {
	cfg := writeFile(t, "exprdoc.toml", `
[output]
format = "json"

[grammar]
strict = true
`)
	_, _, err := run(t, "", "--config", cfg, "gen", "-e", "X = foo(1, 2)")
	assert.Equal(t, ast.UnsupportedArityError, exprdoc.Code(err))

	out, _, err := run(t, "", "--config", cfg, "gen", "--strict=false", "-e", "X = foo(1, 2)")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "foo"`)
}

func TestGenGrammarFile(t *testing.T) {
	g := writeFile(t, "grammar.yaml", `
levels:
  - {fixity: prefix, symbols: ["-"]}
  - {fixity: infix, assoc: left, symbols: ["+", "-", "%"]}
binary: ["+", "-", "%"]
`)
	out, _, err := run(t, "", "gen", "--grammar", g, "-e", "r = 7 % 3")
	require.NoError(t, err)
	assert.Contains(t, out, `<bin_op type="%">`)

	_, _, err = run(t, "", "gen", "--grammar", g, "-e", "r = 7 * 3")
	assert.True(t, exprdoc.IsParseIncomplete(err))
}

func TestGenTOMLGrammarFile(t *testing.T) {
	g := writeFile(t, "grammar.toml", `
binary = ["+", "-", "%"]

[[levels]]
fixity = "prefix"
symbols = ["-"]

[[levels]]
symbols = ["+", "-", "%"]
`)
	out, _, err := run(t, "", "gen", "--grammar", g, "-e", "r = 7 % 3")
	require.NoError(t, err)
	assert.Contains(t, out, `<bin_op type="%"><constant value="7"/><constant value="3"/></bin_op>`)
}

func TestCheck(t *testing.T) {
	out, _, err := run(t, "", "check", "-e", "x = 9 + 2 * 3", "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "1 statement(s) ok")
	assert.Contains(t, out, `Target: (string) (len=1) "x"`)

	_, _, err = run(t, "", "check", "-e", "X = 3 +")
	assert.Equal(t, parser.UnexpectedEoiError, exprdoc.Code(err))
}

func TestGrammarCmd(t *testing.T) {
	out, _, err := run(t, "", "grammar", "--fold", "left")
	require.NoError(t, err)
	assert.Contains(t, out, "fold: left")
	for _, s := range []string{"postfix", "prefix", "right", "sqrt", "max"} {
		assert.Contains(t, out, s)
	}

	_, _, err = run(t, "", "grammar", "--fold", "up")
	assert.Equal(t, grammar.WrongFoldError, exprdoc.Code(err))
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "exprdoc v"+Version))
}

func TestVerboseJSONLog(t *testing.T) {
	_, errOut, err := run(t, "", "-v", "--log-format", "json", "gen", "-e", "X = 3")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"msg":"statement encoded"`)

	_, _, err = run(t, "", "--log-format", "xml", "version")
	assert.Error(t, err)
}

func TestReplLine(t *testing.T) {
	a := document.NewAssembler(grammar.Default())
	f := document.FormatXML
	var out bytes.Buffer
	replLine(&out, a, "Z = 3!", &f)
	assert.Contains(t, out.String(), "un_op !")
	assert.Contains(t, out.String(), `<un_op type="!">`)

	out.Reset()
	replLine(&out, a, "Z 3", nil)
	assert.Contains(t, out.String(), "missing")
}

func TestHistoryPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path, ok := historyPath()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(home, historyFile), path)

	t.Setenv("HOME", "")
	_, ok = historyPath()
	assert.False(t, ok)
}
