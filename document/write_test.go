package document

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ava12/exprdoc"
	"github.com/ava12/exprdoc/ast"
	"github.com/ava12/exprdoc/grammar"
)

func assemble(t *testing.T, lines ...string) *Document {
	t.Helper()
	d, err := newAssembler().Assemble(lines)
	require.NoError(t, err)
	return d
}

func TestWriteXML(t *testing.T) {
	d := assemble(t, "X = 3", "Z = 3!")
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d, FormatXML))

	expected := `<root>
  <!--X = 3-->
  <variable value="X"><constant value="3"/></variable>
  <!--Z = 3!-->
  <variable value="Z"><un_op type="!"><constant value="3"/></un_op></variable>
</root>
`
	assert.Equal(t, expected, buf.String())
}

func TestWriteXMLBinary(t *testing.T) {
	d := assemble(t, "x = max(2, y)")
	var buf bytes.Buffer
	err := Write(&buf, d, FormatXML)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `<bin_op type="max"><constant value="2"/><variable value="y"/></bin_op>`)
}

func lessGrammar() *grammar.Grammar {
	c := grammar.DefaultConfig()
	c.Levels = append(c.Levels, grammar.LevelConfig{Symbols: []string{"<"}})
	return grammar.MustNew(c)
}

func TestWriteXMLWellFormed(t *testing.T) {
	c := lessGrammar()
	d, err := NewAssembler(c).Assemble([]string{"x = a < b", "y = --a", "z = 1 - -b", "w = c -"})
	require.Error(t, err)
	assert.Nil(t, d)

	d, err = NewAssembler(c).Assemble([]string{"x = a < b", "y = --a", "z = 1 - -b"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d, FormatXML))
	out := buf.String()
	assert.Contains(t, out, `<bin_op type="&lt;">`)
	assert.Contains(t, out, "<!--y = - -a-->")
	assert.Contains(t, out, "<!--z = 1 - -b-->")

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.ErrorIs(t, err, io.EOF)
			break
		}
	}
}

func TestCommentText(t *testing.T) {
	assert.Equal(t, "x = 1", commentText("x = 1"))
	assert.Equal(t, "x = - -1", commentText("x = --1"))
	assert.Equal(t, "- - - ", commentText("---"))
	assert.Equal(t, "x - ", commentText("x -"))
	assert.Equal(t, "x = \ufffd1\ufffd", commentText("x = \x011\xff"))
	assert.Equal(t, "y = a\tb", commentText("y = a\tb"))
}

func TestWriteJSON(t *testing.T) {
	d := assemble(t, "X = max(2, 3!)")
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d, FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	expected := map[string]any{
		"statements": []any{
			map[string]any{
				"source": "X = max(2, 3!)",
				"target": "X",
				"tree": map[string]any{
					"tag":  "bin_op",
					"type": "max",
					"children": []any{
						map[string]any{"tag": "constant", "value": "2"},
						map[string]any{
							"tag":      "un_op",
							"type":     "!",
							"children": []any{map[string]any{"tag": "constant", "value": "3"}},
						},
					},
				},
			},
		},
	}
	assert.Equal(t, expected, got)
}

func TestWriteYAML(t *testing.T) {
	d := assemble(t, "Y = -z")
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d, FormatYAML))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "statements:\n"))
	assert.Contains(t, out, "source: Y = -z")
	assert.Contains(t, out, "tag: un_op")
	assert.Contains(t, out, "tag: variable")
	assert.Contains(t, out, "value: z")

	var view documentView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &view))
	assert.Equal(t, newDocumentView(d), view)
}

func TestEmptyDocument(t *testing.T) {
	d := &Document{}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d, FormatXML))
	assert.Equal(t, "<root>\n</root>\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, d, FormatJSON))
	assert.JSONEq(t, `{"statements": []}`, buf.String())
}

func TestIncompleteTree(t *testing.T) {
	var unary *ast.UnaryOp
	trees := []ast.Node{
		nil,
		unary,
		&ast.UnaryOp{Symbol: "-"},
		ast.NewBinary("+", ast.NewConstant("1"), nil),
	}

	for _, tree := range trees {
		d := assemble(t, "X = 3")
		d.Append(Statement{Source: "Y = ?", Target: "Y", Tree: tree, Line: 2})
		for _, f := range []Format{FormatXML, FormatJSON, FormatYAML} {
			var buf bytes.Buffer
			err := Write(&buf, d, f)
			require.Error(t, err, "tree %v, format %s", tree, f)
			assert.Equal(t, IncompleteTreeError, exprdoc.Code(err))
			assert.Contains(t, err.Error(), `"Y"`)
			assert.Empty(t, buf.String())
		}
	}
}

func TestFormats(t *testing.T) {
	for name, expected := range map[string]Format{"": FormatXML, "xml": FormatXML, "JSON": FormatJSON, "yml": FormatYAML, "yaml": FormatYAML} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, expected, f)
	}

	_, err := ParseFormat("csv")
	assert.Equal(t, OutputFormatError, exprdoc.Code(err))
	assert.Equal(t, OutputFormatError, exprdoc.Code(Write(&bytes.Buffer{}, &Document{}, Format(7))))

	assert.Equal(t, FormatJSON, FormatForPath("out/doc.json"))
	assert.Equal(t, FormatYAML, FormatForPath("doc.yaml"))
	assert.Equal(t, FormatXML, FormatForPath("doc.txt"))
	assert.Equal(t, "yaml", FormatYAML.String())
}

func TestWriteFile(t *testing.T) {
	d := assemble(t, "X = 3")
	path := filepath.Join(t.TempDir(), "doc.xml")
	require.NoError(t, WriteFile(path, d, FormatXML))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "<root>\n  <!--X = 3-->"))

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "doc.xml"), d, FormatXML)
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	d := assemble(t, "x = max(2, 3!)", "y = a")
	out := Render(d)
	for _, s := range []string{"x = max(2, 3!)", "bin_op max", "├── ", "constant 2", "un_op !", "y = a", "variable a"} {
		assert.Contains(t, out, s)
	}
	assert.Less(t, strings.Index(out, "constant 2"), strings.Index(out, "un_op !"))
}
