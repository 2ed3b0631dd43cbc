package parser

import (
	"sync"
	"testing"

	"github.com/ava12/exprdoc"
	"github.com/ava12/exprdoc/grammar"
	"github.com/ava12/exprdoc/internal/test"
	"github.com/ava12/exprdoc/lexer"
	"github.com/ava12/exprdoc/source"
)

func newParser() *Parser {
	return New(grammar.Default())
}

func TestShapes(t *testing.T) {
	samples := []struct {
		src, expected string
	}{
		{"3", "3"},
		{"  3.50 ", "3.50"},
		{".5", ".5"},
		{"x", "x"},
		{"9 + 2 * 3", "[9 + [2 * 3]]"},
		{"9 + 2 + 3.5", "[9 + 2 + 3.5]"},
		{"9 - 2 - 3", "[9 - 2 - 3]"},
		{"8 / 4 * 2", "[8 / 4 * 2]"},
		{"3^2^2", "[3 ^ [2 ^ 2]]"},
		{"(9 + -2) * 3^2^2", "[([9 + -2]) * [3 ^ [2 ^ 2]]]"},
		{"-3", "-3"},
		{"--3", "--3"},
		{"+3", "+3"},
		{"-2^2", "-[2 ^ 2]"},
		{"3!", "3!"},
		{"3!!", "3!!"},
		{"2^3!", "[2 ^ 3!]"},
		{"max(2, 3!)", "max(2, 3!)"},
		{"f(1, 2, 3)", "f(1, 2, 3)"},
		{"sqrt(x)", "sqrt(x)"},
		{"((x))", "((x))"},
		{"exp(log(2) * y)", "exp([log(2) * y])"},
	}

	p := newParser()
	for _, s := range samples {
		res, e := p.ParseString("", s.src)
		if e != nil {
			t.Fatalf("%q: unexpected error: %s", s.src, e)
		}
		if res.String() != s.expected {
			t.Fatalf("%q: expecting %s, got %s", s.src, s.expected, res.String())
		}
	}
}

func TestKinds(t *testing.T) {
	p := newParser()
	res, e := p.ParseString("", "max(2, -x)")
	test.ExpectNoError(t, e)
	test.Expect(t, res.Kind == Call, Call, res.Kind)
	test.ExpectString(t, "max", res.Text)
	test.ExpectInt(t, 2, res.Arity())
	test.Expect(t, res.Items[0].Kind == Constant, Constant, res.Items[0].Kind)
	test.Expect(t, res.Items[1].Kind == Prefix, Prefix, res.Items[1].Kind)
	test.Expect(t, res.Items[1].Items[0].Kind == Variable, Variable, res.Items[1].Items[0].Kind)

	res, e = p.ParseString("", "(a - b - c)")
	test.ExpectNoError(t, e)
	test.Expect(t, res.Kind == Group, Group, res.Kind)
	chain := res.Unwrap()
	test.Expect(t, chain.Kind == Chain, Chain, chain.Kind)
	test.ExpectInt(t, 3, chain.Arity())
	test.ExpectInt(t, 2, len(chain.Ops))
	test.Expect(t, chain.Items[0].Kind == Variable, Variable, chain.Items[0].Kind)
}

func TestLiteralTokens(t *testing.T) {
	p := newParser()
	for i, tok := range grammar.Default().Tokens() {
		expected := (tok.Flags & grammar.LiteralToken) != 0
		if p.literals[i] != expected {
			t.Fatalf("token %q: expecting literal %v, got %v", tok.Name, expected, p.literals[i])
		}
	}
	test.ExpectBool(t, true, p.literals[grammar.OpToken])
	test.ExpectBool(t, false, p.literals[grammar.NameToken])
}

func TestErrors(t *testing.T) {
	samples := []struct {
		src  string
		code int
	}{
		{"", UnexpectedEoiError},
		{"3 +", UnexpectedEoiError},
		{"(3 + 2", UnexpectedEoiError},
		{"max(2,", UnexpectedEoiError},
		{"2 + 3 4", UnexpectedInputError},
		{"3)", UnexpectedInputError},
		{"2 * * 3", UnexpectedTokenError},
		{"2^-3", UnexpectedTokenError},
		{"max()", UnexpectedTokenError},
		{"max(1 2)", UnexpectedTokenError},
		{"()", UnexpectedTokenError},
		{"$", lexer.WrongCharError},
		{"2 # 3", lexer.WrongCharError},
	}

	p := newParser()
	for _, s := range samples {
		_, e := p.ParseString("sample", s.src)
		if exprdoc.Code(e) != s.code {
			t.Fatalf("%q: expecting error code %d, got %v", s.src, s.code, e)
		}
		if !exprdoc.IsParseIncomplete(e) {
			t.Fatalf("%q: expecting parse incomplete error, got %v", s.src, e)
		}
	}
}

func TestErrorPos(t *testing.T) {
	p := newParser()
	_, e := p.ParseString("input", "2 + 3 4 5")
	test.ExpectErrorCode(t, UnexpectedInputError, e)
	ee := e.(*exprdoc.Error)
	test.ExpectString(t, "input", ee.SourceName)
	test.ExpectInt(t, 1, ee.Line)
	test.ExpectInt(t, 7, ee.Col)
	test.ExpectString(t, `unexpected "4 5" in input at line 1 col 7`, ee.Message)
}

func TestRange(t *testing.T) {
	line := []byte("x = 9 + 2")
	src := source.NewLine("input", 3, line)
	res, e := newParser().Parse(src, 3, len(line))
	test.ExpectNoError(t, e)
	test.ExpectString(t, "[9 + 2]", res.String())
	test.ExpectInt(t, 3, res.Token.Line())
	test.ExpectInt(t, 5, res.Token.Col())
}

func TestCustomLevels(t *testing.T) {
	c := grammar.DefaultConfig()
	c.Levels = []grammar.LevelConfig{
		{Fixity: "infix", Assoc: "left", Symbols: []string{"**"}},
		{Fixity: "infix", Assoc: "right", Symbols: []string{"-"}},
	}
	p := New(grammar.MustNew(c))
	res, e := p.ParseString("", "a - b ** c ** d - e")
	test.ExpectNoError(t, e)
	test.ExpectString(t, "[a - [[b ** c ** d] - e]]", res.String())
}

func TestConcurrentParse(t *testing.T) {
	p := newParser()
	samples := map[string]string{
		"9 + 2 * 3":  "[9 + [2 * 3]]",
		"3^2^2":      "[3 ^ [2 ^ 2]]",
		"max(2, 3!)": "max(2, 3!)",
		"-x":         "-x",
	}

	wg := &sync.WaitGroup{}
	errs := make(chan string, 100)
	for i := 0; i < 25; i++ {
		for src, expected := range samples {
			wg.Add(1)
			go func(src, expected string) {
				defer wg.Done()
				res, e := p.ParseString("", src)
				if e != nil {
					errs <- e.Error()
				} else if res.String() != expected {
					errs <- src + ": got " + res.String()
				}
			}(src, expected)
		}
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
