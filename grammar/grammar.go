// Package grammar defines token table, operator precedence table, and operator/function registry
// used by parser and ast encoder.
//
// Grammar is created by New from Config and is immutable thereafter, so the same Grammar
// may be shared by any number of parsers and encoders.
package grammar

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ava12/exprdoc"
	"github.com/ava12/exprdoc/internal/ints"
)

// Error codes used by grammar:
const (
	EmptyGrammarError = exprdoc.GrammarErrors + iota
	EmptyLevelError
	WrongFixityError
	WrongAssocError
	WrongSymbolError
	SymbolConflictError
	WrongFoldError
	ConfigFileError
)

// TokenFlags describe token handling.
type TokenFlags int

const (
	// AsideToken is an insignificant token (e.g. whitespace), it is skipped by lexer.
	AsideToken TokenFlags = 1 << iota

	// LiteralToken is an operator or punctuation token, parser checks its text.
	LiteralToken
)

// Token describes lexeme type. Tokens are tried in order, first match wins.
type Token struct {
	Name, Re string
	Flags    TokenFlags
}

// Indexes of token types in Grammar.Tokens().
const (
	SpaceToken = iota
	FloatToken
	IntToken
	NameToken
	OpToken
)

// Punctuation literals.
const (
	OpenParen  = "("
	CloseParen = ")"
	ArgSep     = ","
)

// Fixity of operators in a precedence level.
type Fixity int

const (
	Infix Fixity = iota
	Prefix
	Postfix
)

var fixityNames = []string{"infix", "prefix", "postfix"}

func (f Fixity) String() string {
	if f < 0 || int(f) >= len(fixityNames) {
		return "unknown"
	}
	return fixityNames[f]
}

// Assoc is associativity of operators in a precedence level.
type Assoc int

const (
	Left Assoc = iota
	Right
)

var assocNames = []string{"left", "right"}

func (a Assoc) String() string {
	if a < 0 || int(a) >= len(assocNames) {
		return "unknown"
	}
	return assocNames[a]
}

// Fold defines how a flat chain of same-level binary operators is turned into a binary tree.
type Fold int

const (
	// FoldRight turns "a - b - c" into "a - (b - c)".
	FoldRight Fold = iota
	// FoldLeft turns "a - b - c" into "(a - b) - c".
	FoldLeft
)

var foldNames = []string{"right", "left"}

func (f Fold) String() string {
	if f < 0 || int(f) >= len(foldNames) {
		return "unknown"
	}
	return foldNames[f]
}

// Level is a precedence level: a set of operator symbols with the same fixity and associativity.
type Level struct {
	Fixity  Fixity
	Assoc   Assoc
	Symbols []string
}

// Has reports whether symbol belongs to the level.
func (l Level) Has(symbol string) bool {
	for _, s := range l.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// Grammar contains token table, precedence levels (highest binding first),
// and operator/function registry.
type Grammar struct {
	tokens   []Token
	levels   []Level
	arities  map[string]*ints.Set
	integral map[string]bool
	strict   bool
	fold     Fold
}

// Default returns grammar created from DefaultConfig.
func Default() *Grammar {
	return MustNew(DefaultConfig())
}

// MustNew is like New but panics on error.
func MustNew(c Config) *Grammar {
	g, e := New(c)
	if e != nil {
		panic(e)
	}
	return g
}

// New validates configuration and creates grammar.
func New(c Config) (*Grammar, error) {
	levels, e := buildLevels(c.Levels)
	if e != nil {
		return nil, e
	}

	fold, e := parseFold(c.Fold)
	if e != nil {
		return nil, e
	}

	g := &Grammar{
		levels:   levels,
		arities:  make(map[string]*ints.Set),
		integral: make(map[string]bool),
		strict:   c.Strict,
		fold:     fold,
	}

	if e = g.register(c.Unary, 1); e != nil {
		return nil, e
	}
	if e = g.register(c.Binary, 2); e != nil {
		return nil, e
	}

	for _, name := range c.IntegerOperands {
		if e = checkName(name); e != nil {
			return nil, e
		}
		g.integral[name] = true
	}

	g.tokens = buildTokens(levels)
	return g, nil
}

func (g *Grammar) register(names []string, arity int) error {
	for _, name := range names {
		if e := checkName(name); e != nil {
			return e
		}

		s := g.arities[name]
		if s == nil {
			s = ints.NewSet()
			g.arities[name] = s
		}
		s.Add(arity)
	}
	return nil
}

var (
	punctuation = OpenParen + CloseParen + ArgSep
	nameRe      = regexp.MustCompile("^[A-Za-z]+$")
)

func checkSymbol(symbol string) error {
	if symbol == "" || strings.ContainsAny(symbol, punctuation+"=") {
		return wrongSymbolError(symbol)
	}
	for _, r := range symbol {
		if r <= ' ' || r == '.' || (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			return wrongSymbolError(symbol)
		}
	}
	return nil
}

func checkName(name string) error {
	if nameRe.MatchString(name) {
		return nil
	}
	return checkSymbol(name)
}

func buildLevels(lcs []LevelConfig) ([]Level, error) {
	if len(lcs) == 0 {
		return nil, emptyGrammarError()
	}

	res := make([]Level, len(lcs))
	seen := make(map[string]Fixity)
	for i, lc := range lcs {
		if len(lc.Symbols) == 0 {
			return nil, emptyLevelError(i)
		}

		fixity, e := parseFixity(lc.Fixity)
		if e != nil {
			return nil, e
		}
		assoc, e := parseAssoc(lc.Assoc)
		if e != nil {
			return nil, e
		}

		for _, s := range lc.Symbols {
			if e = checkSymbol(s); e != nil {
				return nil, e
			}

			// a symbol may be both prefix and infix (or postfix), nothing else
			prev, f := seen[s]
			if f && (prev == fixity || prev != Prefix && fixity != Prefix) {
				return nil, symbolConflictError(s)
			}
			seen[s] = fixity
		}

		res[i] = Level{fixity, assoc, append([]string(nil), lc.Symbols...)}
	}
	return res, nil
}

func parseFixity(s string) (Fixity, error) {
	if s == "" {
		return Infix, nil
	}
	for i, n := range fixityNames {
		if strings.EqualFold(s, n) {
			return Fixity(i), nil
		}
	}
	return 0, wrongFixityError(s)
}

func parseAssoc(s string) (Assoc, error) {
	if s == "" {
		return Left, nil
	}
	for i, n := range assocNames {
		if strings.EqualFold(s, n) {
			return Assoc(i), nil
		}
	}
	return 0, wrongAssocError(s)
}

func parseFold(s string) (Fold, error) {
	if s == "" {
		return FoldRight, nil
	}
	for i, n := range foldNames {
		if strings.EqualFold(s, n) {
			return Fold(i), nil
		}
	}
	return 0, wrongFoldError(s)
}

func buildTokens(levels []Level) []Token {
	symbols := make([]string, 0)
	known := make(map[string]bool)
	for _, l := range levels {
		for _, s := range l.Symbols {
			if !known[s] {
				known[s] = true
				symbols = append(symbols, s)
			}
		}
	}
	for _, p := range punctuation {
		symbols = append(symbols, string(p))
	}

	// longest symbols first, so that "**" is never split into two "*"
	sort.SliceStable(symbols, func(i, j int) bool {
		return len(symbols[i]) > len(symbols[j])
	})
	quoted := make([]string, len(symbols))
	for i, s := range symbols {
		quoted[i] = regexp.QuoteMeta(s)
	}

	return []Token{
		SpaceToken: {Name: "space", Re: `\s+`, Flags: AsideToken},
		FloatToken: {Name: "float", Re: `\d+\.\d*|\.\d+`},
		IntToken:   {Name: "int", Re: `\d+`},
		NameToken:  {Name: "name", Re: `[A-Za-z]+`},
		OpToken:    {Name: "op", Re: strings.Join(quoted, "|"), Flags: LiteralToken},
	}
}

// Tokens returns token table, indexes are *Token constants.
func (g *Grammar) Tokens() []Token {
	return append([]Token(nil), g.tokens...)
}

// Levels returns precedence levels, highest binding first.
func (g *Grammar) Levels() []Level {
	res := make([]Level, len(g.levels))
	for i, l := range g.levels {
		res[i] = Level{l.Fixity, l.Assoc, append([]string(nil), l.Symbols...)}
	}
	return res
}

// Fold returns the fold direction for flat operator chains.
func (g *Grammar) Fold() Fold {
	return g.fold
}

// Strict reports whether binary function names must be registered.
func (g *Grammar) Strict() bool {
	return g.strict
}

// Arities returns registered arities of operator or function symbol in ascending order.
func (g *Grammar) Arities(symbol string) []int {
	s := g.arities[symbol]
	if s == nil {
		return nil
	}
	return s.ToSlice()
}

// Symbols returns registered operator and function symbols in lexical order.
func (g *Grammar) Symbols() []string {
	res := make([]string, 0, len(g.arities))
	for s := range g.arities {
		res = append(res, s)
	}
	sort.Strings(res)
	return res
}

// Accepts reports whether symbol may be encoded with arity operands.
// Unary symbols must always be registered, binary ones only in strict mode.
func (g *Grammar) Accepts(symbol string, arity int) bool {
	s := g.arities[symbol]
	if s != nil && s.Contains(arity) {
		return true
	}
	return arity == 2 && !g.strict
}

// IntegerOperand reports whether constant operand of unary symbol must be rendered as an integer.
func (g *Grammar) IntegerOperand(symbol string) bool {
	return g.integral[symbol]
}
