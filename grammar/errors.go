package grammar

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ava12/exprdoc"
)

func emptyGrammarError() *exprdoc.Error {
	return exprdoc.FormatError(EmptyGrammarError, "grammar has no precedence levels")
}

func emptyLevelError(index int) *exprdoc.Error {
	return exprdoc.FormatError(EmptyLevelError, "precedence level #%d has no symbols", index)
}

func wrongFixityError(name string) *exprdoc.Error {
	return exprdoc.FormatError(WrongFixityError, "unknown fixity %q, expecting infix, prefix, or postfix", name)
}

func wrongAssocError(name string) *exprdoc.Error {
	return exprdoc.FormatError(WrongAssocError, "unknown associativity %q, expecting left or right", name)
}

func wrongSymbolError(symbol string) *exprdoc.Error {
	return exprdoc.FormatError(WrongSymbolError, "wrong operator symbol %q", symbol)
}

func symbolConflictError(symbol string) *exprdoc.Error {
	return exprdoc.FormatError(SymbolConflictError, "operator %q is defined twice", symbol)
}

func wrongFoldError(name string) *exprdoc.Error {
	return exprdoc.FormatError(WrongFoldError, "unknown fold direction %q, expecting left or right", name)
}

func configFileError(name string, e error) *exprdoc.Error {
	return exprdoc.FormatError(ConfigFileError, "cannot load grammar config %s: %s", name, e)
}

func unknownKeysError(keys []toml.Key) error {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
}

func unknownFormatError(format string) error {
	return fmt.Errorf("unknown config format %q, expecting yaml or toml", format)
}
