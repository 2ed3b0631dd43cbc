// Package cmd contains exprdoc console commands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ava12/exprdoc/document"
	"github.com/ava12/exprdoc/grammar"
	"github.com/ava12/exprdoc/internal/config"
)

type rootOptions struct {
	configFile string
	verbose    bool
	logFormat  string

	config *config.Config
	logger *slog.Logger
}

// NewRootCmd creates exprdoc command with all subcommands.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "exprdoc",
		Short: "Expression tree document generator",
		Long: `exprdoc reads assignment statements ("name = expression") and writes
a tree document describing operator/operand structure of each expression
with precedence and associativity resolved.

Commands:
  gen      - generate document (XML, JSON, or YAML)
  check    - parse and encode statements, report errors only
  grammar  - show effective precedence table and operator registry
  repl     - encode statements interactively`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (.toml, .yaml, or .yml)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		newGenCmd(opts),
		newCheckCmd(opts),
		newGrammarCmd(opts),
		newReplCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs exprdoc command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) setup(logOut io.Writer) error {
	c := config.Default()
	if o.configFile != "" {
		var err error
		c, err = config.Load(o.configFile)
		if err != nil {
			return err
		}
	}

	if o.verbose {
		c.Log.Level = "debug"
	}
	if o.logFormat != "" {
		c.Log.Format = o.logFormat
	}

	logger, err := c.NewLogger(logOut)
	if err != nil {
		return err
	}

	o.config = c
	o.logger = logger
	if o.configFile != "" {
		logger.Debug("config loaded", "path", o.configFile)
	}
	return nil
}

// grammarFlags are grammar and assembler overrides shared by commands.
type grammarFlags struct {
	grammarFile string
	fold        string
	strict      bool
	keepGoing   bool
	exprs       []string
}

func (gf *grammarFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&gf.grammarFile, "grammar", "", "grammar config file (.toml, .yaml, or .yml)")
	fs.StringVar(&gf.fold, "fold", "", "fold direction for operator chains: right or left")
	fs.BoolVar(&gf.strict, "strict", false, "reject unregistered two-argument functions")
	fs.BoolVar(&gf.keepGoing, "keep-going", false, "skip failed statements and report all errors")
	fs.StringArrayVarP(&gf.exprs, "expr", "e", nil, "statement to encode, may be repeated")
}

// apply puts explicitly set flags over config values.
func (gf *grammarFlags) apply(fs *pflag.FlagSet, c *config.Config) error {
	if gf.grammarFile != "" {
		gc, err := grammar.LoadConfig(gf.grammarFile)
		if err != nil {
			return err
		}
		c.Grammar = gc
	}
	if fs.Changed("fold") {
		c.Grammar.Fold = gf.fold
	}
	if fs.Changed("strict") {
		c.Grammar.Strict = gf.strict
	}
	if fs.Changed("keep-going") {
		c.KeepGoing = gf.keepGoing
	}
	return nil
}

func (o *rootOptions) newAssembler(cmd *cobra.Command, gf *grammarFlags) (*document.Assembler, error) {
	if err := gf.apply(cmd.Flags(), o.config); err != nil {
		return nil, err
	}

	g, err := o.config.NewGrammar()
	if err != nil {
		return nil, err
	}

	o.logger.Debug("grammar ready", "fold", g.Fold().String(), "strict", g.Strict(), "keep_going", o.config.KeepGoing)
	return document.NewAssembler(g, document.WithKeepGoing(o.config.KeepGoing), document.WithLogger(o.logger)), nil
}

// readDocument assembles statements given with -e first, then files, stdin if there are neither.
// With keep-going all inputs are processed and errors are joined.
func readDocument(cmd *cobra.Command, a *document.Assembler, exprs, files []string) (*document.Document, error) {
	d := &document.Document{}
	var errs []error
	add := func(part *document.Document, err error) bool {
		if part != nil {
			d.Append(part.Statements...)
		}
		if err != nil {
			errs = append(errs, err)
			return a.KeepGoing()
		}
		return true
	}

	if len(exprs) > 0 && !add(a.Assemble(exprs)) {
		return nil, errors.Join(errs...)
	}

	for _, name := range files {
		ok := add(assembleFile(a, name))
		if !ok {
			return nil, errors.Join(errs...)
		}
	}

	if len(exprs) == 0 && len(files) == 0 && !add(a.AssembleNamed("stdin", cmd.InOrStdin())) {
		return nil, errors.Join(errs...)
	}

	return d, errors.Join(errs...)
}

func assembleFile(a *document.Assembler, name string) (*document.Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot read input: %w", err)
	}
	defer f.Close()

	return a.AssembleNamed(name, f)
}
