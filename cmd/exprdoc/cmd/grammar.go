package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ava12/exprdoc/grammar"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newGrammarCmd(opts *rootOptions) *cobra.Command {
	gf := &grammarFlags{}
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Show effective precedence table and operator registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := gf.apply(cmd.Flags(), opts.config); err != nil {
				return err
			}
			g, err := opts.config.NewGrammar()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), describeGrammar(g))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&gf.grammarFile, "grammar", "", "grammar config file (.toml, .yaml, or .yml)")
	fs.StringVar(&gf.fold, "fold", "", "fold direction for operator chains: right or left")
	fs.BoolVar(&gf.strict, "strict", false, "reject unregistered two-argument functions")
	return cmd
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func describeGrammar(g *grammar.Grammar) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "fold: %s\nstrict: %t\n\n", g.Fold(), g.Strict())

	levels := newTable("#", "fixity", "assoc", "symbols")
	for i, l := range g.Levels() {
		levels.Row(strconv.Itoa(i+1), l.Fixity.String(), l.Assoc.String(), strings.Join(l.Symbols, " "))
	}
	sb.WriteString(levels.String())
	sb.WriteString("\n\n")

	registry := newTable("symbol", "arities", "integer operand")
	for _, s := range g.Symbols() {
		arities := g.Arities(s)
		as := make([]string, len(arities))
		for i, a := range arities {
			as[i] = strconv.Itoa(a)
		}

		integral := ""
		if g.IntegerOperand(s) {
			integral = "yes"
		}
		registry.Row(s, strings.Join(as, ", "), integral)
	}
	sb.WriteString(registry.String())
	sb.WriteString("\n")
	return sb.String()
}
