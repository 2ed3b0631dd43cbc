package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

type checkOptions struct {
	grammarFlags
	dump bool
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	check := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Parse and encode statements without writing a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return check.run(cmd, opts, args)
		},
	}

	check.register(cmd.Flags())
	cmd.Flags().BoolVar(&check.dump, "dump", false, "dump encoded statements")
	return cmd
}

func (check *checkOptions) run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	a, err := opts.newAssembler(cmd, &check.grammarFlags)
	if err != nil {
		return err
	}

	d, err := readDocument(cmd, a, check.exprs, args)
	if d != nil {
		if check.dump {
			cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
			for _, st := range d.Statements {
				cfg.Fdump(cmd.OutOrStdout(), st)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d statement(s) ok\n", d.Len())
	}
	return err
}
