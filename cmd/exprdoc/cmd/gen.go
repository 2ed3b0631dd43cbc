package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava12/exprdoc/document"
)

type genOptions struct {
	grammarFlags
	output  string
	format  string
	display bool
}

func newGenCmd(opts *rootOptions) *cobra.Command {
	gen := &genOptions{}
	cmd := &cobra.Command{
		Use:   "gen [file...]",
		Short: "Generate tree document from assignment statements",
		Long: `Reads "name = expression" lines from -e flags, files, or stdin
and writes the tree document to stdout or to the output file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return gen.run(cmd, opts, args)
		},
	}

	fs := cmd.Flags()
	gen.register(fs)
	fs.StringVarP(&gen.output, "output", "o", "", "output file (default stdout)")
	fs.StringVar(&gen.format, "format", "", "output format: xml, json, or yaml (default by output file extension)")
	fs.BoolVar(&gen.display, "display", false, "show tree view on stderr")
	return cmd
}

func (gen *genOptions) run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	c := opts.config
	fs := cmd.Flags()
	if fs.Changed("output") {
		c.Output.Path = gen.output
	}
	if fs.Changed("format") {
		c.Output.Format = gen.format
	}
	if fs.Changed("display") {
		c.Output.Display = gen.display
	}

	format, err := c.OutputFormat()
	if err != nil {
		return err
	}

	a, err := opts.newAssembler(cmd, &gen.grammarFlags)
	if err != nil {
		return err
	}

	d, inputErr := readDocument(cmd, a, gen.exprs, args)
	if d == nil {
		return inputErr
	}

	if c.Output.Path == "" {
		err = document.Write(cmd.OutOrStdout(), d, format)
	} else {
		err = document.WriteFile(c.Output.Path, d, format)
	}
	if err != nil {
		return err
	}
	opts.logger.Info("document written", "path", c.Output.Path, "format", format.String(), "statements", d.Len())

	if c.Output.Display {
		fmt.Fprintln(cmd.ErrOrStderr(), document.Render(d))
	}
	return inputErr
}
