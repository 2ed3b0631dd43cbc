package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/ava12/exprdoc/document"
)

const (
	replPrompt  = "exprdoc> "
	historyFile = ".exprdoc_history"
)

type replOptions struct {
	grammarFlags
	format string
}

func newReplCmd(opts *rootOptions) *cobra.Command {
	repl := &replOptions{}
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Encode statements interactively",
		Long: `Reads "name = expression" lines from terminal and shows the tree
of each statement. Type :quit or press Ctrl-D to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return repl.run(cmd, opts)
		},
	}

	fs := cmd.Flags()
	repl.register(fs)
	fs.StringVar(&repl.format, "format", "", "also print each statement in format: xml, json, or yaml")
	return cmd
}

func (repl *replOptions) run(cmd *cobra.Command, opts *rootOptions) error {
	var format *document.Format
	if repl.format != "" {
		f, err := document.ParseFormat(repl.format)
		if err != nil {
			return err
		}
		format = &f
	}

	a, err := opts.newAssembler(cmd, &repl.grammarFlags)
	if err != nil {
		return err
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath, ok := historyPath(); ok {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	out := cmd.OutOrStdout()
	for {
		line, err := ln.Prompt(replPrompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case ":quit", ":q":
			return nil
		}

		ln.AppendHistory(line)
		replLine(out, a, line, format)
	}
}

// historyPath returns history file path in user home directory, history is not kept without one.
func historyPath() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	return filepath.Join(home, historyFile), true
}

// replLine encodes a single line and prints either the result or the error.
func replLine(out io.Writer, a *document.Assembler, line string, format *document.Format) {
	st, err := a.ParseLine(line)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}

	d := &document.Document{Statements: []document.Statement{st}}
	fmt.Fprintln(out, document.Render(d))
	if format != nil {
		if err = document.Write(out, d, *format); err != nil {
			fmt.Fprintln(out, err)
		}
	}
}
