package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sboxscope/sboxscope/internal/builtin"
	"github.com/sboxscope/sboxscope/internal/loader"
)

// readInput resolves the table from --builtin, a file argument or stdin ("-")
func readInput(cmd *cobra.Command, args []string, builtinName string, opts loader.Options) (*loader.Input, error) {
	if builtinName != "" {
		if len(args) > 0 {
			return nil, errors.New("give either a file or --builtin, not both")
		}
		e, ok := builtin.Lookup(builtinName)
		if !ok {
			return nil, fmt.Errorf("unknown built-in s-box %q (see `sboxscope builtin list`)", builtinName)
		}
		return &loader.Input{Name: e.Name, SBox: e.Table()}, nil
	}

	if len(args) == 0 {
		return nil, errors.New("an input file or --builtin is required")
	}

	l := loader.New(opts)
	if args[0] != "-" {
		return l.LoadFile(args[0])
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return l.Load(data, opts.Format, "stdin")
}
