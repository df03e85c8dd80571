package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sboxscope/sboxscope/internal/builtin"
	"github.com/sboxscope/sboxscope/internal/ui"
)

// record is the JSON input document accepted by analyze
type record struct {
	Name string `json:"name"`
	SBox []int  `json:"sbox"`
}

func newBuiltinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "builtin",
		Short: "List or export the built-in reference S-boxes",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List built-in S-boxes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, e := range builtin.All() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.RenderLabelValue(e.Name, e.Description))
			}
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export NAME",
		Short: "Print a built-in S-box as a JSON input record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ok := builtin.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown built-in s-box %q", args[0])
			}
			table := e.Table()
			enc := json.NewEncoder(cmd.OutOrStdout())
			return enc.Encode(record{Name: e.Name, SBox: table.Ints()})
		},
	}

	cmd.AddCommand(listCmd, exportCmd)
	return cmd
}
