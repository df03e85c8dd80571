package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sboxscope/sboxscope/internal/loader"
	"github.com/sboxscope/sboxscope/internal/metrics"
	"github.com/sboxscope/sboxscope/internal/ui"
)

func newCheckCmd() *cobra.Command {
	var (
		builtinName string
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "check [FILE|-]",
		Short: "Report whether a table is a permutation of 0..255",
		Long: `check lists the values that never occur and the values that occur more
than once. The exit status is 1 when the table is not a permutation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := loader.DefaultOptions()
			if inputFormat != "" {
				opts.Format = loader.Format(inputFormat)
			}
			in, err := readInput(cmd, args, builtinName, opts)
			if err != nil {
				return err
			}

			pc := metrics.CheckPermutation(&in.SBox)
			out := cmd.OutOrStdout()
			if pc.IsPermutation() {
				fmt.Fprintf(out, "%s %s is a permutation\n", ui.RenderSuccess("✓"), in.Name)
				return nil
			}

			fmt.Fprintf(out, "%s %s is not a permutation\n", ui.RenderError("✗"), in.Name)
			fmt.Fprintln(out, ui.RenderLabelValue("Missing", fmt.Sprintf("%d %v", len(pc.Missing), pc.Missing)))
			fmt.Fprintln(out, ui.RenderLabelValue("Duplicated", fmt.Sprintf("%d %v", len(pc.Duplicates), pc.Duplicates)))
			return errNotPermutation
		},
	}

	cmd.Flags().StringVarP(&builtinName, "builtin", "b", "", "Check a built-in S-box")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "Input format: auto, json, yaml, csv")
	return cmd
}
