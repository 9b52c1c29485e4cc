// Package cli implements the brandscan command: one-shot transcript
// analysis from the terminal, sharing the pipeline with the HTTP service.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "brandscan <transcript-file>",
		Short:        "Analyze brand sentiment in a conversation transcript",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().StringSlice("brands", nil, "Restrict analysis to these brands")
	root.Flags().String("catalog", "", "Path to the brand catalog workbook (.xlsx)")
	root.Flags().String("out", "", "Write the result JSON to this file instead of stdout")
	root.Flags().Bool("save", false, "Persist the result to the data directory")
	root.Flags().String("data-dir", "data", "Result directory used with --save")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
