package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexkit/case-cli/internal/assemble"
)

var ingestLocal bool

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Extract text from artifact files and print the assembled context",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		files, err := readFiles(args)
		if err != nil {
			return err
		}

		reg, cleanup, err := openRegistry(ctx, ingestLocal)
		if err != nil {
			return err
		}
		defer cleanup()

		results := reg.Batch(ctx, files, cfg.Extract.Concurrency)

		failed := 0
		for _, res := range results {
			if !res.OK {
				failed++
				fmt.Fprintf(os.Stderr, "warning: %s: %s\n", res.SourceName, res.FailureReason)
			}
		}

		zap.L().Info("ingest complete",
			zap.Int("files", len(results)),
			zap.Int("failed", failed),
		)

		fmt.Println(assemble.Assemble(results, cfg.Context.BudgetChars))
		return nil
	},
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestLocal, "local", false, "skip the vision OCR fallback (no API key needed)")
	rootCmd.AddCommand(ingestCmd)
}
