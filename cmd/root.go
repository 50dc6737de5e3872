package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexkit/case-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "case-cli",
	Short: "Legal case artifact ingestion and archive tool",
	Long:  "Extracts text from court artifacts (UDF, PDF, Office, images via vision OCR), files them into a hierarchical case archive, and tracks procedural deadlines and hearing dates.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
