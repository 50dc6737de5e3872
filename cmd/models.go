package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexkit/case-cli/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Print the ranked model candidate chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("ask"); err != nil {
			return err
		}

		resolver, svc, err := llm.NewResolverFromConfig(ctx, cfg.LLM)
		if err != nil {
			return err
		}
		env := &pipelineEnv{service: svc}
		defer env.Close()

		for _, cand := range resolver.Candidates(ctx) {
			caps := "text"
			if cand.Capability.Vision {
				caps = "text+vision"
			}
			fmt.Printf("%d  %-40s %s\n", cand.Rank, cand.Identifier, caps)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
