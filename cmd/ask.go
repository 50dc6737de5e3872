package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexkit/case-cli/internal/assemble"
	"github.com/lexkit/case-cli/internal/llm"
)

var (
	askCase   string
	askPrompt string
)

var askCmd = &cobra.Command{
	Use:   "ask [file...]",
	Short: "Ask a question about a case folder or a set of files",
	Long:  "Assembles the extracted text of a case folder (--case) or the given files into one context and runs the question through the model fallback chain.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if askPrompt == "" {
			return eris.New("--prompt is required")
		}
		if askCase == "" && len(args) == 0 {
			return eris.New("either --case or at least one file is required")
		}

		env, err := initPipeline(ctx, "ask")
		if err != nil {
			return err
		}
		defer env.Close()

		var docContext string
		if askCase != "" {
			aggregate, perFileErrors, err := env.Archive.OpenCase(ctx, askCase, env.Registry, cfg.Context.BudgetChars, cfg.Extract.Concurrency)
			if err != nil {
				return err
			}
			for name, reason := range perFileErrors {
				fmt.Fprintf(os.Stderr, "warning: %s: %s\n", name, reason)
			}
			docContext = aggregate
		} else {
			files, err := readFiles(args)
			if err != nil {
				return err
			}
			results := env.Registry.Batch(ctx, files, cfg.Extract.Concurrency)
			for _, res := range results {
				if !res.OK {
					fmt.Fprintf(os.Stderr, "warning: %s: %s\n", res.SourceName, res.FailureReason)
				}
			}
			docContext = assemble.Assemble(results, cfg.Context.BudgetChars)
		}

		var sb strings.Builder
		if docContext != "" {
			sb.WriteString("Belgeler:\n\n")
			sb.WriteString(docContext)
			sb.WriteString("\n\n")
		}
		sb.WriteString("Soru: ")
		sb.WriteString(askPrompt)

		resp, err := env.Resolver.Complete(ctx, llm.Request{
			Prompt:    sb.String(),
			MaxTokens: cfg.LLM.MaxTokens,
		})
		if err != nil {
			return err
		}

		zap.L().Info("completion finished", zap.String("model", resp.Model))

		fmt.Println(resp.Text)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askCase, "case", "", "case folder to use as context")
	askCmd.Flags().StringVar(&askPrompt, "prompt", "", "question to ask")
	rootCmd.AddCommand(askCmd)
}
