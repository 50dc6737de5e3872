package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexkit/case-cli/internal/extract"
)

var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Manage the case archive",
}

var (
	caseCategory string
	caseCourt    string
	caseNumber   string
	caseParties  string
)

var caseCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new case folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := initArchive()
		if err != nil {
			return err
		}

		casePath, err := st.CreateCase(caseCategory, caseCourt, caseNumber, caseParties)
		if err != nil {
			return err
		}

		fmt.Println(casePath)
		return nil
	},
}

var caseAddCmd = &cobra.Command{
	Use:   "add <case-path> <file>...",
	Short: "Copy artifact files into a case folder",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := initArchive()
		if err != nil {
			return err
		}

		files, err := readFiles(args[1:])
		if err != nil {
			return err
		}

		if err := st.AddArtifacts(args[0], files); err != nil {
			return err
		}

		fmt.Printf("%d artifacts added to %s\n", len(files), args[0])
		return nil
	},
}

var caseOpenLocal bool

var caseOpenCmd = &cobra.Command{
	Use:   "open <case-path>",
	Short: "Extract a case folder's artifacts into one aggregate context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		reg, cleanup, err := openRegistry(ctx, caseOpenLocal)
		if err != nil {
			return err
		}
		defer cleanup()

		st, _, err := initArchive()
		if err != nil {
			return err
		}

		aggregate, perFileErrors, err := st.OpenCase(ctx, args[0], reg, cfg.Context.BudgetChars, cfg.Extract.Concurrency)
		if err != nil {
			return err
		}

		fmt.Println(aggregate)

		for name, reason := range perFileErrors {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", name, reason)
		}
		return nil
	},
}

var caseSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search case folders and artifact names",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := initArchive()
		if err != nil {
			return err
		}

		hits, err := st.Search(args[0])
		if err != nil {
			return err
		}

		if len(hits) == 0 {
			fmt.Println("no matches")
			return nil
		}
		for _, hit := range hits {
			if hit.IsDir {
				fmt.Printf("%s/ (%d files)\n", hit.Path, hit.FileCount)
			} else {
				fmt.Println(hit.Path)
			}
		}
		return nil
	},
}

// openRegistry builds an extraction registry: with the vision fallback
// chain, or archive-only when local is set.
func openRegistry(ctx context.Context, local bool) (*extract.Registry, func(), error) {
	if local {
		_, reg, err := initArchive()
		return reg, func() {}, err
	}

	env, err := initPipeline(ctx, "ask")
	if err != nil {
		return nil, nil, err
	}
	return env.Registry, env.Close, nil
}

// readFiles loads the named files into memory.
func readFiles(paths []string) ([]extract.File, error) {
	files := make([]extract.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, eris.Wrapf(err, "read %s", p)
		}
		files = append(files, extract.File{Name: filepath.Base(p), Data: data})
	}
	zap.L().Debug("files loaded", zap.Int("count", len(files)))
	return files, nil
}

func init() {
	caseCreateCmd.Flags().StringVar(&caseCategory, "category", "", "case category (default Genel)")
	caseCreateCmd.Flags().StringVar(&caseCourt, "court", "", "court name")
	caseCreateCmd.Flags().StringVar(&caseNumber, "case-no", "", "case number, e.g. 2024-123")
	caseCreateCmd.Flags().StringVar(&caseParties, "parties", "", "party names")
	caseCreateCmd.MarkFlagRequired("court")
	caseCreateCmd.MarkFlagRequired("case-no")

	caseOpenCmd.Flags().BoolVar(&caseOpenLocal, "local", false, "skip the vision OCR fallback (no API key needed)")

	caseCmd.AddCommand(caseCreateCmd, caseAddCmd, caseOpenCmd, caseSearchCmd)
	rootCmd.AddCommand(caseCmd)
}
