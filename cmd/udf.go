package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/lexkit/case-cli/internal/udf"
)

var udfCmd = &cobra.Command{
	Use:   "udf",
	Short: "Work with UDF document containers",
}

var udfExtractCmd = &cobra.Command{
	Use:   "extract <file.udf>",
	Short: "Print the text content of a UDF container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read %s", args[0])
		}

		text, err := udf.ExtractText(data)
		if err != nil {
			return err
		}

		fmt.Println(text)
		return nil
	},
}

var udfPackOut string

var udfPackCmd = &cobra.Command{
	Use:   "pack <file.txt>",
	Short: "Pack a plain-text file into a UDF container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read %s", args[0])
		}

		var buf bytes.Buffer
		if err := udf.Pack(&buf, string(data)); err != nil {
			return err
		}

		if err := os.WriteFile(udfPackOut, buf.Bytes(), 0o644); err != nil {
			return eris.Wrapf(err, "write %s", udfPackOut)
		}

		fmt.Println(udfPackOut)
		return nil
	},
}

func init() {
	udfPackCmd.Flags().StringVar(&udfPackOut, "out", "out.udf", "output container path")
	udfCmd.AddCommand(udfExtractCmd, udfPackCmd)
	rootCmd.AddCommand(udfCmd)
}
