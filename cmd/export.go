package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"eprdesc/internal/descriptor"
	"eprdesc/internal/export"
)

var (
	formatFlag string
	outFlag    string
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Serialize a parsed descriptor to JSON or YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunExport(cmd.OutOrStdout(), args[0], formatFlag, outFlag)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "Output format (json or yaml)")
	exportCmd.Flags().StringVarP(&outFlag, "out", "o", "", "Write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func RunExport(w io.Writer, path, formatName, outPath string) error {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := descriptor.Parse(path, content)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	out := w
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}

	if err := export.Write(out, doc, format); err != nil {
		return err
	}

	if outPath != "" {
		fmt.Fprintf(w, "wrote %s\n", outPath)
	}

	return nil
}
