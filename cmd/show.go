package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"eprdesc/internal/db"
	"eprdesc/internal/descriptor"
	"eprdesc/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id|path>",
	Short: "Pretty-print a parsed descriptor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, arg string) error {
	path := arg

	// A numeric argument is a catalog id; anything else is a file path.
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		resolved, err := resolvePath(id)
		if err != nil {
			return err
		}
		path = resolved
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := descriptor.Parse(path, content)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	for i, sec := range doc.Sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		ui.SectionHeader(w, sec.Tag, sec.Version, sec.Title)

		keyWidth := sectionKeyWidth(sec)
		for _, e := range sec.Entries {
			switch v := e.(type) {
			case descriptor.Parameter:
				ui.ParamLine(w, "  ", v.Key, v.Value, keyWidth)
			case *descriptor.DeviceBlock:
				ui.DeviceHeader(w, v.Name, v.Version)
				for _, p := range v.Params {
					ui.ParamLine(w, "    ", p.Key, p.Value, keyWidth)
				}
			}
		}
	}

	return nil
}

func resolvePath(id int64) (string, error) {
	if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
		return "", fmt.Errorf("run `eprdesc init` first")
	}

	sqlDB, err := db.Open(catalogPath)
	if err != nil {
		return "", fmt.Errorf("opening catalog: %w", err)
	}
	defer sqlDB.Close()

	var path string
	if err := sqlDB.QueryRow(`SELECT file_path FROM files WHERE id = ?`, id).Scan(&path); err != nil {
		return "", fmt.Errorf("descriptor %d not found", id)
	}
	return path, nil
}

func sectionKeyWidth(sec *descriptor.Section) int {
	width := 0
	for _, e := range sec.Entries {
		switch v := e.(type) {
		case descriptor.Parameter:
			if len(v.Key) > width {
				width = len(v.Key)
			}
		case *descriptor.DeviceBlock:
			for _, p := range v.Params {
				if len(p.Key) > width {
					width = len(p.Key)
				}
			}
		}
	}
	return width
}
