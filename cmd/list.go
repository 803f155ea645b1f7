package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"eprdesc/internal/db"
	"eprdesc/internal/ui"
)

var tagFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged descriptors",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), tagFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&tagFlag, "tag", "", "Show only descriptors containing a section with this tag")
	rootCmd.AddCommand(listCmd)
}

type listRow struct {
	id       int64
	fileName string
	title    string
	sections int
	params   int
}

func RunList(w io.Writer, tagFilter string) error {
	if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
		return fmt.Errorf("run `eprdesc init` first")
	}

	sqlDB, err := db.Open(catalogPath)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer sqlDB.Close()

	query := `
		SELECT f.id, f.file_path, f.title,
			(SELECT COUNT(*) FROM sections s WHERE s.file_id = f.id),
			(SELECT COUNT(*) FROM parameters p JOIN sections s ON p.section_id = s.id WHERE s.file_id = f.id)
		FROM files f`
	var args []any
	if tagFilter != "" {
		query += ` WHERE EXISTS (SELECT 1 FROM sections s WHERE s.file_id = f.id AND s.tag = ?)`
		args = append(args, tagFilter)
	}
	query += ` ORDER BY f.file_path`

	rows, err := sqlDB.Query(query, args...)
	if err != nil {
		return fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var r listRow
		var filePath string
		if err := rows.Scan(&r.id, &filePath, &r.title, &r.sections, &r.params); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		r.fileName = filepath.Base(filePath)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	if len(results) == 0 {
		return nil
	}

	// Compute column widths
	idWidth, fileWidth, titleWidth := 0, 0, 0
	for _, r := range results {
		if n := len(fmt.Sprintf("%d", r.id)); n > idWidth {
			idWidth = n
		}
		if len(r.fileName) > fileWidth {
			fileWidth = len(r.fileName)
		}
		if len(r.title) > titleWidth {
			titleWidth = len(r.title)
		}
	}

	for _, r := range results {
		ui.ListRow(w, r.id, r.fileName, r.title, r.sections, r.params, idWidth, fileWidth, titleWidth)
	}

	return nil
}
