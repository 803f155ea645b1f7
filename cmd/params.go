package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"eprdesc/internal/db"
	"eprdesc/internal/ui"
)

var (
	keyFlag     string
	sectionFlag string
)

var paramsCmd = &cobra.Command{
	Use:   "params <id>",
	Short: "List a cataloged descriptor's parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunParams(cmd.OutOrStdout(), args[0], keyFlag, sectionFlag)
	},
}

func init() {
	paramsCmd.Flags().StringVar(&keyFlag, "key", "", "Show only parameters with this key")
	paramsCmd.Flags().StringVar(&sectionFlag, "section", "", "Show only parameters under this section tag")
	rootCmd.AddCommand(paramsCmd)
}

func RunParams(w io.Writer, rawID, keyFilter, sectionFilter string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid descriptor ID: %s", rawID)
	}

	if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
		return fmt.Errorf("run `eprdesc init` first")
	}

	sqlDB, err := db.Open(catalogPath)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer sqlDB.Close()

	var existingID int64
	err = sqlDB.QueryRow(`SELECT id FROM files WHERE id = ?`, id).Scan(&existingID)
	if err != nil {
		return fmt.Errorf("descriptor %d not found", id)
	}

	rows, err := sqlDB.Query(`
		SELECT s.tag, p.device, p.key, p.value
		FROM parameters p
		JOIN sections s ON p.section_id = s.id
		WHERE s.file_id = ?
		ORDER BY s.position, p.position
	`, id)
	if err != nil {
		return fmt.Errorf("querying parameters: %w", err)
	}
	defer rows.Close()

	var found bool
	for rows.Next() {
		var tag, device, key, value string
		if err := rows.Scan(&tag, &device, &key, &value); err != nil {
			return fmt.Errorf("scanning parameter row: %w", err)
		}

		if keyFilter != "" && key != keyFilter {
			continue
		}
		if sectionFilter != "" && tag != sectionFilter {
			continue
		}

		ui.ParamRow(w, tag, device, key, value)
		found = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating parameter rows: %w", err)
	}

	if !found {
		fmt.Fprintf(w, "no matching parameters for descriptor %d\n", id)
	}

	return nil
}
