package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"eprdesc/internal/db"
	"eprdesc/internal/descriptor"
	"eprdesc/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Parse descriptor files and record them in the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunImport(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func RunImport(w io.Writer, paths []string) error {
	if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
		return fmt.Errorf("run `eprdesc init` first")
	}

	sqlDB, err := db.Open(catalogPath)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer sqlDB.Close()

	count := 0
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		doc, err := descriptor.Parse(path, content)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		pd := descriptor.Flatten(doc, path)

		var id int64
		err = sqlDB.QueryRow(`SELECT id FROM files WHERE file_path = ?`, path).Scan(&id)
		isNew := errors.Is(err, sql.ErrNoRows)
		if err != nil && !isNew {
			return fmt.Errorf("querying %s: %w", path, err)
		}

		if err := storeFile(sqlDB, path, pd.Name, id, isNew, doc); err != nil {
			return fmt.Errorf("storing %s: %w", path, err)
		}

		if isNew {
			ui.NewLine(w, path)
		} else {
			ui.UpdLine(w, path)
		}
		count++
	}

	ui.SummaryLine(w, count)
	return nil
}

// storeFile records one parsed descriptor in a single transaction. On
// re-import the previous sections are replaced wholesale; parameters go
// with them via the FK cascade.
func storeFile(sqlDB *sql.DB, path, title string, id int64, isNew bool, doc *descriptor.Document) error {
	tx, err := sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if isNew {
		res, err := tx.Exec(`INSERT INTO files (file_path, title) VALUES (?, ?)`, path, title)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting file: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			tx.Rollback()
			return fmt.Errorf("reading file id: %w", err)
		}
	} else {
		if _, err := tx.Exec(`UPDATE files SET title = ?, updated_at = datetime('now') WHERE id = ?`, title, id); err != nil {
			tx.Rollback()
			return fmt.Errorf("updating file: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM sections WHERE file_id = ?`, id); err != nil {
			tx.Rollback()
			return fmt.Errorf("clearing sections: %w", err)
		}
	}

	if err := storeDocument(tx, id, doc); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func storeDocument(tx *sql.Tx, fileID int64, doc *descriptor.Document) error {
	for si, sec := range doc.Sections {
		res, err := tx.Exec(
			`INSERT INTO sections (file_id, tag, version, title, position) VALUES (?, ?, ?, ?, ?)`,
			fileID, sec.Tag, sec.Version, sec.Title, si,
		)
		if err != nil {
			return fmt.Errorf("inserting section %s: %w", sec.Tag, err)
		}
		sectionID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading section id: %w", err)
		}

		pos := 0
		insert := func(device string, p descriptor.Parameter) error {
			_, err := tx.Exec(
				`INSERT INTO parameters (section_id, device, key, value, line, position) VALUES (?, ?, ?, ?, ?, ?)`,
				sectionID, device, p.Key, p.Value, p.Line, pos,
			)
			pos++
			return err
		}

		for _, e := range sec.Entries {
			switch v := e.(type) {
			case descriptor.Parameter:
				if err := insert("", v); err != nil {
					return fmt.Errorf("inserting parameter %s: %w", v.Key, err)
				}
			case *descriptor.DeviceBlock:
				for _, p := range v.Params {
					if err := insert(v.Name, p); err != nil {
						return fmt.Errorf("inserting parameter %s: %w", p.Key, err)
					}
				}
			}
		}
	}
	return nil
}
