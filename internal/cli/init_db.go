package cli

import (
	"fmt"
	"io"

	"github.com/shamaiem10/Vytal/internal/db"
	"github.com/sirupsen/logrus"
)

// RunInitDBCommand creates or upgrades the schema at dbPath and reports the
// tables that now exist.
func RunInitDBCommand(dbPath string, out io.Writer, log *logrus.Logger) error {
	database, err := db.OpenSQLite(dbPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("open sql db: %w", err)
	}
	defer sqlDB.Close()

	tables, err := database.Migrator().GetTables()
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}

	fmt.Fprintf(out, "Database initialized at %s\n", dbPath)
	for _, table := range tables {
		fmt.Fprintf(out, "  - %s\n", table)
	}
	return nil
}
