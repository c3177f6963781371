package db

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/shamaiem10/Vytal/migrations"
	"gorm.io/gorm"
)

// ErrLegacyDiarySchema reports a health_diary table created without user_id
// by the single-user tooling. Such a store has to be exported and recreated.
var ErrLegacyDiarySchema = errors.New("legacy single-user health_diary schema (no user_id column) is not supported")

type migration struct {
	version    string
	order      int
	name       string
	statements []string
}

// MigrateSchema applies every pending embedded migration. It is safe to call
// on an already migrated database.
func MigrateSchema(database *gorm.DB) error {
	return applyEmbeddedMigrations(database)
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	if err := rejectLegacyDiary(database); err != nil {
		return err
	}

	if err := database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := readMigrations(embeddedmigrations.Files)
	if err != nil {
		return err
	}

	var applied []string
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&applied).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}
	done := make(map[string]bool, len(applied))
	for _, version := range applied {
		done[version] = true
	}

	for _, item := range pending {
		if done[item.version] {
			continue
		}
		if err := applyMigration(database, item); err != nil {
			return err
		}
	}
	return nil
}

func rejectLegacyDiary(database *gorm.DB) error {
	migrator := database.Migrator()
	if !migrator.HasTable("health_diary") {
		return nil
	}
	if migrator.HasColumn("health_diary", "user_id") {
		return nil
	}
	return ErrLegacyDiarySchema
}

// readMigrations loads "<version>_<name>.sql" files ordered by numeric version.
func readMigrations(files fs.FS) ([]migration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list embedded migrations: %w", err)
	}

	migrations := make([]migration, 0, len(names))
	owners := make(map[int]string, len(names))
	for _, name := range names {
		version, _, found := strings.Cut(path.Base(name), "_")
		order, convErr := strconv.Atoi(version)
		if !found || convErr != nil {
			continue
		}
		if owner, taken := owners[order]; taken {
			return nil, fmt.Errorf("migrations %s and %s share version %d", owner, name, order)
		}
		owners[order] = name

		raw, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		statements := splitStatements(string(raw))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s has no statements", name)
		}
		migrations = append(migrations, migration{
			version:    version,
			order:      order,
			name:       name,
			statements: statements,
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].order < migrations[j].order
	})
	return migrations, nil
}

func applyMigration(database *gorm.DB, item migration) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range item.statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s: %w", item.name, err)
			}
		}
		if err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, item.version, item.name).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", item.name, err)
		}
		return nil
	})
}

func splitStatements(script string) []string {
	statements := make([]string, 0)
	for _, part := range strings.Split(script, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
