package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	database := openTestDB(t)

	for _, table := range []string{"users", "health_diary", "prescriptions", "schema_migrations"} {
		if !database.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}
	if !database.Migrator().HasColumn("prescriptions", "source_digest") {
		t.Fatal("expected prescriptions.source_digest to exist")
	}

	var versions []string
	if err := database.Raw(`SELECT version FROM schema_migrations ORDER BY version`).Scan(&versions).Error; err != nil {
		t.Fatalf("load applied versions: %v", err)
	}
	if !reflect.DeepEqual(versions, []string{"001", "002"}) {
		t.Fatalf("expected versions [001 002], got %#v", versions)
	}
}

func TestMigrateSchemaIsIdempotent(t *testing.T) {
	database := openTestDB(t)

	if err := MigrateSchema(database); err != nil {
		t.Fatalf("second MigrateSchema returned error: %v", err)
	}

	var count int64
	if err := database.Raw(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count).Error; err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 recorded migrations, got %d", count)
	}
}

func TestOpenSQLiteRejectsLegacySingleUserDiary(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "vytal-legacy.db")
	seedLegacySingleUserSchema(t, databasePath)

	_, err := OpenSQLite(databasePath, nil)
	if !errors.Is(err, ErrLegacyDiarySchema) {
		t.Fatalf("expected ErrLegacyDiarySchema, got %v", err)
	}
}

func TestOpenSQLiteEnforcesForeignKeys(t *testing.T) {
	database := openTestDB(t)

	err := database.Exec(`INSERT INTO health_diary (user_id, date) VALUES (?, ?)`, 999, "2024-01-01").Error
	if err == nil {
		t.Fatal("expected foreign key violation for unknown user")
	}
}

func TestReadMigrationsOrdersByNumericVersionAndSkipsOtherFiles(t *testing.T) {
	files := fstest.MapFS{
		"10_late.sql":   {Data: []byte("SELECT 1;")},
		"002_early.sql": {Data: []byte("SELECT 2; SELECT 3;")},
		"notes.sql":     {Data: []byte("SELECT 4;")},
		"README.md":     {Data: []byte("notes")},
		"embed.go":      {Data: []byte("package migrations")},
	}

	migrations, err := readMigrations(files)
	if err != nil {
		t.Fatalf("readMigrations returned error: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].name != "002_early.sql" || migrations[1].name != "10_late.sql" {
		t.Fatalf("unexpected order: %s, %s", migrations[0].name, migrations[1].name)
	}
	if len(migrations[0].statements) != 2 {
		t.Fatalf("expected 2 statements in 002_early.sql, got %d", len(migrations[0].statements))
	}
}

func TestReadMigrationsRejectsBadSets(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"duplicate version": {
			"001_a.sql": {Data: []byte("SELECT 1;")},
			"1_b.sql":   {Data: []byte("SELECT 2;")},
		},
		"empty script": {
			"003_empty.sql": {Data: []byte(" ; \n")},
		},
	}

	for name, files := range tests {
		if _, err := readMigrations(files); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestSplitStatementsDropsBlankParts(t *testing.T) {
	statements := splitStatements("CREATE TABLE a (id INTEGER);\n\n ;CREATE INDEX b ON a(id);\n")
	expected := []string{"CREATE TABLE a (id INTEGER)", "CREATE INDEX b ON a(id)"}
	if !reflect.DeepEqual(statements, expected) {
		t.Fatalf("expected %#v, got %#v", expected, statements)
	}
}

func seedLegacySingleUserSchema(t *testing.T, databasePath string) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	if err != nil {
		t.Fatalf("open legacy sqlite: %v", err)
	}
	statements := []string{
		`CREATE TABLE health_diary (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  date TEXT NOT NULL,
  time TEXT,
  mood INTEGER,
  symptoms TEXT,
  sugar REAL,
  bp TEXT,
  hr REAL,
  temp REAL,
  notes TEXT
)`,
		`CREATE TABLE prescriptions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  original_text TEXT,
  medication TEXT,
  upload_date TEXT,
  status TEXT
)`,
		`INSERT INTO health_diary (date, mood) VALUES ('2024-01-01', 3)`,
	}
	for _, statement := range statements {
		if err := database.Exec(statement).Error; err != nil {
			t.Fatalf("seed legacy schema: %v", err)
		}
	}

	var sqlDB *sql.DB
	sqlDB, err = database.DB()
	if err != nil {
		t.Fatalf("open legacy sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close legacy sqlite: %v", err)
	}
}
