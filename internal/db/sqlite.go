package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQLite opens the diary store at dbPath, creating its directory, and
// brings the schema up to date before returning.
func OpenSQLite(dbPath string, log *logrus.Logger) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			gormLogWriter{log: log},
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("open sql db: %w", err)
	}
	// sqlite admits a single writer
	sqlDB.SetMaxOpenConns(1)

	if err := applyEmbeddedMigrations(database); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}

	return database, nil
}

// gormLogWriter routes gorm's slow-query and error traces to logrus at warn.
type gormLogWriter struct {
	log *logrus.Logger
}

func (writer gormLogWriter) Printf(format string, args ...interface{}) {
	writer.log.Warnf(format, args...)
}
