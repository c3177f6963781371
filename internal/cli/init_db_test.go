package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestRunInitDBCommandCreatesSchema(t *testing.T) {
	t.Parallel()

	log := logrus.New()
	log.Out = io.Discard

	var out bytes.Buffer
	dbPath := filepath.Join(t.TempDir(), "nested", "vytal.db")
	if err := RunInitDBCommand(dbPath, &out, log); err != nil {
		t.Fatalf("RunInitDBCommand returned error: %v", err)
	}

	report := out.String()
	for _, table := range []string{"users", "health_diary", "prescriptions", "schema_migrations"} {
		if !strings.Contains(report, "- "+table+"\n") {
			t.Fatalf("expected table %q in report, got %q", table, report)
		}
	}

	if err := RunInitDBCommand(dbPath, io.Discard, log); err != nil {
		t.Fatalf("second RunInitDBCommand returned error: %v", err)
	}
}
