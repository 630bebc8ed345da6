package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emiliopalmerini/worklog/internal/export"
	"github.com/emiliopalmerini/worklog/internal/productivity"
)

func TestWriteExport(t *testing.T) {
	logs := productivity.SeedLogs(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	t.Run("csv file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		n, err := writeExport(&bytes.Buffer{}, path, export.FormatCSV, logs)
		if err != nil {
			t.Fatalf("writeExport() error = %v", err)
		}
		if n != len(logs) {
			t.Errorf("wrote %d logs, want %d", n, len(logs))
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != len(logs)+1 {
			t.Errorf("got %d lines, want header plus %d rows", len(lines), len(logs))
		}
	})

	t.Run("json stdout", func(t *testing.T) {
		var stdout bytes.Buffer
		if _, err := writeExport(&stdout, "-", export.FormatJSON, logs[:1]); err != nil {
			t.Fatalf("writeExport() error = %v", err)
		}
		if !strings.HasPrefix(strings.TrimSpace(stdout.String()), "[") {
			t.Errorf("stdout = %q, want a JSON array", stdout.String())
		}
	})

	t.Run("empty view creates no file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		if _, err := writeExport(&bytes.Buffer{}, path, export.FormatCSV, nil); !errors.Is(err, export.ErrNoData) {
			t.Fatalf("writeExport() error = %v, want ErrNoData", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("no file should be created for an empty view")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if _, err := writeExport(&bytes.Buffer{}, "-", "xml", logs); !errors.Is(err, export.ErrUnknownFormat) {
			t.Fatalf("writeExport() error = %v, want ErrUnknownFormat", err)
		}
	})
}
