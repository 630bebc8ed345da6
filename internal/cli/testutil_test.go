package cli

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/worklog/internal/adapters/otel"
	"github.com/emiliopalmerini/worklog/internal/infrastructure/config"
	"github.com/emiliopalmerini/worklog/internal/logger"
	"github.com/emiliopalmerini/worklog/internal/migrate"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", "file:"+filepath.Join(t.TempDir(), "worklog.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// testApp returns an AppContext over a migrated temp database with seeding
// and insights disabled.
func testApp(t *testing.T) *AppContext {
	t.Helper()

	db := openTestDB(t)
	if err := migrate.RunAll(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	cfg := &config.App{
		Insight: config.Insight{Provider: "gemini"},
		Seed:    config.Seed{Enabled: false},
	}
	app := newAppContext(cfg, logger.NewNop(), db, otel.NewNoOpExporter())
	app.Logs.Load(context.Background())
	return app
}
