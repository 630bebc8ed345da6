package turso_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/migrate"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", "file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := migrate.RunAll(ctx, db); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleLog(id string, date time.Time) domain.ProductivityLog {
	return domain.ProductivityLog{
		ID:                 id,
		EmployeeName:       "Favour Achumba",
		EmployeeID:         "AIS/004",
		Department:         domain.DeptAccountsFinance,
		Date:               date,
		TaskCategory:       domain.CategoryInvoice,
		TaskDescription:    "Processed vendor invoices, batch \"B\"",
		TaskStatus:         domain.StatusComplete,
		Hours:              3.5,
		ProductivityRating: 4,
		Blockers:           "",
		TasksCarriedOver:   "Reconcile ledger",
	}
}
