package turso

import (
	"database/sql"

	"github.com/emiliopalmerini/worklog/internal/ports"
)

// Repositories holds all turso repository implementations as port interfaces.
type Repositories struct {
	Logs     ports.LogRepository
	Insights ports.InsightRunRepository
}

// NewRepositories creates all turso repository implementations from a database connection.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Logs:     NewLogRepository(db),
		Insights: NewInsightRunRepository(db),
	}
}
