package turso

import (
	"database/sql"
	"fmt"

	"github.com/emiliopalmerini/worklog/internal/infrastructure/config"
	"github.com/emiliopalmerini/worklog/internal/infrastructure/database"
)

// NewDB opens the configured database, falling back to the local file.
func NewDB(cfg config.Database) (*sql.DB, error) {
	url, err := cfg.ResolveURL()
	if err != nil {
		return nil, err
	}
	if database.IsRemote(url) && cfg.AuthToken == "" {
		return nil, fmt.Errorf("WORKLOG_AUTH_TOKEN is required for remote database %s", url)
	}

	client, err := database.New(url, cfg.AuthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return client.DB, nil
}
