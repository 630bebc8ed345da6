package cli

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worklog/internal/adapters/turso"
	"github.com/emiliopalmerini/worklog/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Apply pending migrations, or migrate up or down to a specific version.

Examples:
  worklog migrate          # apply all pending migrations
  worklog migrate 1        # migrate to version 1 (up or down)
  worklog migrate 0        # revert everything
  worklog migrate status   # show current and pending versions`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

// withDB opens the configured database without applying migrations.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, db *sql.DB) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := loadConfig(true)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := turso.NewDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return fn(ctx, db)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	target := -1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("invalid version %q: expected a non-negative integer", args[0])
		}
		target = v
	}
	return withDB(cmd, func(ctx context.Context, db *sql.DB) error {
		return migrateTo(ctx, cmd, db, target)
	})
}

func migrateTo(ctx context.Context, cmd *cobra.Command, db *sql.DB, target int) error {
	out := cmd.OutOrStdout()
	m := migrate.New(db, migrate.WithOutput(out))

	current, _, err := m.Version(ctx)
	if err != nil {
		return err
	}

	var n int
	if target >= 0 && target < current {
		fmt.Fprintf(out, "Migrating down to version %d\n", target)
		n, err = m.DownTo(ctx, target)
	} else {
		fmt.Fprintln(out, "Applying migrations")
		n, err = m.UpTo(ctx, target)
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	current, _, err = m.Version(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintf(out, "Nothing to do, at version %d\n", current)
		return nil
	}
	fmt.Fprintf(out, "Applied %d migration(s), now at version %d\n", n, current)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	return withDB(cmd, func(ctx context.Context, db *sql.DB) error {
		st, err := migrate.New(db).Status(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Current version: %d\n", st.Current)
		fmt.Fprintf(out, "Latest version:  %d\n", st.Latest)
		if st.Dirty {
			fmt.Fprintln(out, "State:           dirty (a migration was interrupted)")
		}
		if len(st.Pending) == 0 {
			fmt.Fprintln(out, "Up to date.")
			return nil
		}
		fmt.Fprintln(out, "Pending:")
		for _, mig := range st.Pending {
			fmt.Fprintf(out, "  %03d_%s\n", mig.Version, mig.Name)
		}
		return nil
	})
}
