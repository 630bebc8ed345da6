package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/emiliopalmerini/worklog/migrations"
)

var upPattern = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

// Migration is a single versioned schema change.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// Status describes where a database stands relative to the embedded migrations.
type Status struct {
	Current int
	Latest  int
	Dirty   bool
	Pending []Migration
}

// Migrator applies embedded migrations to a database and reports progress
// to out.
type Migrator struct {
	db  *sql.DB
	src fs.FS
	out io.Writer
}

type Option func(*Migrator)

// WithOutput directs progress lines to w.
func WithOutput(w io.Writer) Option {
	return func(m *Migrator) { m.out = w }
}

// WithSource replaces the embedded migrations with fsys.
func WithSource(fsys fs.FS) Option {
	return func(m *Migrator) { m.src = fsys }
}

func New(db *sql.DB, opts ...Option) *Migrator {
	m := &Migrator{db: db, src: migrations.FS, out: io.Discard}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RunAll applies every pending migration silently.
func RunAll(ctx context.Context, db *sql.DB) error {
	_, err := New(db).Up(ctx)
	return err
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// Version returns the applied version and whether the last run was interrupted.
func (m *Migrator) Version(ctx context.Context) (int, bool, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, false, err
	}

	var version, dirty int
	err := m.db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version, &dirty)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty == 1, nil
}

func (m *Migrator) setVersion(ctx context.Context, version int, dirty bool) error {
	dirtyInt := 0
	if dirty {
		dirtyInt = 1
	}
	if _, err := m.db.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
		return err
	}
	if version == 0 {
		return nil
	}
	_, err := m.db.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`, version, dirtyInt)
	return err
}

// Load reads the migration source, sorted by version.
func (m *Migrator) Load() ([]Migration, error) {
	entries, err := fs.ReadDir(m.src, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var result []Migration
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		matches := upPattern.FindStringSubmatch(e.Name())
		if matches == nil {
			continue
		}
		version, _ := strconv.Atoi(matches[1])

		up, err := fs.ReadFile(m.src, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		down, _ := fs.ReadFile(m.src, fmt.Sprintf("%s_%s.down.sql", matches[1], matches[2]))

		result = append(result, Migration{
			Version: version,
			Name:    matches[2],
			UpSQL:   string(up),
			DownSQL: string(down),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})
	return result, nil
}

// Status compares the database against the migration source.
func (m *Migrator) Status(ctx context.Context) (*Status, error) {
	current, dirty, err := m.Version(ctx)
	if err != nil {
		return nil, err
	}
	all, err := m.Load()
	if err != nil {
		return nil, err
	}

	st := &Status{Current: current, Dirty: dirty}
	for _, mig := range all {
		st.Latest = mig.Version
		if mig.Version > current {
			st.Pending = append(st.Pending, mig)
		}
	}
	return st, nil
}

// Up applies every pending migration and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	return m.UpTo(ctx, -1)
}

// UpTo applies pending migrations up to and including target. A negative
// target means all of them.
func (m *Migrator) UpTo(ctx context.Context, target int) (int, error) {
	st, err := m.Status(ctx)
	if err != nil {
		return 0, err
	}
	if st.Dirty {
		return 0, fmt.Errorf("database is in dirty state at version %d", st.Current)
	}

	count := 0
	for _, mig := range st.Pending {
		if target >= 0 && mig.Version > target {
			break
		}
		if err := m.run(ctx, mig, true); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// DownTo reverts applied migrations until the version equals target.
func (m *Migrator) DownTo(ctx context.Context, target int) (int, error) {
	current, dirty, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}
	if dirty {
		return 0, fmt.Errorf("database is in dirty state at version %d", current)
	}
	all, err := m.Load()
	if err != nil {
		return 0, err
	}

	count := 0
	for i := len(all) - 1; i >= 0; i-- {
		mig := all[i]
		if mig.Version > current {
			continue
		}
		if mig.Version <= target {
			break
		}
		if mig.DownSQL == "" {
			return count, fmt.Errorf("no down migration for version %d", mig.Version)
		}
		if err := m.run(ctx, mig, false); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (m *Migrator) run(ctx context.Context, mig Migration, up bool) error {
	direction, body, target := "up", mig.UpSQL, mig.Version
	if !up {
		direction, body, target = "down", mig.DownSQL, mig.Version-1
	}
	fmt.Fprintf(m.out, "  %s %03d_%s\n", direction, mig.Version, mig.Name)

	if err := m.setVersion(ctx, mig.Version, true); err != nil {
		return fmt.Errorf("failed to set dirty flag: %w", err)
	}
	for _, stmt := range SplitSQL(body) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration %d %s: %w", mig.Version, direction, err)
		}
	}
	if err := m.setVersion(ctx, target, false); err != nil {
		return fmt.Errorf("failed to clear dirty flag: %w", err)
	}
	return nil
}

// SplitSQL splits a script on semicolons, dropping empty statements.
func SplitSQL(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}
