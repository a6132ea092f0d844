package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/dmitrijs2005/gophtasks/internal/server/migrations"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// ErrUnsupportedDSN is returned by Open for a DSN of an unknown database.
var ErrUnsupportedDSN = errors.New("unsupported database DSN")

// SQLRepositoryManager vends SQL-backed repositories over one *sql.DB and
// migrates it with the embedded migrations of its dialect.
type SQLRepositoryManager struct {
	db         *sql.DB
	dialect    goose.Dialect
	migrations fs.FS
	logger     *slog.Logger
}

// NewPostgresRepositoryManager wraps a pgx-backed handle.
func NewPostgresRepositoryManager(db *sql.DB, logger *slog.Logger) (*SQLRepositoryManager, error) {
	return newManager(db, goose.DialectPostgres, migrations.Postgres, "postgres", logger)
}

// NewSQLiteRepositoryManager wraps a modernc SQLite handle.
func NewSQLiteRepositoryManager(db *sql.DB, logger *slog.Logger) (*SQLRepositoryManager, error) {
	return newManager(db, goose.DialectSQLite3, migrations.SQLite, "sqlite", logger)
}

func newManager(db *sql.DB, dialect goose.Dialect, fsys fs.FS, dir string, logger *slog.Logger) (*SQLRepositoryManager, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("migrations %s: %w", dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLRepositoryManager{db: db, dialect: dialect, migrations: sub, logger: logger}, nil
}

// Open connects to dsn, checks the connection and returns a manager for it.
// Migrations are not applied; call RunMigrations.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*SQLRepositoryManager, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return NewPostgresRepositoryManager(db, logger)

	case strings.HasPrefix(dsn, "sqlite:"), strings.HasPrefix(dsn, "file:"), strings.HasPrefix(dsn, ":memory:"):
		db, err := sql.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// One connection: SQLite serialises writers anyway, and an
		// in-memory database lives only as long as its connection.
		db.SetMaxOpenConns(1)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping sqlite: %w", err)
		}
		return NewSQLiteRepositoryManager(db, logger)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
}

// sqliteDSN strips the sqlite: scheme and turns on foreign keys and the
// sqlite time format for the modernc driver.
func sqliteDSN(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite:")
	if dsn == "" {
		dsn = ":memory:"
	}

	sep := "?"
	if strings.ContainsRune(dsn, '?') {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// redactDSN drops everything after the scheme so credentials never reach logs.
func redactDSN(dsn string) string {
	if scheme, _, ok := strings.Cut(dsn, "://"); ok {
		return scheme + "://..."
	}
	if len(dsn) > 16 {
		return dsn[:16] + "..."
	}
	return dsn
}

// RunMigrations applies every pending migration.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	p, err := goose.NewProvider(m.dialect, m.db, m.migrations, goose.WithSlog(m.logger))
	if err != nil {
		return fmt.Errorf("migration provider: %w", err)
	}

	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for _, r := range results {
		m.logger.DebugContext(ctx, "migration applied", "source", r.Source.Path, "duration", r.Duration)
	}
	return nil
}

func (m *SQLRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *SQLRepositoryManager) Users() users.Repository {
	return users.NewSQLRepository(m.db)
}

func (m *SQLRepositoryManager) Tasks() tasks.Repository {
	return tasks.NewSQLRepository(m.db)
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}
