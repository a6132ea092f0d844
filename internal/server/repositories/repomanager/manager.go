// Package repomanager owns the database handle and vends the repositories
// bound to it. It picks the driver from the DSN (pgx for postgres:// URLs,
// modernc SQLite for sqlite:, file: and :memory:) and applies the embedded
// goose migrations for that dialect.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Users() users.Repository
	Tasks() tasks.Repository
	Close() error
}
