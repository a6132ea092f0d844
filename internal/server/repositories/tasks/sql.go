// Package tasks stores tasks scoped to their owner. The same SQL runs on
// PostgreSQL (pgx) and SQLite (modernc).
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/dbx"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/google/uuid"
)

const taskColumns = `id, owner_id, title, description, status, created_at`

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	t := &models.Task{}
	var status string
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &status, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Status = models.TaskStatus(status)
	return t, nil
}

// escapeLike makes every character of term match literally inside a LIKE
// pattern that declares ESCAPE '\'.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// List returns the owner's tasks, optionally narrowed by status and by a
// case-insensitive substring of title or description. Rows come back in the
// store's natural order.
func (r *SQLRepository) List(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1`)
	args := []any{ownerID}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		b.WriteString(` AND status = $` + strconv.Itoa(len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := `$` + strconv.Itoa(len(args))
		b.WriteString(` AND (LOWER(title) LIKE LOWER(` + n + `) ESCAPE '\'` +
			` OR LOWER(description) LIKE LOWER(` + n + `) ESCAPE '\')`)
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Task, error) {
	query :=
		`SELECT ` + taskColumns + ` FROM tasks
		 WHERE id = $1 AND owner_id = $2
		 `

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

// Create inserts task, assigning ID, CreatedAt and the open status when they
// are empty.
func (r *SQLRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	if task.Status == "" {
		task.Status = models.TaskStatusOpen
	}

	query :=
		`INSERT INTO tasks (id, owner_id, title, description, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.OwnerID, task.Title, task.Description, string(task.Status), task.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// Delete removes the task in a single statement filtered by owner. When no
// row matched, common.ErrorNotFound is returned.
func (r *SQLRepository) Delete(ctx context.Context, id, ownerID string) error {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// UpdateStatus changes the status and returns the updated task. The lookup,
// the ownership check and the write are one statement.
func (r *SQLRepository) UpdateStatus(ctx context.Context, id, ownerID string, status models.TaskStatus) (*models.Task, error) {
	query :=
		`UPDATE tasks SET status = $1
		 WHERE id = $2 AND owner_id = $3
		 RETURNING ` + taskColumns + `
		 `

	t, err := scanTask(r.db.QueryRowContext(ctx, query, string(status), id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}
