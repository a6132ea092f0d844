package tasks

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// Repository stores tasks. Every method that reads or changes an existing
// task takes the owner's ID and only ever touches rows with that owner; a
// task of another owner is reported as common.ErrorNotFound, exactly like a
// missing one.
type Repository interface {
	List(ctx context.Context, ownerID string, filter models.TaskFilter) ([]models.Task, error)
	GetByID(ctx context.Context, id, ownerID string) (*models.Task, error)
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
	UpdateStatus(ctx context.Context, id, ownerID string, status models.TaskStatus) (*models.Task, error)
}
