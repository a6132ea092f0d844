package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/tasks"
	"github.com/google/uuid"
)

// TaskService exposes the task operations of one authenticated owner. Every
// method takes the owner and never reads or writes another owner's tasks.
type TaskService struct {
	tasks           tasks.Repository
	logger          logging.Logger
	databaseTimeout time.Duration
}

func NewTaskService(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *TaskService {
	return &TaskService{
		tasks:           m.Tasks(),
		logger:          logger.With("module", "tasks"),
		databaseTimeout: cfg.DatabaseTimeout,
	}
}

// List returns the owner's tasks. status may be empty or any accepted
// spelling of a TaskStatus; search may be empty, otherwise it must contain a
// non-blank character.
func (s *TaskService) List(ctx context.Context, owner *models.User, status, search string) ([]models.Task, error) {
	if owner == nil {
		return nil, common.ErrorUnauthorized
	}

	var filter models.TaskFilter
	v := common.NewValidationError()

	if status != "" {
		st, err := models.ParseTaskStatus(status)
		if err != nil {
			v.Add("status", statusMessage())
		}
		filter.Status = st
	}
	if search != "" {
		if strings.TrimSpace(search) == "" {
			v.Add("search", "must not be blank")
		}
		filter.Search = search
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "listing tasks", "user", owner.UserName, "status", filter.Status, "search", filter.Search)

	list, err := storeCall(ctx, s.databaseTimeout, func(ctx context.Context) ([]models.Task, error) {
		return s.tasks.List(ctx, owner.ID, filter)
	})
	if err != nil {
		s.logger.Error(ctx, "failed to list tasks", "user", owner.UserName, "status", filter.Status, "search", filter.Search, "error", err)
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	return list, nil
}

// GetByID returns the owner's task with id, or common.ErrorNotFound.
func (s *TaskService) GetByID(ctx context.Context, owner *models.User, id string) (*models.Task, error) {
	if owner == nil {
		return nil, common.ErrorUnauthorized
	}

	taskID, err := parseTaskID(id)
	if err != nil {
		return nil, err
	}

	return storeCall(ctx, s.databaseTimeout, func(ctx context.Context) (*models.Task, error) {
		return s.tasks.GetByID(ctx, taskID, owner.ID)
	})
}

// Create adds an open task for owner. Title and description are required.
func (s *TaskService) Create(ctx context.Context, owner *models.User, title, description string) (*models.Task, error) {
	if owner == nil {
		return nil, common.ErrorUnauthorized
	}

	v := common.NewValidationError()
	if strings.TrimSpace(title) == "" {
		v.Add("title", "must not be empty")
	}
	if strings.TrimSpace(description) == "" {
		v.Add("description", "must not be empty")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "creating task", "user", owner.UserName)

	task, err := storeCall(ctx, s.databaseTimeout, func(ctx context.Context) (*models.Task, error) {
		return s.tasks.Create(ctx, &models.Task{
			OwnerID:     owner.ID,
			Title:       title,
			Description: description,
			Status:      models.TaskStatusOpen,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return task, nil
}

// Delete removes the owner's task with id, or returns common.ErrorNotFound.
func (s *TaskService) Delete(ctx context.Context, owner *models.User, id string) error {
	if owner == nil {
		return common.ErrorUnauthorized
	}

	taskID, err := parseTaskID(id)
	if err != nil {
		return err
	}

	return storeExec(ctx, s.databaseTimeout, func(ctx context.Context) error {
		return s.tasks.Delete(ctx, taskID, owner.ID)
	})
}

// UpdateStatus sets the status of the owner's task with id and returns the
// updated task, or common.ErrorNotFound.
func (s *TaskService) UpdateStatus(ctx context.Context, owner *models.User, id, status string) (*models.Task, error) {
	if owner == nil {
		return nil, common.ErrorUnauthorized
	}

	v := common.NewValidationError()
	st, err := models.ParseTaskStatus(status)
	if err != nil {
		v.Add("status", statusMessage())
	}
	taskID, idErr := uuid.Parse(id)
	if idErr != nil {
		v.Add("id", "must be a valid UUID")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	return storeCall(ctx, s.databaseTimeout, func(ctx context.Context) (*models.Task, error) {
		return s.tasks.UpdateStatus(ctx, taskID.String(), owner.ID, st)
	})
}

func parseTaskID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", common.FieldError("id", "must be a valid UUID")
	}
	return parsed.String(), nil
}

func statusMessage() string {
	names := make([]string, len(models.TaskStatuses))
	for i, st := range models.TaskStatuses {
		names[i] = string(st)
	}
	return "must be one of " + strings.Join(names, ", ")
}
