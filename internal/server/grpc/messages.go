package grpc

import "github.com/dmitrijs2005/gophtasks/internal/server/models"

type SignUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignUpResponse struct{}

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignInResponse struct {
	AccessToken string `json:"accessToken"`
}

// ListTasksRequest filters the caller's tasks. Empty fields do not filter.
type ListTasksRequest struct {
	Status string `json:"status,omitempty"`
	Search string `json:"search,omitempty"`
}

type ListTasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type GetTaskRequest struct {
	ID string `json:"id"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type DeleteTaskResponse struct{}

type UpdateTaskStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// Task is the wire form of a task. It never carries the owner.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func newTask(t *models.Task) *Task {
	return &Task{ID: t.ID, Title: t.Title, Description: t.Description, Status: string(t.Status)}
}
