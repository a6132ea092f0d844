package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

func (s *GRPCServer) SignUp(ctx context.Context, req *SignUpRequest) (*SignUpResponse, error) {
	if err := s.users.SignUp(ctx, req.Username, req.Password); err != nil {
		return nil, s.toStatus(ctx, methodSignUp, err)
	}
	return &SignUpResponse{}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *SignInRequest) (*SignInResponse, error) {
	token, err := s.users.SignIn(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, methodSignIn, err)
	}
	return &SignInResponse{AccessToken: token}, nil
}

func (s *GRPCServer) ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated
	}

	list, err := s.tasks.List(ctx, user, req.Status, req.Search)
	if err != nil {
		return nil, s.toStatus(ctx, methodListTasks, err)
	}

	resp := &ListTasksResponse{Tasks: make([]Task, 0, len(list))}
	for i := range list {
		resp.Tasks = append(resp.Tasks, *newTask(&list[i]))
	}
	return resp, nil
}

func (s *GRPCServer) GetTask(ctx context.Context, req *GetTaskRequest) (*Task, error) {
	return s.withTask(ctx, methodGetTask, func(user *models.User) (*models.Task, error) {
		return s.tasks.GetByID(ctx, user, req.ID)
	})
}

func (s *GRPCServer) CreateTask(ctx context.Context, req *CreateTaskRequest) (*Task, error) {
	return s.withTask(ctx, methodCreateTask, func(user *models.User) (*models.Task, error) {
		return s.tasks.Create(ctx, user, req.Title, req.Description)
	})
}

func (s *GRPCServer) DeleteTask(ctx context.Context, req *DeleteTaskRequest) (*DeleteTaskResponse, error) {
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated
	}

	if err := s.tasks.Delete(ctx, user, req.ID); err != nil {
		return nil, s.toStatus(ctx, methodDeleteTask, err)
	}
	return &DeleteTaskResponse{}, nil
}

func (s *GRPCServer) UpdateTaskStatus(ctx context.Context, req *UpdateTaskStatusRequest) (*Task, error) {
	return s.withTask(ctx, methodUpdateTaskStatus, func(user *models.User) (*models.Task, error) {
		return s.tasks.UpdateStatus(ctx, user, req.ID, req.Status)
	})
}

func (s *GRPCServer) Ping(ctx context.Context, _ *PingRequest) (*PingResponse, error) {
	if err := s.pinger.Ping(ctx); err != nil {
		s.logger.Warn(ctx, "health check failed", "error", err)
		return nil, errUnavailable
	}
	return &PingResponse{Status: "OK"}, nil
}

// withTask runs fn for the authenticated user and converts the task it
// returns to its wire form.
func (s *GRPCServer) withTask(ctx context.Context, method string, fn func(*models.User) (*models.Task, error)) (*Task, error) {
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated
	}

	task, err := fn(user)
	if err != nil {
		return nil, s.toStatus(ctx, method, err)
	}
	return newTask(task), nil
}
