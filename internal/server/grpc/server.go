// Package grpc serves the task API over gRPC with a JSON codec.
package grpc

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"google.golang.org/grpc"
)

type UserService interface {
	SignUp(ctx context.Context, username, password string) error
	SignIn(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type TaskService interface {
	List(ctx context.Context, owner *models.User, status, search string) ([]models.Task, error)
	GetByID(ctx context.Context, owner *models.User, id string) (*models.Task, error)
	Create(ctx context.Context, owner *models.User, title, description string) (*models.Task, error)
	Delete(ctx context.Context, owner *models.User, id string) error
	UpdateStatus(ctx context.Context, owner *models.User, id, status string) (*models.Task, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type GRPCServer struct {
	address string
	users   UserService
	tasks   TaskService
	pinger  Pinger
	logger  logging.Logger
}

func NewGRPCServer(address string, l logging.Logger, us UserService, ts TaskService, p Pinger) *GRPCServer {
	return &GRPCServer{
		address: address,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		tasks:   ts,
		pinger:  p,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {
	var lc net.ListenConfig
	listen, err := lc.Listen(ctx, "tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx ends, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	srv.RegisterService(&ServiceDesc, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}
