package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	gs "github.com/dmitrijs2005/gophtasks/internal/server/grpc"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	api         *gs.Client

	mu          sync.RWMutex
	accessToken string
}

func NewGRPCClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	return newGRPCClient(endpointURL, timeout, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func newGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	opts = append(opts, grpc.WithUnaryInterceptor(c.accessTokenInterceptor))
	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}

	c.conn = conn
	c.api = gs.NewClient(conn)
	return c, nil
}

// accessTokenInterceptor attaches the current access token, if any, to every
// outgoing call.
func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := c.token(); token != "" {
		ctx = gs.WithAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (c *GRPCClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *GRPCClient) setToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *GRPCClient) Register(ctx context.Context, userName, password string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	_, err := c.api.SignUp(ctx, &gs.SignUpRequest{Username: userName, Password: password})
	return mapError(err)
}

// Login signs in and keeps the access token for later calls.
func (c *GRPCClient) Login(ctx context.Context, userName, password string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.SignIn(ctx, &gs.SignInRequest{Username: userName, Password: password})
	if err != nil {
		return mapError(err)
	}

	c.setToken(resp.AccessToken)
	return nil
}

// Logout forgets the access token.
func (c *GRPCClient) Logout() {
	c.setToken("")
}

func (c *GRPCClient) LoggedIn() bool {
	return c.token() != ""
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.Ping(ctx, &gs.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) ListTasks(ctx context.Context, taskStatus, search string) ([]gs.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.ListTasks(ctx, &gs.ListTasksRequest{Status: taskStatus, Search: search})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Tasks, nil
}

func (c *GRPCClient) GetTask(ctx context.Context, id string) (*gs.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	task, err := c.api.GetTask(ctx, &gs.GetTaskRequest{ID: id})
	return task, mapError(err)
}

func (c *GRPCClient) CreateTask(ctx context.Context, title, description string) (*gs.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	task, err := c.api.CreateTask(ctx, &gs.CreateTaskRequest{Title: title, Description: description})
	return task, mapError(err)
}

func (c *GRPCClient) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	_, err := c.api.DeleteTask(ctx, &gs.DeleteTaskRequest{ID: id})
	return mapError(err)
}

func (c *GRPCClient) UpdateTaskStatus(ctx context.Context, id, taskStatus string) (*gs.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	task, err := c.api.UpdateTaskStatus(ctx, &gs.UpdateTaskStatusRequest{ID: id, Status: taskStatus})
	return task, mapError(err)
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// mapError turns a gRPC status into a package error. InvalidArgument becomes
// a *common.ValidationError built from the BadRequest detail.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		ve := common.NewValidationError()
		for _, d := range st.Details() {
			if br, ok := d.(*errdetails.BadRequest); ok {
				for _, v := range br.GetFieldViolations() {
					ve.Add(v.GetField(), v.GetDescription())
				}
			}
		}
		if ve.Empty() {
			return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
		}
		return ve
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
