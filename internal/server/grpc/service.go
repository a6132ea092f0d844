package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const ServiceName = "gophtasks.v1.TaskService"

const (
	methodSignUp           = "SignUp"
	methodSignIn           = "SignIn"
	methodListTasks        = "ListTasks"
	methodGetTask          = "GetTask"
	methodCreateTask       = "CreateTask"
	methodDeleteTask       = "DeleteTask"
	methodUpdateTaskStatus = "UpdateTaskStatus"
	methodPing             = "Ping"
)

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// TaskServiceServer is implemented by GRPCServer.
type TaskServiceServer interface {
	SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error)
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error)
	GetTask(context.Context, *GetTaskRequest) (*Task, error)
	CreateTask(context.Context, *CreateTaskRequest) (*Task, error)
	DeleteTask(context.Context, *DeleteTaskRequest) (*DeleteTaskResponse, error)
	UpdateTaskStatus(context.Context, *UpdateTaskStatusRequest) (*Task, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// ServiceDesc describes TaskService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TaskServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(methodSignUp, TaskServiceServer.SignUp),
		unary(methodSignIn, TaskServiceServer.SignIn),
		unary(methodListTasks, TaskServiceServer.ListTasks),
		unary(methodGetTask, TaskServiceServer.GetTask),
		unary(methodCreateTask, TaskServiceServer.CreateTask),
		unary(methodDeleteTask, TaskServiceServer.DeleteTask),
		unary(methodUpdateTaskStatus, TaskServiceServer.UpdateTaskStatus),
		unary(methodPing, TaskServiceServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophtasks/v1/tasks.proto",
}

// unary builds the method descriptor that decodes Req, runs the interceptor
// chain and dispatches to call.
func unary[Req, Resp any](name string, call func(TaskServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}

			handler := func(ctx context.Context, req any) (any, error) {
				resp, err := call(srv.(TaskServiceServer), ctx, req.(*Req))
				if err != nil {
					return nil, err
				}
				return resp, nil
			}

			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Client calls TaskService over a client connection using the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// WithAccessToken attaches token to the outgoing metadata of ctx as a bearer
// authorization value.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, common.AuthorizationHeaderName, common.BearerScheme+" "+token)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, name string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error) {
	return invoke[SignUpResponse](ctx, c.cc, methodSignUp, in, opts)
}

func (c *Client) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error) {
	return invoke[SignInResponse](ctx, c.cc, methodSignIn, in, opts)
}

func (c *Client) ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*ListTasksResponse, error) {
	return invoke[ListTasksResponse](ctx, c.cc, methodListTasks, in, opts)
}

func (c *Client) GetTask(ctx context.Context, in *GetTaskRequest, opts ...grpc.CallOption) (*Task, error) {
	return invoke[Task](ctx, c.cc, methodGetTask, in, opts)
}

func (c *Client) CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*Task, error) {
	return invoke[Task](ctx, c.cc, methodCreateTask, in, opts)
}

func (c *Client) DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*DeleteTaskResponse, error) {
	return invoke[DeleteTaskResponse](ctx, c.cc, methodDeleteTask, in, opts)
}

func (c *Client) UpdateTaskStatus(ctx context.Context, in *UpdateTaskStatusRequest, opts ...grpc.CallOption) (*Task, error) {
	return invoke[Task](ctx, c.cc, methodUpdateTaskStatus, in, opts)
}

func (c *Client) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, methodPing, in, opts)
}
