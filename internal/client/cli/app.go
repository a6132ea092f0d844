package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/gophtasks/internal/client/client"
	"github.com/dmitrijs2005/gophtasks/internal/client/config"
	gs "github.com/dmitrijs2005/gophtasks/internal/server/grpc"
)

// taskAPI is the server surface the CLI needs. *client.GRPCClient
// implements it.
type taskAPI interface {
	Register(ctx context.Context, userName, password string) error
	Login(ctx context.Context, userName, password string) error
	Logout()
	LoggedIn() bool
	Ping(ctx context.Context) error
	ListTasks(ctx context.Context, status, search string) ([]gs.Task, error)
	GetTask(ctx context.Context, id string) (*gs.Task, error)
	CreateTask(ctx context.Context, title, description string) (*gs.Task, error)
	DeleteTask(ctx context.Context, id string) error
	UpdateTaskStatus(ctx context.Context, id, status string) (*gs.Task, error)
	Close() error
}

type App struct {
	config   *config.Config
	api      taskAPI
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	api, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()

	if err := a.api.Ping(ctx); err != nil {
		a.printf("Server %s is not reachable: %v\n", a.config.ServerEndpointAddr, err)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "guest"
	}
	return a.userName
}
