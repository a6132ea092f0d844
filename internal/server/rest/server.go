// Package rest serves the JSON HTTP API with echo.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const (
	readHeaderTimeout = 1 * time.Second
	readTimeout       = 5 * time.Second
	writeTimeout      = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// UserService is the account side of the API.
type UserService interface {
	SignUp(ctx context.Context, username, password string) error
	SignIn(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// TaskService is the task side of the API. Every call is scoped to owner.
type TaskService interface {
	List(ctx context.Context, owner *models.User, status, search string) ([]models.Task, error)
	GetByID(ctx context.Context, owner *models.User, id string) (*models.Task, error)
	Create(ctx context.Context, owner *models.User, title, description string) (*models.Task, error)
	Delete(ctx context.Context, owner *models.User, id string) error
	UpdateStatus(ctx context.Context, owner *models.User, id, status string) (*models.Task, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	users   UserService
	tasks   TaskService
	pinger  Pinger
	echo    *echo.Echo
}

func NewHTTPServer(address, corsOrigin string, l logging.Logger, us UserService, ts TaskService, p Pinger) *HTTPServer {
	s := &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		tasks:   ts,
		pinger:  p,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.HTTPErrorHandler = s.errorHandler

	e.Use(
		middleware.Recover(),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			HandleError:  true,
			LogMethod:    true,
			LogURIPath:   true,
			LogRoutePath: true,
			LogStatus:    true,
			LogLatency:   true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				s.logger.Debug(c.Request().Context(), "request handled",
					"method", v.Method,
					"path", v.URIPath,
					"route", v.RoutePath,
					"status", v.Status,
					"latency", v.Latency,
				)
				return nil
			},
		}),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{corsOrigin},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
			AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
		}),
	)

	s.register(e)
	s.echo = e
	return s
}

func (s *HTTPServer) register(e *echo.Echo) {
	e.GET("/healthz", s.healthz)

	a := e.Group("/auth")
	a.POST("/signup", s.signUp)
	a.POST("/signin", s.signIn)

	t := e.Group("/tasks", echo.WrapMiddleware(NewAuthMiddleware(s.users, s.logger).Wrap))
	t.GET("", s.listTasks)
	t.POST("", s.createTask)
	t.GET("/:id", s.getTask)
	t.DELETE("/:id", s.deleteTask)
	t.PATCH("/:id/status", s.updateTaskStatus)
}

// Handler exposes the routed echo instance.
func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}

// Run listens on the configured address and serves until ctx ends, then
// shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	var lc net.ListenConfig
	listen, err := lc.Listen(ctx, "tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx ends.
func (s *HTTPServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.echo,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-stopped
}
