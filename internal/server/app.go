// Package server wires configuration, storage, services and both transports
// into one App and runs it until a signal or a transport failure stops it.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophtasks/internal/server/rest"
	"github.com/dmitrijs2005/gophtasks/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/gophtasks/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	store      repomanager.RepositoryManager
	httpServer *rest.HTTPServer
	grpcServer *gs.GRPCServer
}

// NewApp validates c, opens and migrates the store and builds both servers.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sl := logging.NewSlog(c.LogLevel)
	logger := logging.NewSlogLogger(sl)

	m, err := repomanager.Open(ctx, c.DatabaseDSN, sl)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx); err != nil {
		m.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	hasher := auth.NewPasswordHasher(auth.DefaultHashParams, c.HashConcurrency)
	return newApp(c, logger, m, hasher), nil
}

// Migrate applies pending migrations to the database named by c and exits.
// Only the DSN and log level of c are used.
func Migrate(ctx context.Context, c *config.Config) error {
	if c.DatabaseDSN == "" {
		return errors.New("database DSN is required")
	}

	sl := logging.NewSlog(c.LogLevel)

	m, err := repomanager.Open(ctx, c.DatabaseDSN, sl)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer m.Close()

	if err := m.RunMigrations(ctx); err != nil {
		return fmt.Errorf("db migration error: %w", err)
	}

	sl.InfoContext(ctx, "migrations applied")
	return nil
}

func newApp(c *config.Config, logger logging.Logger, m repomanager.RepositoryManager, hasher *auth.PasswordHasher) *App {
	us := services.NewUserService(m, hasher, c, logger)
	ts := services.NewTaskService(m, c, logger)

	return &App{
		config:     c,
		logger:     logger,
		store:      m,
		httpServer: rest.NewHTTPServer(c.EndpointAddrHTTP, c.CORSOrigin, logger, us, ts, m),
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, ts, m),
	}
}

// initSignalHandler cancels the app on SIGINT, SIGTERM or SIGQUIT. The
// returned function stops listening for signals.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", sig.String())
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run serves HTTP and gRPC until ctx ends, a signal arrives or either server
// fails, then closes the store. The first server error is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	stop := app.initSignalHandler(ctx, cancelFunc)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.httpServer.Run(gctx); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := app.grpcServer.Run(gctx); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "app stopped with error", "error", err)
	}

	if cerr := app.store.Close(); cerr != nil {
		app.logger.Error(ctx, "failed to close store", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
