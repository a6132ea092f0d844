package server

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.DatabaseDSN = "sqlite::memory:"
	c.SecretKey = "secret"
	c.LogLevel = "error"
	return c
}

func TestNewApp_RejectsInvalidConfig(t *testing.T) {
	c := testConfig()
	c.SecretKey = ""

	_, err := NewApp(context.Background(), c)
	assert.ErrorContains(t, err, "secret key is required")
}

func TestNewApp_RejectsUnsupportedDSN(t *testing.T) {
	c := testConfig()
	c.DatabaseDSN = "mysql://localhost/db"

	_, err := NewApp(context.Background(), c)
	assert.ErrorIs(t, err, repomanager.ErrUnsupportedDSN)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		t.Fatalf("app exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}

	assert.Error(t, app.store.Ping(context.Background()), "store should be closed")
}

func TestApp_RunReturnsServerError(t *testing.T) {
	ctx := context.Background()
	m, err := repomanager.Open(ctx, "sqlite::memory:", nil)
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(ctx))

	c := testConfig()
	c.EndpointAddrGRPC = "127.0.0.1:99999"

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	hasher := auth.NewPasswordHasher(auth.HashParams{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32}, 1)
	app := newApp(c, logger, m, hasher)

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "grpc server")
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after a server failure")
	}
}

func TestMigrate(t *testing.T) {
	c := testConfig()
	c.DatabaseDSN = "sqlite:" + filepath.Join(t.TempDir(), "tasks.db")

	require.NoError(t, Migrate(context.Background(), c))
	require.NoError(t, Migrate(context.Background(), c), "second run is a no-op")

	c.DatabaseDSN = ""
	assert.Error(t, Migrate(context.Background(), c))
}
