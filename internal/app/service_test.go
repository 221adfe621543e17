package app

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

type fakeService struct {
	startErr error
	block    bool
	stopped  atomic.Int32
	release  chan struct{}
}

func newFakeService(block bool, startErr error) *fakeService {
	return &fakeService{block: block, startErr: startErr, release: make(chan struct{})}
}

func (s *fakeService) Name() string { return "fake" }

func (s *fakeService) Start(ctx context.Context) error {
	if !s.block {
		return s.startErr
	}
	select {
	case <-ctx.Done():
	case <-s.release:
	}
	return nil
}

func (s *fakeService) Stop(context.Context) error {
	if s.stopped.Add(1) == 1 {
		close(s.release)
	}
	return nil
}

func TestRunnerStopsAllServicesOnError(t *testing.T) {
	failing := newFakeService(false, errors.New("boom"))
	blocking := newFakeService(true, nil)

	err := NewRunner(failing, blocking).Run(context.Background(), time.Second, nil)
	require.EqualError(t, err, "boom")
	require.EqualValues(t, 1, blocking.stopped.Load())
	require.EqualValues(t, 1, failing.stopped.Load())
}

func TestRunnerReturnsNilOnCancel(t *testing.T) {
	blocking := newFakeService(true, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	require.NoError(t, NewRunner(blocking).Run(ctx, time.Second, nil))
	require.EqualValues(t, 1, blocking.stopped.Load())
}

func TestRunnerRejectsEmpty(t *testing.T) {
	require.Error(t, NewRunner().Run(context.Background(), time.Second, nil))
	require.Error(t, RunWithOptions(nil, Options{}))
}

func TestHTTPServiceServeAndStop(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	svc := NewHTTPService(listener.Addr().String(), engine)
	require.Equal(t, "http", svc.Name())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, svc.Stop(ctx))
	require.NoError(t, <-done)
}

func TestBuildRunnerModes(t *testing.T) {
	db, err := models.OpenDB("sqlite", "file:app_build_runner?mode=memory&cache=shared", models.DBPoolConfig{MaxOpenConns: 1, MaxIdleConns: 1}, gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		JWT:    config.JWTConfig{SecretKey: "app-test-secret-with-enough-length"},
	}

	runner, err := BuildRunner(cfg, db, ModeAll)
	require.NoError(t, err)
	require.Len(t, runner.services, 1)
	require.Equal(t, "http", runner.services[0].Name())

	_, err = BuildRunner(cfg, db, ModeWorker)
	require.Error(t, err)

	_, err = BuildRunner(cfg, db, "unknown")
	require.Error(t, err)
}
