// Package server wires the portal together: configuration, credential and
// file storage, the session registry, and the HTTP and gRPC health servers.
// It handles graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/logging"
	"github.com/dmitrijs2005/leaseportal/internal/server/config"
	"github.com/dmitrijs2005/leaseportal/internal/server/health"
	"github.com/dmitrijs2005/leaseportal/internal/server/http/handlers"
	"github.com/dmitrijs2005/leaseportal/internal/server/http/middleware"
	"github.com/dmitrijs2005/leaseportal/internal/server/repositories/credentials"
	"github.com/dmitrijs2005/leaseportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/leaseportal/internal/server/services"
	"github.com/dmitrijs2005/leaseportal/internal/server/session"
	"github.com/dmitrijs2005/leaseportal/internal/server/storage"

	gs "github.com/dmitrijs2005/leaseportal/internal/server/grpc"
	hs "github.com/dmitrijs2005/leaseportal/internal/server/http"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *hs.Server
	grpcServer *gs.GRPCServer
	closers    []io.Closer
}

// NewSessionStore returns the registry selected by cfg.SessionBackend.
func NewSessionStore(cfg *config.Config) session.Store {
	if cfg.SessionBackend == config.SessionBackendRedis {
		return session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	return session.NewMemoryStore()
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(c.LogBackend, c.LogFormat, os.Stdout)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger}
	if z, ok := logger.(*logging.ZapLogger); ok {
		// stdout sync fails on some terminals; nothing to report then.
		app.closers = append(app.closers, closerFunc(func() error {
			_ = z.Sync()
			return nil
		}))
	}

	if c.SecretKey == "" {
		// Tokens signed with a generated key do not survive a restart.
		if c.SecretKey, err = common.MakeRandHexString(32); err != nil {
			return nil, fmt.Errorf("secret key generation error: %w", err)
		}
		logger.Warn(ctx, "no secret key configured, generated an ephemeral one")
	}

	repo, dbCloser, err := repomanager.OpenCredentials(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("credential store init error: %w", err)
	}
	app.closers = append(app.closers, dbCloser)

	st, err := storage.New(ctx, c)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("file repository init error: %w", err)
	}
	logger.Info(ctx, "file repository ready", "backend", c.RepositoryBackend, "location", storageLocation(st, c))

	store := NewSessionStore(c)
	if cl, ok := store.(io.Closer); ok {
		app.closers = append(app.closers, cl)
	}

	authSvc := services.NewAuthService(repo, services.NewHasher(c), c, logger)
	fileSvc := services.NewFileService(st, c.SanitizeNames, logger)
	portal := services.NewPortal(authSvc, fileSvc)

	readiness := health.NewService(readinessCheckers(repo, st, store)...)

	httpApp := hs.NewApp(logger, c.MaxUploadBytes, hs.Handlers{
		Auth:    handlers.NewAuthHandler(portal, store, c.SecretKey, c.TokenValidityDuration, c.SessionTTL, logger),
		Files:   handlers.NewFileHandler(portal),
		Portal:  handlers.NewPortalHandler(portal, c.SheetPath),
		Health:  handlers.NewHealthHandler(readiness),
		Session: middleware.NewSessionLoader(c.SecretKey, store, logger),
	})

	app.httpServer = hs.NewServer(c.HTTPAddr, httpApp, logger)
	app.grpcServer = gs.NewGRPCServer(c.GRPCHealthAddr, logger, readiness)

	return app, nil
}

// storageLocation names where uploads land: the absolute root directory or
// the S3 bucket and prefix.
func storageLocation(st storage.Storage, c *config.Config) string {
	if ls, ok := st.(*storage.LocalStorage); ok {
		return ls.Root()
	}
	return "s3://" + c.S3Bucket + "/" + strings.Trim(c.RepositoryPath, "/")
}

func readinessCheckers(repo credentials.Repository, st storage.Storage, store session.Store) []health.Checker {
	return []health.Checker{
		health.NewCheckFunc("credentials", func(ctx context.Context) error {
			_, err := repo.LoadAll(ctx)
			return err
		}),
		health.NewCheckFunc("file_repository", func(ctx context.Context) error {
			_, err := st.List(ctx)
			return err
		}),
		health.NewCheckFunc("sessions", store.Ping),
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

type runner interface {
	Run(ctx context.Context) error
}

func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, r runner) {
	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run serves until a signal arrives or one of the servers fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "http", app.httpServer)
	}()
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "grpc", app.grpcServer)
	}()

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
	app.Close()
}

// Close releases database handles, the Redis pool and flushes the logger.
func (app *App) Close() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			app.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
	app.closers = nil
}
