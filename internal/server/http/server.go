// Package http serves the portal's JSON API over fiber.
package http

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/leaseportal/internal/logging"
	"github.com/dmitrijs2005/leaseportal/internal/server/http/middleware"
	"github.com/dmitrijs2005/leaseportal/internal/server/http/presenter"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 5 * time.Second

// multipartOverhead is added to the upload limit for form boundaries and headers.
const multipartOverhead = 1 << 20

type Server struct {
	address string
	app     *fiber.App
	logger  logging.Logger
}

// NewApp builds the fiber app with routes, request logging and JSON errors.
func NewApp(logger logging.Logger, maxUploadBytes int64, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             int(maxUploadBytes) + multipartOverhead,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return presenter.Error(c, code, err.Error())
		},
	})
	app.Use(middleware.RequestLogger(logger))
	Register(app, h)
	return app
}

func NewServer(address string, app *fiber.App, logger logging.Logger) *Server {
	return &Server{address: address, app: app, logger: logger.With("module", "http_server")}
}

func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
		// Unblocks Listener when shutdown ran before it started serving.
		_ = lis.Close()
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	return s.app.Listener(lis)
}
