// Package grpc exposes the standard grpc.health.v1 service so orchestrators
// can probe the portal. Status follows the readiness checks.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/leaseportal/internal/logging"
	"github.com/dmitrijs2005/leaseportal/internal/server/health"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported alongside the overall ("") status.
const ServiceName = "leaseportal.Portal"

const defaultCheckInterval = 5 * time.Second

type GRPCServer struct {
	address  string
	logger   logging.Logger
	ready    health.ReadinessUseCase
	health   *grpchealth.Server
	interval time.Duration
}

func NewGRPCServer(a string, l logging.Logger, ready health.ReadinessUseCase) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		ready:    ready,
		health:   grpchealth.NewServer(),
		interval: defaultCheckInterval,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}

func (s *GRPCServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	last := healthpb.HealthCheckResponse_NOT_SERVING
	for {
		st := healthpb.HealthCheckResponse_SERVING
		if err := s.ready.Ready(ctx); err != nil {
			st = healthpb.HealthCheckResponse_NOT_SERVING
			s.logger.Debug(ctx, "readiness check failed", "error", err)
		}
		if ctx.Err() != nil {
			return
		}
		if st != last {
			s.logger.Info(ctx, "health status changed", "status", st.String())
			last = st
		}
		s.setStatus(st)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *GRPCServer) setStatus(st healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}
