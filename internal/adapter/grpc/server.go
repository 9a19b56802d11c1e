package grpc

import (
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/grpc/middleware"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

// NewGRPCServer builds the gRPC server that carries the standard health service
// and server reflection. serviceName is reported SERVING until shutdown begins.
func NewGRPCServer(appLogger *logger.Logger, serviceName string) (*grpc.Server, *health.Server) {
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(middleware.LoggingInterceptor(appLogger)),
		grpc.ChainStreamInterceptor(middleware.StreamLoggingInterceptor(appLogger)),
	)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)
	reflection.Register(server)

	appLogger.Info("gRPC server configured with health and reflection services")
	return server, healthServer
}
