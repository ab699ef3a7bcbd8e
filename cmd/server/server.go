package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	battlev1alpha1 "github.com/KirkDiggler/rpg-battle/internal/handlers/battle/v1alpha1"
)

const shutdownTimeout = 30 * time.Second

var (
	grpcPort   int
	feedPort   int
	storeKind  string
	redisURL   string
	battleTTL  time.Duration
	serverSeed uint64
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long: `Start the battle gRPC server (BattleService, CreatureService) and the
websocket feed that streams battle events to spectators.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().IntVar(&feedPort, "feed-port", 8081, "Websocket feed port")
	serverCmd.Flags().StringVar(&storeKind, "store", storeRedis, "Where creatures and battles live: redis or memory")
	serverCmd.Flags().StringVar(&redisURL, "redis-url", "redis://localhost:6379/0", "Redis connection URL")
	serverCmd.Flags().DurationVar(&battleTTL, "battle-ttl", time.Hour, "How long an untouched battle is kept")
	serverCmd.Flags().Uint64Var(&serverSeed, "seed", 0, "Random seed for reproducible battles, 0 for crypto randomness")
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, gracefully stopping...")
		cancel()
	}()

	a, err := newApp(ctx, &appConfig{
		Store:     storeKind,
		RedisURL:  redisURL,
		BattleTTL: battleTTL,
		Seed:      serverSeed,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	// Register services
	battlev1alpha1.RegisterBattleServiceServer(srv, a.battleHandler)
	battlev1alpha1.RegisterCreatureServiceServer(srv, a.creatureHandler)

	// Register health service
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(battlev1alpha1.BattleServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(battlev1alpha1.CreatureServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	feedServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", feedPort),
		Handler:           a.hub.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "port", grpcPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()
	go func() {
		slog.Info("Feed server starting", "port", feedPort)
		if err := feedServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to serve feed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down servers...")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		// websocket connections are hijacked, so the hub closes them itself
		if err := a.hub.Close(); err != nil {
			slog.Warn("failed to close feed hub", "error", err)
		}
		if err := feedServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Feed server shutdown failed", "error", err)
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		srv.Stop()
		_ = feedServer.Close()
		return err
	}
}

// logFunc adapts the interceptor logger to slog; both share level values
func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
