package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"player-list/pkg/httpmw"
	taskspb "player-list/proto/tasks"
	"player-list/tasks/adapters/db"
	taskgrpc "player-list/tasks/adapters/grpc"
	"player-list/tasks/adapters/rest/handlers"
	"player-list/tasks/config"
	"player-list/tasks/core"
)

func main() {
	// config
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "tasks-service server configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	// logger
	log := mustMakeLogger(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	log.Info("starting tasks-service server")

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// database adapter: a failed bootstrap leaves the service up in degraded mode
	storage := db.Bootstrap(ctx, log, cfg.Mongo)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := storage.Close(closeCtx); err != nil {
			log.Error("failed to close db connection", "error", err)
		}
	}()

	if !storage.Connected() {
		if cfg.Mongo.Required {
			return fmt.Errorf("mongo is required but unavailable")
		}
		log.Warn("running without a data store, task operations will fail until restart")
	} else if err := storage.EnsureIndexes(ctx); err != nil {
		log.Warn("failed to ensure indexes", "error", err)
	}

	// service
	tasksService := core.NewService(storage)

	mux := http.NewServeMux()
	handlers.Register(mux, log, tasksService, cfg.HTTP.Timeout)

	server := http.Server{
		Addr:              cfg.HTTP.Address,
		ReadHeaderTimeout: cfg.HTTP.Timeout,
		Handler: httpmw.Chain(mux,
			httpmw.RequestID,
			httpmw.AccessLog(log),
			httpmw.CORS(cfg.HTTP.CORSOrigin),
		),
	}

	listener, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("failed to listen for grpc on %s: %w", cfg.GRPC.Address, err)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(taskgrpc.UnaryLogger(log)))
	taskspb.RegisterTasksServiceServer(grpcServer, taskgrpc.NewServer(log, tasksService))

	errCh := make(chan error, 2)
	go func() {
		log.Info("tasks-service http server is running", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()
	go func() {
		log.Info("tasks-service grpc server is running", "address", cfg.GRPC.Address)
		errCh <- grpcServer.Serve(listener)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Debug("shutting down tasks-service server")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("failed to serve: %w", err)
		}
	}

	grpcServer.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && serveErr == nil {
		serveErr = err
	}
	return serveErr
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
