package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"player-list/pkg/httpmw"
	"player-list/web/adapters/tasks"
	"player-list/web/adapters/ui"
	"player-list/web/config"
	"player-list/web/core"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "web server configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	log := mustMakeLogger(cfg.LogLevel)

	tasksClient, err := newTasksClient(cfg, log)
	if err != nil {
		log.Error("cannot init tasks adapter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = tasksClient.Close() }()

	deps := core.Deps{
		Tasks: tasksClient,
	}

	mux := http.NewServeMux()
	ui.Register(mux, log, deps, cfg.HTTP.Timeout)

	server := http.Server{
		Addr:              cfg.HTTP.Address,
		ReadHeaderTimeout: cfg.HTTP.Timeout,
		Handler:           httpmw.Chain(mux, httpmw.RequestID, httpmw.AccessLog(log)),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("web http server", "address", server.Addr, "tasks_url", cfg.TasksURL)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}

type closableTasks interface {
	core.Tasks
	io.Closer
}

func newTasksClient(cfg config.Config, log *slog.Logger) (closableTasks, error) {
	if cfg.TasksGRPCAddress != "" {
		log.Info("tasks adapter", "transport", "grpc", "address", cfg.TasksGRPCAddress)
		return tasks.NewGRPCClient(cfg.TasksGRPCAddress, log)
	}
	log.Info("tasks adapter", "transport", "http", "url", cfg.TasksURL)
	return tasks.NewClient(cfg.TasksURL, cfg.HTTP.Timeout, log)
}

func mustMakeLogger(logLevel string) *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
