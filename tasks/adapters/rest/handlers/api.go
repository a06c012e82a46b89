package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"player-list/pkg/ping"
	"player-list/tasks/core"
)

type Service interface {
	ping.Pinger

	CreateTask(ctx context.Context, label string) (core.Task, error)
	GetTask(ctx context.Context, id string) (core.Task, error)
	ListTasks(ctx context.Context, f core.ListTasksFilter) ([]core.Task, error)
	ToggleTask(ctx context.Context, id string) (core.Task, error)
	PatchTask(ctx context.Context, id string, p core.TaskPatch) (core.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

func Register(mux *http.ServeMux, log *slog.Logger, svc Service, timeout time.Duration) {
	// health
	pings := map[string]ping.Pinger{"mongo": svc}
	mux.Handle("GET /api/ping", ping.NewHandler(log, pings, timeout))
	mux.Handle("GET /ready", ping.NewHandler(log, pings, timeout))
	mux.Handle("GET /healthz", ping.NewLivenessHandler())

	// tasks
	mux.Handle("POST /api/tasks", NewCreateTaskHandler(log, svc, timeout))
	mux.Handle("GET /api/tasks", NewListTasksHandler(log, svc, timeout))
	mux.Handle("GET /api/tasks/{id}", NewGetTaskHandler(log, svc, timeout))
	mux.Handle("PUT /api/tasks/{id}", NewToggleTaskHandler(log, svc, timeout))
	mux.Handle("PATCH /api/tasks/{id}", NewPatchTaskHandler(log, svc, timeout))
	mux.Handle("DELETE /api/tasks/{id}", NewDeleteTaskHandler(log, svc, timeout))
}
