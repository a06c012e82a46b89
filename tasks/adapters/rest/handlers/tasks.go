package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"player-list/pkg/res"
	"player-list/tasks/adapters/rest"
	"player-list/tasks/core"
)

func pathID(r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	return id, id != ""
}

func NewCreateTaskHandler(log *slog.Logger, svc Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.CreateTask(ctx, in.Task)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		log.Debug("task created", "id", t.ID)
		res.Json(w, rest.TaskToOut(t), http.StatusCreated)
	}
}

func NewGetTaskHandler(log *slog.Logger, svc Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.GetTask(ctx, id)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, rest.TaskToOut(t), http.StatusOK)
	}
}

func NewListTasksHandler(log *slog.Logger, svc Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f core.ListTasksFilter

		if v := r.URL.Query().Get("completed"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				res.Error(w, "invalid completed", http.StatusBadRequest)
				return
			}
			f.Completed = &b
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListTasks(ctx, f)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, map[string]any{"tasks": rest.TasksToOut(items)}, http.StatusOK)
	}
}

func NewToggleTaskHandler(log *slog.Logger, svc Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.ToggleTask(ctx, id)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, rest.TaskToOut(t), http.StatusOK)
	}
}

func NewPatchTaskHandler(log *slog.Logger, svc Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var in rest.PatchTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p := core.TaskPatch{Task: in.Task, Completed: in.Completed}
		if p.Empty() {
			res.Error(w, "no fields to update", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.PatchTask(ctx, id, p)
		if err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		res.Json(w, rest.TaskToOut(t), http.StatusOK)
	}
}

func NewDeleteTaskHandler(log *slog.Logger, svc Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteTask(ctx, id); err != nil {
			rest.WriteErr(w, log, err)
			return
		}
		log.Debug("task deleted", "id", id)
		res.Json(w, map[string]any{"ok": true, "id": id}, http.StatusOK)
	}
}
