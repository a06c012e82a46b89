// Package ui renders the player list and turns form posts into calls on the
// injected task service client. It never talks to the network itself.
package ui

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"player-list/pkg/ping"
	"player-list/web/core"
)

//go:embed templates/index.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// view is what one render shows. A nil Tasks slice means "fetch the list".
type view struct {
	Tasks       []core.Task
	CurrentTask string
	Error       string
}

type Page struct {
	log     *slog.Logger
	tasks   core.Tasks
	timeout time.Duration
}

func NewPage(log *slog.Logger, tasks core.Tasks, timeout time.Duration) *Page {
	return &Page{log: log, tasks: tasks, timeout: timeout}
}

func Register(mux *http.ServeMux, log *slog.Logger, deps core.Deps, timeout time.Duration) {
	p := NewPage(log, deps.Tasks, timeout)

	mux.Handle("GET /{$}", p.Index())
	mux.Handle("POST /tasks", p.Submit())
	mux.Handle("POST /tasks/{id}/toggle", p.Toggle())
	mux.Handle("POST /tasks/{id}/delete", p.Delete())
	mux.Handle("GET /static/", http.FileServerFS(staticFS))

	mux.Handle("GET /api/ping", ping.NewHandler(log, map[string]ping.Pinger{"tasks": deps.Tasks}, timeout))
}

func (p *Page) Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.render(w, r, http.StatusOK, view{})
	}
}

// Submit creates a task. Success redirects back to the list so the page
// always shows what the server holds.
func (p *Page) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			p.render(w, r, http.StatusBadRequest, view{Error: "Could not read the form."})
			return
		}
		label := r.PostFormValue("task")

		ctx, cancel := context.WithTimeout(r.Context(), p.timeout)
		defer cancel()

		if _, err := p.tasks.CreateTask(ctx, label); err != nil {
			p.fail(w, r, "add", err, label)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (p *Page) Toggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), p.timeout)
		defer cancel()

		if _, err := p.tasks.ToggleTask(ctx, r.PathValue("id")); err != nil {
			p.fail(w, r, "update", err, "")
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (p *Page) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), p.timeout)
		defer cancel()

		if err := p.tasks.DeleteTask(ctx, r.PathValue("id")); err != nil {
			p.fail(w, r, "remove", err, "")
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (p *Page) fail(w http.ResponseWriter, r *http.Request, action string, err error, label string) {
	p.log.Warn("task action failed", "action", action, "error", err)
	p.render(w, r, statusFor(err), view{
		CurrentTask: label,
		Error:       fmt.Sprintf("Could not %s player: %s", action, reason(err)),
	})
}

func (p *Page) render(w http.ResponseWriter, r *http.Request, code int, v view) {
	if v.Tasks == nil {
		ctx, cancel := context.WithTimeout(r.Context(), p.timeout)
		items, err := p.tasks.ListTasks(ctx)
		cancel()

		if err != nil {
			p.log.Warn("list tasks failed", "error", err)
			items = []core.Task{}
			if v.Error == "" {
				v.Error = "Could not load players: " + reason(err)
				code = statusFor(err)
			}
		}
		v.Tasks = items
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, v); err != nil {
		p.log.Error("render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrBadArguments):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func reason(err error) string {
	switch {
	case errors.Is(err, core.ErrBadArguments):
		return "a player name is required."
	case errors.Is(err, core.ErrNotFound):
		return "that player no longer exists."
	case errors.Is(err, core.ErrUnavailable):
		return "the player list is unavailable, try again later."
	default:
		return strings.ToLower(http.StatusText(http.StatusInternalServerError)) + "."
	}
}
