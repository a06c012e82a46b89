package core

import (
	"context"
	"strings"
)

type Service struct {
	db DB
}

func NewService(db DB) *Service {
	return &Service{
		db: db,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Service) CreateTask(ctx context.Context, label string) (Task, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Task{}, ErrTaskInvalidArgs
	}
	return s.db.CreateTask(ctx, label)
}

func (s *Service) GetTask(ctx context.Context, id string) (Task, error) {
	if strings.TrimSpace(id) == "" {
		return Task{}, ErrTaskInvalidArgs
	}
	return s.db.GetTask(ctx, id)
}

func (s *Service) ListTasks(ctx context.Context, f ListTasksFilter) ([]Task, error) {
	return s.db.ListTasks(ctx, f)
}

// ToggleTask flips completed in a single store update.
func (s *Service) ToggleTask(ctx context.Context, id string) (Task, error) {
	if strings.TrimSpace(id) == "" {
		return Task{}, ErrTaskInvalidArgs
	}
	return s.db.ToggleTask(ctx, id)
}

func (s *Service) PatchTask(ctx context.Context, id string, p TaskPatch) (Task, error) {
	if strings.TrimSpace(id) == "" || p.Empty() {
		return Task{}, ErrTaskInvalidArgs
	}

	if p.Task != nil {
		label := strings.TrimSpace(*p.Task)
		if label == "" {
			return Task{}, ErrTaskInvalidArgs
		}
		p.Task = &label
	}

	return s.db.UpdateTask(ctx, id, p)
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrTaskInvalidArgs
	}
	return s.db.DeleteTask(ctx, id)
}
