package core

import "context"

type DB interface {
	Ping(ctx context.Context) error

	CreateTask(ctx context.Context, label string) (Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	ListTasks(ctx context.Context, f ListTasksFilter) ([]Task, error)
	UpdateTask(ctx context.Context, id string, p TaskPatch) (Task, error)
	// ToggleTask flips completed in one store-side step.
	ToggleTask(ctx context.Context, id string) (Task, error)
	DeleteTask(ctx context.Context, id string) error
}
