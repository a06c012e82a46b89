package core

import "context"

type Pinger interface {
	Ping(ctx context.Context) error
}

// Tasks is the capability set the list page needs from the task service.
type Tasks interface {
	Pinger

	ListTasks(ctx context.Context) ([]Task, error)
	CreateTask(ctx context.Context, label string) (Task, error)
	ToggleTask(ctx context.Context, id string) (Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type Deps struct {
	Tasks Tasks
}
