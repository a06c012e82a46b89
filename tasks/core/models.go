package core

import "time"

type Task struct {
	ID        string
	Task      string
	Completed bool
	CreatedAt time.Time // derived from the id, read-only
}

type TaskPatch struct {
	Task      *string
	Completed *bool
}

func (p TaskPatch) Empty() bool {
	return p.Task == nil && p.Completed == nil
}

type ListTasksFilter struct {
	Completed *bool
}
