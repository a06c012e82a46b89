package rest

import (
	"time"

	"player-list/tasks/core"
)

type CreateTaskIn struct {
	Task string `json:"task"`
}

type PatchTaskIn struct {
	Task      *string `json:"task,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

type TaskOut struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

func TaskToOut(t core.Task) TaskOut {
	return TaskOut{
		ID:        t.ID,
		Task:      t.Task,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
	}
}

func TasksToOut(items []core.Task) []TaskOut {
	out := make([]TaskOut, 0, len(items))
	for _, t := range items {
		out = append(out, TaskToOut(t))
	}
	return out
}
