package tests

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"player-list/tasks/core"
)

type fakeDB struct {
	mu sync.RWMutex

	nextTaskID int64
	tasks      map[string]core.Task
	order      map[string]int64

	down bool
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		nextTaskID: 1,
		tasks:      make(map[string]core.Task),
		order:      make(map[string]int64),
	}
}

// newDownDB behaves like a store whose bootstrap failed.
func newDownDB() *fakeDB {
	db := newFakeDB()
	db.down = true
	return db
}

func (db *fakeDB) Ping(context.Context) error {
	if db.down {
		return core.ErrStoreUnavailable
	}
	return nil
}

func (db *fakeDB) CreateTask(_ context.Context, label string) (core.Task, error) {
	if db.down {
		return core.Task{}, core.ErrStoreUnavailable
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	seq := db.nextTaskID
	db.nextTaskID++

	task := core.Task{
		ID:        fmt.Sprintf("%024x", seq),
		Task:      label,
		CreatedAt: time.Now(),
	}
	db.tasks[task.ID] = task
	db.order[task.ID] = seq

	return task, nil
}

func (db *fakeDB) GetTask(_ context.Context, id string) (core.Task, error) {
	if db.down {
		return core.Task{}, core.ErrStoreUnavailable
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	task, ok := db.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	return task, nil
}

func (db *fakeDB) ListTasks(_ context.Context, f core.ListTasksFilter) ([]core.Task, error) {
	if db.down {
		return nil, core.ErrStoreUnavailable
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Task, 0, len(db.tasks))
	for _, task := range db.tasks {
		if f.Completed != nil && task.Completed != *f.Completed {
			continue
		}
		out = append(out, task)
	}

	sort.Slice(out, func(i, j int) bool {
		return db.order[out[i].ID] < db.order[out[j].ID]
	})

	return out, nil
}

func (db *fakeDB) UpdateTask(_ context.Context, id string, p core.TaskPatch) (core.Task, error) {
	if db.down {
		return core.Task{}, core.ErrStoreUnavailable
	}
	if p.Empty() {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	task, ok := db.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}

	if p.Task != nil {
		task.Task = *p.Task
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}

	db.tasks[id] = task
	return task, nil
}

func (db *fakeDB) ToggleTask(_ context.Context, id string) (core.Task, error) {
	if db.down {
		return core.Task{}, core.ErrStoreUnavailable
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	task, ok := db.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}

	task.Completed = !task.Completed
	db.tasks[id] = task
	return task, nil
}

func (db *fakeDB) DeleteTask(_ context.Context, id string) error {
	if db.down {
		return core.ErrStoreUnavailable
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.tasks[id]; !ok {
		return core.ErrTaskNotFound
	}

	delete(db.tasks, id)
	delete(db.order, id)
	return nil
}
