// Package storage provides the persistent task store.
//
// This package defines the TaskStore contract used by the command layer and
// the SQLite implementation of it. Every operation opens its own connection,
// runs a single statement and closes the connection again.
package storage

import (
	"context"
	"fmt"

	"github.com/JamesPrial/tasks/internal/task"
)

// TaskStore defines the primitive data operations on the task table.
//
// Only Initialize creates the table. All other operations assume it exists
// and fail with a *StorageError when it does not.
type TaskStore interface {
	// Initialize creates the task table if it is absent.
	//
	// Calling Initialize on an existing table is a no-op and never alters
	// existing rows.
	Initialize(ctx context.Context) error

	// Insert appends one task and returns the id assigned by the store.
	Insert(ctx context.Context, title, status, createdAt string) (int64, error)

	// List returns the tasks matching filter in id order.
	//
	// Returns an empty slice, not an error, when nothing matches.
	List(ctx context.Context, filter task.Filter) ([]task.Task, error)

	// DeleteOne removes the task with the given id.
	//
	// A missing id is not an error; the returned count is 0.
	DeleteOne(ctx context.Context, id int64) (int64, error)

	// DeleteMany removes every task matching filter. Filters other than
	// All and OnlyDone remove only PENDING tasks.
	DeleteMany(ctx context.Context, filter task.Filter) (int64, error)

	// UpdateTitle replaces the title of the given task. No-op if id is absent.
	UpdateTitle(ctx context.Context, id int64, title string) (int64, error)

	// UpdateStatus sets the status of the given task. Any token other than
	// task.Done is stored as task.Pending. No-op if id is absent.
	UpdateStatus(ctx context.Context, id int64, status string) (int64, error)
}

// StorageError reports a failed store operation.
type StorageError struct {
	// Op names the failed operation (e.g. "insert", "list").
	Op string

	// Err is the underlying driver or filesystem error.
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
