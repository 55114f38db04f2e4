// Package tracker implements the seven task actions on top of a TaskStore.
//
// Both the tasks CLI and the MCP server decode their input into calls on a
// Tracker, so argument decoding, fallback mappings and failure messages live
// here once.
package tracker

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/JamesPrial/tasks/internal/logging"
	"github.com/JamesPrial/tasks/internal/render"
	"github.com/JamesPrial/tasks/internal/storage"
	"github.com/JamesPrial/tasks/internal/task"
)

// Static failure messages, one per action.
const (
	MsgCreate = "Could not create database table"
	MsgAdd    = "could not add task"
	MsgDelete = "could not delete task"
	MsgShow   = "could not show tasks"
	MsgStatus = "could not update task status"
	MsgEdit   = "could not edit task"
	MsgClear  = "could not clear tasks"
)

// Failure is a storage failure tagged with the user-facing message for the
// action that hit it.
type Failure struct {
	Msg string
	Err error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Msg, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Tracker dispatches actions to a store and writes rendered output to Out.
type Tracker struct {
	Store  storage.TaskStore
	Out    io.Writer
	Now    func() time.Time
	Logger *log.Logger
}

// New returns a Tracker using the wall clock. A nil logger discards output.
func New(store storage.TaskStore, out io.Writer, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Tracker{
		Store:  store,
		Out:    out,
		Now:    time.Now,
		Logger: logger,
	}
}

// Create initializes the task table.
func (t *Tracker) Create(ctx context.Context) error {
	if err := t.Store.Initialize(ctx); err != nil {
		return &Failure{Msg: MsgCreate, Err: err}
	}
	t.Logger.Debug("table ready", "table", task.TableName)
	return nil
}

// Add inserts a PENDING task stamped with the current time.
func (t *Tracker) Add(ctx context.Context, title string) (int64, error) {
	if err := task.ValidateTitle(title); err != nil {
		return 0, &UsageError{Err: err}
	}
	id, err := t.Store.Insert(ctx, title, task.Pending, task.FormatCreatedAt(t.Now()))
	if err != nil {
		return 0, &Failure{Msg: MsgAdd, Err: err}
	}
	t.Logger.Debug("task added", "id", id)
	return id, nil
}

// Delete removes one task. Deleting a missing id succeeds.
func (t *Tracker) Delete(ctx context.Context, id int64) error {
	n, err := t.Store.DeleteOne(ctx, id)
	if err != nil {
		return &Failure{Msg: MsgDelete, Err: err}
	}
	t.Logger.Debug("task deleted", "id", id, "affected", n)
	return nil
}

// Show writes the tasks selected by the status character, plus the summary.
func (t *Tracker) Show(ctx context.Context, status rune) error {
	filter := task.ShowFilter(status)
	tasks, err := t.Store.List(ctx, filter)
	if err != nil {
		return &Failure{Msg: MsgShow, Err: err}
	}
	t.Logger.Debug("tasks listed", "filter", filter, "count", len(tasks))
	if _, err := io.WriteString(t.Out, render.Tasks(tasks)); err != nil {
		return &Failure{Msg: MsgShow, Err: err}
	}
	return nil
}

// Status sets a task to DONE for 'd' and to PENDING for any other character.
func (t *Tracker) Status(ctx context.Context, id int64, status rune) error {
	token := task.StatusFromChar(status)
	n, err := t.Store.UpdateStatus(ctx, id, token)
	if err != nil {
		return &Failure{Msg: MsgStatus, Err: err}
	}
	t.Logger.Debug("status updated", "id", id, "status", token, "affected", n)
	return nil
}

// Edit replaces a task title.
func (t *Tracker) Edit(ctx context.Context, id int64, title string) error {
	if err := task.ValidateTitle(title); err != nil {
		return &UsageError{Err: err}
	}
	n, err := t.Store.UpdateTitle(ctx, id, title)
	if err != nil {
		return &Failure{Msg: MsgEdit, Err: err}
	}
	t.Logger.Debug("title updated", "id", id, "affected", n)
	return nil
}

// Clear batch-deletes tasks. 'd' clears DONE and 'a' clears everything;
// 'p' and every unrecognized character clear PENDING.
func (t *Tracker) Clear(ctx context.Context, status rune) error {
	filter := task.ClearFilter(status)
	n, err := t.Store.DeleteMany(ctx, filter)
	if err != nil {
		return &Failure{Msg: MsgClear, Err: err}
	}
	t.Logger.Debug("tasks cleared", "filter", filter, "affected", n)
	return nil
}
