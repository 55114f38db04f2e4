// Package task defines the Task record and the status and filter vocabulary
// shared by the storage, presentation and command layers.
package task

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

// Status tokens are stored verbatim in the status column.
const (
	Done    = "DONE"
	Pending = "PENDING"
)

// TableName is the name of the single record table.
const TableName = "tasks"

// CreatedAtLayout is the created_at format: date and time, UTC, no zone suffix.
const CreatedAtLayout = "2006-01-02 15:04:05"

// ErrEmptyTitle is returned by ValidateTitle for blank titles.
var ErrEmptyTitle = errors.New("title must not be empty")

// Task is one persisted record.
type Task struct {
	ID        int64
	Title     string
	Status    string
	CreatedAt string
}

// IsDone reports whether the task carries the DONE token.
func (t Task) IsDone() bool {
	return t.Status == Done
}

// Filter selects a subset of tasks by status.
type Filter int

const (
	All Filter = iota
	OnlyDone
	OnlyPending
)

func (f Filter) String() string {
	switch f {
	case All:
		return "all"
	case OnlyDone:
		return "done"
	case OnlyPending:
		return "pending"
	default:
		return "unknown"
	}
}

// ShowFilter maps a status character to the filter used when listing.
// 'd' selects DONE, 'p' selects PENDING, anything else selects all tasks.
func ShowFilter(c rune) Filter {
	switch unicode.ToLower(c) {
	case 'd':
		return OnlyDone
	case 'p':
		return OnlyPending
	default:
		return All
	}
}

// ClearFilter maps a status character to the filter used for batch deletes.
// 'a' selects all tasks; unrecognized characters fall back to PENDING, not all.
func ClearFilter(c rune) Filter {
	switch unicode.ToLower(c) {
	case 'd':
		return OnlyDone
	case 'a':
		return All
	default:
		return OnlyPending
	}
}

// StatusFromChar maps a status character to a token. Only 'd' means DONE.
func StatusFromChar(c rune) string {
	if unicode.ToLower(c) == 'd' {
		return Done
	}
	return Pending
}

// NormalizeStatus returns Done for the DONE token and Pending for anything else.
func NormalizeStatus(status string) string {
	if status == Done {
		return Done
	}
	return Pending
}

// FormatCreatedAt renders t in UTC using CreatedAtLayout.
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format(CreatedAtLayout)
}

// ValidateTitle rejects empty and whitespace-only titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}
