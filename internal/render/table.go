// Package render formats tasks for the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/JamesPrial/tasks/internal/task"
)

// Headers are the table column names, in column order.
var Headers = []string{"id", "title", "status", "created_at"}

// Tasks renders tasks as a bordered table followed by the status summary.
//
// The summary is separated from the table by a blank line and is omitted
// entirely when tasks is empty.
func Tasks(tasks []task.Task) string {
	var b strings.Builder
	b.WriteString(Table(tasks))
	b.WriteString("\n")
	if summary := Summary(tasks); summary != "" {
		b.WriteString("\n")
		b.WriteString(summary)
	}
	return b.String()
}

// Table renders tasks as a column-aligned table with a header row and
// separators between rows. Column widths follow the content.
func Table(tasks []task.Task) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			t.Status,
			t.CreatedAt,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers(Headers...).
		Rows(rows...).
		String()
}

// Summary returns one "DONE: n" and one "PENDING: n" line, each only when n > 0.
// Any status other than DONE counts as pending.
func Summary(tasks []task.Task) string {
	done, pending := Count(tasks)

	var b strings.Builder
	if done > 0 {
		fmt.Fprintf(&b, "%s: %d\n", task.Done, done)
	}
	if pending > 0 {
		fmt.Fprintf(&b, "%s: %d\n", task.Pending, pending)
	}
	return b.String()
}

// Count returns the number of DONE and non-DONE tasks.
func Count(tasks []task.Task) (done, pending int) {
	for _, t := range tasks {
		if t.IsDone() {
			done++
		} else {
			pending++
		}
	}
	return done, pending
}
