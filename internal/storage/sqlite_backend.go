package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/JamesPrial/tasks/internal/task"
)

// schemaDDL defines the task table. Only the table name is inlined.
var schemaDDL = fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    id         INTEGER PRIMARY KEY,
    title      VARCHAR(255) NOT NULL,
    status     VARCHAR(10) NOT NULL,
    created_at VARCHAR(20) NOT NULL
)`, task.TableName)

var (
	insertSQL       = fmt.Sprintf(`INSERT INTO %s (title, status, created_at) VALUES (?, ?, ?)`, task.TableName)
	selectAllSQL    = fmt.Sprintf(`SELECT id, title, status, created_at FROM %s ORDER BY id`, task.TableName)
	selectStatusSQL = fmt.Sprintf(`SELECT id, title, status, created_at FROM %s WHERE status = ? ORDER BY id`, task.TableName)
	deleteIDSQL     = fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, task.TableName)
	deleteAllSQL    = fmt.Sprintf(`DELETE FROM %s`, task.TableName)
	deleteStatusSQL = fmt.Sprintf(`DELETE FROM %s WHERE status = ?`, task.TableName)
	updateTitleSQL  = fmt.Sprintf(`UPDATE %s SET title = ? WHERE id = ?`, task.TableName)
	updateStatusSQL = fmt.Sprintf(`UPDATE %s SET status = ? WHERE id = ?`, task.TableName)
)

// SQLiteBackend implements TaskStore on a single SQLite file.
type SQLiteBackend struct {
	// DBPath is the path to the SQLite database file.
	DBPath string
}

// NewSQLiteBackend returns a backend for dbPath.
//
// The file and table are not touched until the first operation; the table is
// only created by Initialize.
func NewSQLiteBackend(dbPath string) *SQLiteBackend {
	return &SQLiteBackend{
		DBPath: dbPath,
	}
}

// connect opens a new database connection with WAL mode enabled.
//
// Creates the parent directory if needed. Opening a missing file creates an
// empty database, which is harmless: without Initialize it has no task table.
func (b *SQLiteBackend) connect(ctx context.Context) (*sql.DB, error) {
	dir := filepath.Dir(b.DBPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", b.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	return db, nil
}

// exec runs a single statement and returns the number of affected rows.
func (b *SQLiteBackend) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	db, err := b.connect(ctx)
	if err != nil {
		return 0, storageErr(op, err)
	}
	defer func() { _ = db.Close() }()

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, storageErr(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr(op, fmt.Errorf("failed to read rows affected: %w", err))
	}
	return n, nil
}

// Initialize creates the task table if it doesn't exist.
func (b *SQLiteBackend) Initialize(ctx context.Context) error {
	_, err := b.exec(ctx, "initialize", schemaDDL)
	return err
}

// Insert appends one task and returns its id.
func (b *SQLiteBackend) Insert(ctx context.Context, title, status, createdAt string) (int64, error) {
	db, err := b.connect(ctx)
	if err != nil {
		return 0, storageErr("insert", err)
	}
	defer func() { _ = db.Close() }()

	res, err := db.ExecContext(ctx, insertSQL, title, status, createdAt)
	if err != nil {
		return 0, storageErr("insert", fmt.Errorf("failed to insert task: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("insert", fmt.Errorf("failed to read inserted id: %w", err))
	}
	return id, nil
}

// List returns the tasks matching filter ordered by id.
func (b *SQLiteBackend) List(ctx context.Context, filter task.Filter) ([]task.Task, error) {
	db, err := b.connect(ctx)
	if err != nil {
		return nil, storageErr("list", err)
	}
	defer func() { _ = db.Close() }()

	var rows *sql.Rows
	switch filter {
	case task.OnlyDone:
		rows, err = db.QueryContext(ctx, selectStatusSQL, task.Done)
	case task.OnlyPending:
		rows, err = db.QueryContext(ctx, selectStatusSQL, task.Pending)
	default:
		rows, err = db.QueryContext(ctx, selectAllSQL)
	}
	if err != nil {
		return nil, storageErr("list", fmt.Errorf("failed to query tasks: %w", err))
	}
	defer func() { _ = rows.Close() }()

	result := make([]task.Task, 0)
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Status, &t.CreatedAt); err != nil {
			return nil, storageErr("list", fmt.Errorf("failed to scan row: %w", err))
		}
		result = append(result, t)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("list", fmt.Errorf("error iterating rows: %w", err))
	}

	return result, nil
}

// DeleteOne removes the task with the given id.
func (b *SQLiteBackend) DeleteOne(ctx context.Context, id int64) (int64, error) {
	return b.exec(ctx, "delete", deleteIDSQL, id)
}

// DeleteMany removes all tasks matching filter.
func (b *SQLiteBackend) DeleteMany(ctx context.Context, filter task.Filter) (int64, error) {
	switch filter {
	case task.All:
		return b.exec(ctx, "clear", deleteAllSQL)
	case task.OnlyDone:
		return b.exec(ctx, "clear", deleteStatusSQL, task.Done)
	default:
		return b.exec(ctx, "clear", deleteStatusSQL, task.Pending)
	}
}

// UpdateTitle replaces the title of the given task.
func (b *SQLiteBackend) UpdateTitle(ctx context.Context, id int64, title string) (int64, error) {
	return b.exec(ctx, "update title", updateTitleSQL, title, id)
}

// UpdateStatus sets the status of the given task.
func (b *SQLiteBackend) UpdateStatus(ctx context.Context, id int64, status string) (int64, error) {
	return b.exec(ctx, "update status", updateStatusSQL, task.NormalizeStatus(status), id)
}
