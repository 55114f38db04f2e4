// Package main implements the tasks command-line task tracker.
//
// Each invocation runs exactly one subcommand against the SQLite file in the
// working directory (db.db3 unless configured otherwise):
//
//	tasks create                 create the task table
//	tasks add <title>            add a PENDING task
//	tasks delete <id>            delete a task
//	tasks show <d|p|a>           show tasks with a status summary
//	tasks status <id> <d|p>      set a task DONE or PENDING
//	tasks edit <id> <title>      change a task title
//	tasks clear <d|p|a>          batch-delete tasks
//
// Exit codes:
//   - 0: Success (including deletes and updates of missing ids)
//   - 1: Storage or configuration failure
//   - 2: Malformed invocation
//
// Environment variables:
//   - TASKS_DB_PATH: Optional. Database file relative to the working directory.
//   - TASKS_BACKEND: Optional. Storage backend (only sqlite).
//   - TASKS_LOG_LEVEL: Optional. Diagnostic log level on stderr (default: warn).
//   - TASKS_LOG_FORMAT: Optional. text, json or logfmt.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JamesPrial/tasks/internal/config"
	"github.com/JamesPrial/tasks/internal/logging"
	"github.com/JamesPrial/tasks/internal/storage"
	"github.com/JamesPrial/tasks/internal/tracker"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// run contains the main logic, returning an exit code.
//
// Process flow:
//  1. Load configuration for workDir
//  2. Build the storage backend (no file access yet)
//  3. Parse one subcommand and run its action
//  4. Map the outcome to an exit code
func run(args []string, workDir string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(workDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	logger := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)

	store, err := storage.NewTaskStore(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	logger.Debug("store configured", "backend", cfg.Backend, "path", cfg.DBPath, "config", cfg.File)

	root := newRootCmd(tracker.New(store, stdout, logger))
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(context.Background())
	if err == nil {
		return exitOK
	}

	var failure *tracker.Failure
	if errors.As(err, &failure) {
		fmt.Fprintln(stderr, failure.Error())
		return exitFailure
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	if cmd != nil {
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return exitUsage
}

func main() {
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFailure)
	}
	os.Exit(run(os.Args[1:], workDir, os.Stdout, os.Stderr))
}
