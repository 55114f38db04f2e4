package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/JamesPrial/tasks/internal/tracker"
)

// version is set at build time.
var version = "dev"

var errNoCommand = errors.New("missing command")

// newRootCmd builds the command tree. Every subcommand maps to one Tracker action.
func newRootCmd(tr *tracker.Tracker) *cobra.Command {
	root := &cobra.Command{
		Use:           "tasks",
		Short:         "To-do list with SQL",
		Long:          "tasks keeps a to-do list in a local SQLite file.\nRun 'tasks create' once before using the other commands.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return &tracker.UsageError{Err: errNoCommand}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newCreateCmd(tr),
		newAddCmd(tr),
		newDeleteCmd(tr),
		newShowCmd(tr),
		newStatusCmd(tr),
		newEditCmd(tr),
		newClearCmd(tr),
	)
	return root
}

func newCreateCmd(tr *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tr.Create(cmd.Context())
		},
	}
}

func newAddCmd(tr *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Add task <TITLE>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := tr.Add(cmd.Context(), args[0])
			return err
		},
	}
}

func newDeleteCmd(tr *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete task <ID>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := tracker.ParseID(args[0])
			if err != nil {
				return err
			}
			return tr.Delete(cmd.Context(), id)
		},
	}
}

func newShowCmd(tr *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:   "show <status>",
		Short: "Show tasks <D=done, P=pending, A=all>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := tracker.ParseFlag(args[0])
			if err != nil {
				return err
			}
			return tr.Show(cmd.Context(), status)
		},
	}
}

func newStatusCmd(tr *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Update task status <ID> <D=done or P=pending>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := tracker.ParseID(args[0])
			if err != nil {
				return err
			}
			status, err := tracker.ParseFlag(args[1])
			if err != nil {
				return err
			}
			return tr.Status(cmd.Context(), id, status)
		},
	}
}

func newEditCmd(tr *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <title>",
		Short: "Change task title <ID> <NEW_TITLE>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := tracker.ParseID(args[0])
			if err != nil {
				return err
			}
			return tr.Edit(cmd.Context(), id, args[1])
		},
	}
}

func newClearCmd(tr *tracker.Tracker) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <status>",
		Short: "Batch-delete tasks <D=done, P=pending, A=all>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := tracker.ParseFlag(args[0])
			if err != nil {
				return err
			}
			return tr.Clear(cmd.Context(), status)
		},
	}
}
