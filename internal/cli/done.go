package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgeflow/forgeflow/internal/daemon"
	"github.com/forgeflow/forgeflow/internal/domain"
)

func init() {
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(statusCmd)
}

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(args[0], domain.TaskCompleted)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <task-id> <status>",
	Short: "Set a task's status",
	Long:  `Set a task's status to one of: pending, in_progress, completed, blocked, failed.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := domain.TaskStatus(args[1])
		if !status.Valid() {
			return fmt.Errorf("%q: %w", args[1], domain.ErrUnknownStatus)
		}
		return setStatus(args[0], status)
	},
}

func setStatus(id string, status domain.TaskStatus) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.DB.UpdateTaskStatus(id, status); err != nil {
		return err
	}
	fmt.Printf("%s -> %s\n", shortID(id), status)
	return nil
}
