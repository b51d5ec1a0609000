package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/forgeflow/forgeflow/internal/daemon"
	"github.com/forgeflow/forgeflow/internal/domain"
)

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description (used for profiling and dependency inference)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "Priority: critical, high, medium, low")
	rootCmd.AddCommand(addCmd)
}

var (
	addDescription string
	addPriority    string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return domain.ErrEmptyTitle
	}

	priority := domain.TaskPriority(addPriority)
	if !priority.Valid() {
		return fmt.Errorf("%q: %w", addPriority, domain.ErrUnknownPriority)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	task := domain.TaskRecord{
		ID:          uuid.NewString(),
		Title:       title,
		Description: addDescription,
		Priority:    priority,
		Status:      domain.TaskPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := d.DB.InsertTask(task); err != nil {
		return err
	}

	fmt.Printf("Added %s (%s)\n", task.ID, task.Title)
	return nil
}
