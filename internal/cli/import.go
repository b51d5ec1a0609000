package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/forgeflow/forgeflow/internal/app"
	"github.com/forgeflow/forgeflow/internal/daemon"
	"github.com/forgeflow/forgeflow/internal/domain"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <taskfile>",
	Short: "Import tasks from a Taskfile",
	Long: `Import tasks in bulk from a Taskfile.

A Taskfile is a plain-text manifest:

  # Sprint backlog
  TASK Migrate the database schema
  PRIORITY high
  DESC """
  Run the pending migrations.
  Depends on the backup task.
  """

  TASK Back up the database`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := app.ParseTaskfile(f)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Nothing to import.")
		return nil
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	for _, e := range entries {
		task := domain.TaskRecord{
			ID:          uuid.NewString(),
			Title:       e.Title,
			Description: e.Description,
			Priority:    e.Priority,
			Status:      domain.TaskPending,
			CreatedAt:   time.Now().UTC(),
		}
		if err := d.DB.InsertTask(task); err != nil {
			return fmt.Errorf("insert %q: %w", e.Title, err)
		}
	}

	fmt.Printf("Imported %d tasks\n", len(entries))
	return nil
}
