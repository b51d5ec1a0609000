package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/forgeflow/forgeflow/internal/daemon"
	"github.com/forgeflow/forgeflow/internal/domain"
)

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status: pending, in_progress, completed, blocked, failed")
	rootCmd.AddCommand(listCmd)
}

var listStatus string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	if listStatus != "" && !domain.TaskStatus(listStatus).Valid() {
		return fmt.Errorf("%q: %w", listStatus, domain.ErrUnknownStatus)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	tasks, err := d.DB.ListTasks(domain.TaskStatus(listStatus))
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks. Run 'forgeflow add <title>' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tSTATUS\tCREATED")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID(t.ID),
			t.Title,
			t.Priority,
			t.Status,
			t.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return w.Flush()
}

// shortID truncates UUIDs for table display. Full IDs still work everywhere.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
