package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/forgeflow/forgeflow/internal/daemon"
)

func init() {
	rootCmd.AddCommand(rmCmd)
}

var rmCmd = &cobra.Command{
	Use:     "rm <task-id>",
	Aliases: []string{"remove"},
	Short:   "Remove a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.DB.DeleteTask(args[0]); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", shortID(args[0]))
	return nil
}
