package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/forgeflow/forgeflow/internal/daemon"
	"github.com/forgeflow/forgeflow/internal/scheduler"
)

func init() {
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Emit the full schedule result as JSON")
	rootCmd.AddCommand(planCmd)
}

var planJSON bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute an execution plan for pending tasks",
	Long: `Profile all stored tasks, infer dependencies from their descriptions,
and print an execution plan of parallel batches.`,
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	tasks, err := d.DB.ListTasks("")
	if err != nil {
		return err
	}

	result := scheduler.ComputeSchedule(tasks, d.Config.SchedulerOptions())

	if planJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printPlan(result)
	return nil
}

func printPlan(result scheduler.Result) {
	r := result.Report

	fmt.Printf("Tasks: %d total, %d pending, %d completed\n",
		r.TotalTasks, r.PendingTasks, r.CompletedTasks)

	if len(r.Batches) == 0 {
		fmt.Println("Nothing to schedule.")
	}

	for _, b := range r.Batches {
		fmt.Printf("\nBatch %d (%d min)\n", b.Index+1, b.EstimatedMinutes)
		for i, id := range b.TaskIDs {
			line := fmt.Sprintf("  %s  %s", shortID(id), b.Titles[i])
			if flags := b.Flags[id]; len(flags) > 0 {
				names := make([]string, len(flags))
				for j, f := range flags {
					names[j] = string(f)
				}
				line += "  [" + strings.Join(names, " ") + "]"
			}
			fmt.Println(line)
		}
	}

	if len(r.Blocked) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "BLOCKED\tREASON")
		for _, b := range r.Blocked {
			fmt.Fprintf(w, "%s\t%s\n", shortID(b.TaskID), b.Reason)
		}
		w.Flush()
	}

	if r.TotalEstimatedMinutes > 0 {
		fmt.Printf("\nEstimated wall time: %d min across %d batches\n",
			r.TotalEstimatedMinutes, len(r.Batches))
	}
}
