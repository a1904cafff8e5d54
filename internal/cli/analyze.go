package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ticksched/internal/analysis"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <workload.yml>",
		Short: "Check RMS/EDF schedulability of a workload",
		Long: `Computes total utilization, the Liu-Layland RMS bound, and EDF
feasibility for the workload's task set, without running it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := LoadWorkload(args[0])
			if err != nil {
				return err
			}

			tasks := make([]analysis.Task, 0, len(w.Tasks))
			for _, wt := range w.Tasks {
				tasks = append(tasks, analysis.Task{
					Name:     wt.Name,
					Period:   int(wt.Period),
					ExecTime: wt.ExecTime,
					Deadline: int(wt.Deadline),
				})
			}

			report, err := analysis.Analyze(tasks)
			if err != nil {
				return err
			}

			fmt.Printf("Task set (%d tasks):\n", len(tasks))
			for _, t := range tasks {
				fmt.Printf("  %-16s period=%-6d exec=%-5d deadline=%d\n",
					t.Name, t.Period, t.ExecTime, t.EffectiveDeadline())
			}
			fmt.Printf("Total utilization:  %.3f\n", report.Utilization)
			fmt.Printf("RMS bound (n=%d):   %.3f\n", len(tasks), report.RMSBound)
			fmt.Printf("RMS verdict:        %s\n", report.RMS)
			fmt.Printf("EDF verdict:        %s\n", report.EDF)
			fmt.Printf("Hyperperiod:        %d ticks\n", report.Hyperperiod)
			return nil
		},
	}
	return cmd
}
