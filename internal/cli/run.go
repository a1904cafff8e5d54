package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"ticksched/internal/job"
	"ticksched/internal/sched"
)

func newRunCmd() *cobra.Command {
	var tracePath string
	var fast bool
	var ticksOverride int

	cmd := &cobra.Command{
		Use:   "run <workload.yml>",
		Short: "Simulate a workload on the preemptive scheduler",
		Long: `Creates every task from the workload file, then drives the scheduler for
the configured number of ticks. With --fast the ticks are delivered in a
tight loop instead of wall-clock intervals.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := LoadWorkload(args[0])
			if err != nil {
				return err
			}
			if ticksOverride > 0 {
				w.Ticks = ticksOverride
			}

			cfg := sched.Load(flagConfig)
			s := sched.New(cfg, logger)
			defer s.Close()

			if tracePath == "" {
				tracePath = cfg.TraceCSV
			}
			if tracePath != "" {
				if err := s.EnableCSVTrace(tracePath); err != nil {
					return fmt.Errorf("enable trace: %w", err)
				}
			}

			// Tasks with "block" behavior yield voluntarily after each
			// dispatch; the driver issues the BlockCurrent on their behalf.
			blockers := make(map[sched.TaskID]uint64)
			ids := make([]sched.TaskID, 0, len(w.Tasks))
			for _, wt := range w.Tasks {
				id, err := s.CreateTask(wt.Name, wt.Priority, wt.Deadline, wt.Period, taskBody(wt))
				if err != nil {
					return fmt.Errorf("create task %q: %w", wt.Name, err)
				}
				ids = append(ids, id)
				if wt.Behavior == "block" {
					blockers[id] = wt.BlockTimeout
				}
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			step := func(ctx context.Context) error {
				id, err := s.Tick(ctx)
				return settle(ctx, s, id, err, blockers, logger)
			}

			if fast {
				for i := 0; i < w.Ticks; i++ {
					if err := step(ctx); err != nil {
						return err
					}
				}
			} else {
				clock := sched.NewTickClock(256)
				clock.Start(time.Duration(cfg.TickMS) * time.Millisecond)
				defer clock.Stop()
				if err := clock.Pump(ctx, int64(w.Ticks), step); err != nil {
					return err
				}
			}

			stats := s.Stats()
			fmt.Printf("Total ticks: %d\n", stats.Ticks)
			fmt.Printf("Total context switches: %d\n", stats.Switches)
			for _, id := range ids {
				info, err := s.QueryState(id)
				if err != nil {
					return err
				}
				fmt.Printf("Task %q: ran %d times, final state %s\n",
					info.Name, info.RunCount, info.State)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tracePath, "trace", "", "Write a CSV event trace to this file")
	cmd.Flags().BoolVar(&fast, "fast", false, "Deliver ticks as fast as possible")
	cmd.Flags().IntVar(&ticksOverride, "ticks", 0, "Override the workload's tick count")

	return cmd
}

// settle logs a task fault, then chains voluntary blocks until the CPU is
// held by a non-blocking task or nobody. Each BlockCurrent dispatches a
// replacement, which may itself be a blocker.
func settle(ctx context.Context, s *sched.Scheduler, id sched.TaskID, err error, blockers map[sched.TaskID]uint64, logger *slog.Logger) error {
	for {
		if err != nil {
			var fault *sched.TaskFault
			if !errors.As(err, &fault) {
				return err
			}
			logger.Warn("task fault", "task", fault.Name, "err", fault.Err)
		}
		timeout, ok := blockers[id]
		if !ok {
			return nil
		}
		id, err = s.BlockCurrent(ctx, timeout)
	}
}

func taskBody(wt WorkloadTask) sched.Work {
	switch wt.Behavior {
	case "sleep":
		return job.SleepWork(wt.ExecMS)
	case "fail":
		return job.FailAfter(wt.FailAfter)
	case "block":
		return job.NopWork()
	default:
		iters := wt.ExecTime * 1000
		if iters <= 0 {
			iters = 1000
		}
		return job.SpinWork(iters)
	}
}
