// internal/sched/scheduler.go

package sched

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Scheduler is a preemptive fixed-priority scheduler over one logical CPU,
// advanced by explicit calls to Tick. "Blocking" is a task state, never a
// suspension of the calling goroutine. All entry points are serialized
// behind a single mutex; the heap rebuild and the state transitions are not
// individually atomic.
type Scheduler struct {
	mu       sync.Mutex
	table    *taskTable
	ready    *readyQueue
	current  TaskID // Running task, or NoTask
	ticks    uint64
	switches uint64

	logger   *slog.Logger
	statusCh chan StatusEvent
	trace    *csvTrace
	closed   bool
}

// Stats is the scheduler-level counter snapshot.
type Stats struct {
	Ticks    uint64
	Switches uint64
}

// New creates a Scheduler with the given configuration. A nil logger falls
// back to slog.Default().
func New(cfg Config, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		table:    newTaskTable(cfg.MaxTasks),
		ready:    newReadyQueue(cfg.MaxTasks),
		current:  NoTask,
		logger:   logger.With("component", "sched"),
		statusCh: make(chan StatusEvent, cfg.EventBuffer),
	}
}

// EnableCSVTrace opens the given file path for CSV logging of events.
// Must be called before driving the scheduler.
func (s *Scheduler) EnableCSVTrace(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, err := newCSVTrace(path)
	if err != nil {
		return err
	}
	s.trace = tr
	return nil
}

// StatusChannel exposes a read-only event stream (optional consumers).
// Emission is non-blocking; a slow consumer loses events, never stalls
// the tick path.
func (s *Scheduler) StatusChannel() <-chan StatusEvent { return s.statusCh }

// Close flushes the CSV trace and closes the status channel. The scheduler
// must not be driven afterwards.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.trace != nil {
		s.trace.close()
	}
	close(s.statusCh)
}

// CreateTask registers a new task in Ready state and returns its handle.
// Priority is an unsigned rank, higher = more urgent; deadline breaks ties
// among equal priorities; period is bookkeeping only and is clamped to 1
// when zero.
func (s *Scheduler) CreateTask(name string, priority, deadline, period uint32, work Work) (TaskID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if period == 0 {
		period = 1
	}

	id, err := s.table.add(Task{
		Name:     name,
		Priority: priority,
		Deadline: deadline,
		Period:   period,
		State:    StateReady,
		work:     work,
	})
	if err != nil {
		return NoTask, err
	}

	s.emit(StatusEnqueue, id, name)
	s.logger.Info("task created", "task", name, "id", id, "priority", priority)
	return id, nil
}

// Tick advances simulated time by exactly one step and performs, in fixed
// order: the unblock pass, the preemption check, and the idle dispatch.
// It returns the handle dispatched this tick, or NoTask when the running
// task merely continues or the system is idle. A *TaskFault from the
// dispatched body is returned alongside the handle; scheduling state stays
// consistent and later ticks proceed normally.
func (s *Scheduler) Tick(ctx context.Context) (TaskID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticks++

	// Unblock pass: a task blocked at tick T with timeout K is Ready again
	// once ticks-T >= K, so timeout 0 means "eligible at the next
	// evaluation".
	s.table.each(func(t *Task) {
		if t.State == StateBlocked && s.ticks-t.BlockedSince >= t.Timeout {
			t.State = StateReady
			s.emit(StatusUnblock, t.ID, t.Name)
		}
	})

	return s.schedule(ctx)
}

// BlockCurrent puts the Running task into Blocked state for the given
// number of ticks and immediately re-runs the selection steps to pick a
// replacement, without consuming a tick. This is a voluntary yield, as
// opposed to a timer-driven preemption. Fails with ErrInvalidState when no
// task is running.
func (s *Scheduler) BlockCurrent(ctx context.Context, timeout uint64) (TaskID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.table.get(s.current)
	if err != nil || cur.State != StateRunning {
		return NoTask, fmt.Errorf("block: no task running: %w", ErrInvalidState)
	}

	cur.State = StateBlocked
	cur.BlockedSince = s.ticks
	cur.Timeout = timeout
	s.current = NoTask
	s.emit(StatusBlock, cur.ID, cur.Name)
	s.logger.Debug("task blocked", "task", cur.Name, "timeout", timeout)

	return s.dispatchNext(ctx)
}

// Suspend removes a Ready or Blocked task from scheduling until Resume.
// A Suspended task is exempt from the unblock pass; any pending block
// timeout is forgotten. Suspending the Running task is not permitted.
func (s *Scheduler) Suspend(id TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table.get(id)
	if err != nil {
		return err
	}
	switch t.State {
	case StateRunning:
		return fmt.Errorf("suspend %q: task is running: %w", t.Name, ErrInvalidState)
	case StateSuspended:
		return fmt.Errorf("suspend %q: already suspended: %w", t.Name, ErrInvalidState)
	}
	t.State = StateSuspended
	s.emit(StatusSuspend, t.ID, t.Name)
	return nil
}

// Resume moves a Suspended task back to Ready.
func (s *Scheduler) Resume(id TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table.get(id)
	if err != nil {
		return err
	}
	if t.State != StateSuspended {
		return fmt.Errorf("resume %q: not suspended: %w", t.Name, ErrInvalidState)
	}
	t.State = StateReady
	s.emit(StatusResume, t.ID, t.Name)
	return nil
}

// QueryState returns a snapshot of the task's state and statistics.
func (s *Scheduler) QueryState(id TaskID) (TaskInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.table.get(id)
	if err != nil {
		return TaskInfo{}, err
	}
	return t.info(), nil
}

// Stats returns the global tick and context-switch counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Ticks: s.ticks, Switches: s.switches}
}

// Current returns the handle of the Running task, or NoTask.
func (s *Scheduler) Current() TaskID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// TaskCount returns the number of live tasks.
func (s *Scheduler) TaskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.len()
}

// schedule runs the preemption check and, when the CPU is free, dispatches
// the top-ranked Ready task. Caller holds s.mu.
//
// Preemption triggers on the priority field alone; deadline only decides
// among equally-prioritized Ready candidates inside the heap.
func (s *Scheduler) schedule(ctx context.Context) (TaskID, error) {
	if cur, err := s.table.get(s.current); err == nil && cur.State == StateRunning {
		preempt := false
		s.table.each(func(t *Task) {
			if t.State == StateReady && t.Priority > cur.Priority {
				preempt = true
			}
		})
		if !preempt {
			// current task keeps its quantum, no dispatch this tick
			return NoTask, nil
		}
		cur.State = StateReady
		s.emit(StatusPreempt, cur.ID, cur.Name)
		s.logger.Debug("preempted", "task", cur.Name, "tick", s.ticks)
	}
	return s.dispatchNext(ctx)
}

// dispatchNext rebuilds the ready queue from the live Ready set, extracts
// the top entry, and dispatches it. Caller holds s.mu.
func (s *Scheduler) dispatchNext(ctx context.Context) (TaskID, error) {
	s.ready.clear()
	var insertErr error
	s.table.each(func(t *Task) {
		if t.State != StateReady {
			return
		}
		if err := s.ready.insert(t); err != nil && insertErr == nil {
			insertErr = err
		}
	})
	if insertErr != nil {
		// queue capacity matches table capacity, so this is unreachable
		// unless the two are misconfigured
		return NoTask, insertErr
	}

	id, ok := s.ready.extractMax()
	if !ok {
		s.current = NoTask
		s.emit(StatusIdle, NoTask, "")
		return NoTask, nil
	}

	next, err := s.table.get(id)
	if err != nil {
		return NoTask, err
	}
	if s.current != id {
		s.switches++
	}
	next.State = StateRunning
	s.current = id
	return s.dispatch(ctx, next)
}

// dispatch invokes the task body exactly once and surfaces any fault to the
// caller. The faulting task is treated as having completed its quantum; it
// stays current and the scheduler keeps going.
func (s *Scheduler) dispatch(ctx context.Context, t *Task) (TaskID, error) {
	t.RunCount++
	s.emit(StatusDispatch, t.ID, t.Name)
	s.logger.Debug("dispatch", "task", t.Name, "tick", s.ticks, "switches", s.switches)

	if t.work == nil {
		return t.ID, nil
	}
	if err := t.work.Run(ctx); err != nil {
		s.emit(StatusFault, t.ID, t.Name)
		return t.ID, &TaskFault{ID: t.ID, Name: t.Name, Err: err}
	}
	return t.ID, nil
}

func (s *Scheduler) emit(kind StatusKind, id TaskID, name string) {
	ev := StatusEvent{
		Time:   time.Now(),
		Tick:   s.ticks,
		Kind:   kind,
		TaskID: id,
		Name:   name,
	}
	select {
	case s.statusCh <- ev:
	default:
		// consumers are optional, never stall the tick path
	}
	if s.trace != nil {
		s.trace.write(ev)
	}
}
