package sched

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// csvTrace appends one row per scheduler event, flushed eagerly so a trace
// survives an abrupt exit.
type csvTrace struct {
	file   *os.File
	writer *csv.Writer
}

func newCSVTrace(path string) (*csvTrace, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)

	// write header
	w.Write([]string{"timestamp", "tick", "event", "task_id", "task"})
	w.Flush()
	return &csvTrace{file: f, writer: w}, nil
}

func (t *csvTrace) write(ev StatusEvent) {
	t.writer.Write([]string{
		ev.Time.Format(time.RFC3339Nano),
		strconv.FormatUint(ev.Tick, 10),
		ev.Kind.String(),
		strconv.FormatUint(uint64(ev.TaskID), 10),
		ev.Name,
	})
	t.writer.Flush()
}

func (t *csvTrace) close() {
	t.writer.Flush()
	t.file.Close()
}
