package sched

import (
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"
)

// readyEntry is what the ready queue orders. seq is the insertion sequence
// number and makes equal (priority, deadline) pairs come out in insertion
// order rather than heap order.
type readyEntry struct {
	id       TaskID
	priority uint32
	deadline uint32
	seq      int
}

// byDispatchOrder ranks a above b iff a has higher priority, or equal
// priority and an earlier deadline, or both equal and an earlier insertion.
// The same comparator drives sift-up and sift-down.
func byDispatchOrder(a, b any) int {
	ea, eb := a.(readyEntry), b.(readyEntry)
	switch {
	case ea.priority > eb.priority:
		return -1
	case ea.priority < eb.priority:
		return 1
	case ea.deadline < eb.deadline:
		return -1
	case ea.deadline > eb.deadline:
		return 1
	case ea.seq < eb.seq:
		return -1
	default:
		return 1
	}
}

var _ utils.Comparator = byDispatchOrder

// readyQueue is the priority queue over Ready task handles. It is rebuilt
// from the live Ready set at every scheduling decision, so entries can never
// go stale across ticks.
type readyQueue struct {
	heap     *binaryheap.Heap
	capacity int
	seq      int
}

func newReadyQueue(capacity int) *readyQueue {
	return &readyQueue{
		heap:     binaryheap.NewWith(byDispatchOrder),
		capacity: capacity,
	}
}

// insert enqueues a task handle. The only failure is capacity exhaustion.
func (q *readyQueue) insert(t *Task) error {
	if q.heap.Size() >= q.capacity {
		return ErrTaskLimit
	}
	q.heap.Push(readyEntry{
		id:       t.ID,
		priority: t.Priority,
		deadline: t.Deadline,
		seq:      q.seq,
	})
	q.seq++
	return nil
}

// extractMax removes and returns the top-ranked handle, or false when empty.
func (q *readyQueue) extractMax() (TaskID, bool) {
	v, ok := q.heap.Pop()
	if !ok {
		return NoTask, false
	}
	return v.(readyEntry).id, true
}

func (q *readyQueue) size() int { return q.heap.Size() }

func (q *readyQueue) clear() {
	q.heap.Clear()
	q.seq = 0
}
