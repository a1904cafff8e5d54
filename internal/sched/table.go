package sched

// taskTable owns every task control block. Slots are addressed by
// generation-checked handles; the table never hands out a *Task beyond the
// package boundary.
type taskTable struct {
	slots []tableSlot
	count int
}

type tableSlot struct {
	gen  uint32
	live bool
	task Task
}

func newTaskTable(capacity int) *taskTable {
	return &taskTable{slots: make([]tableSlot, capacity)}
}

// add places a task into the first free slot and assigns its handle.
// Fails with ErrTaskLimit when every slot is occupied.
func (tt *taskTable) add(t Task) (TaskID, error) {
	for i := range tt.slots {
		slot := &tt.slots[i]
		if slot.live {
			continue
		}
		slot.gen++ // generations start at 1, so NoTask never collides
		slot.live = true
		t.ID = makeTaskID(uint32(i), slot.gen)
		slot.task = t
		tt.count++
		return t.ID, nil
	}
	return NoTask, ErrTaskLimit
}

// get resolves a handle, rejecting out-of-range indexes and stale
// generations alike.
func (tt *taskTable) get(id TaskID) (*Task, error) {
	index, gen := id.split()
	if int(index) >= len(tt.slots) {
		return nil, ErrNotFound
	}
	slot := &tt.slots[index]
	if !slot.live || slot.gen != gen {
		return nil, ErrNotFound
	}
	return &slot.task, nil
}

func (tt *taskTable) len() int { return tt.count }

// each visits live tasks in slot order, which is creation order while no
// slots are freed. Scan determinism in the scheduler depends on this.
func (tt *taskTable) each(fn func(*Task)) {
	for i := range tt.slots {
		if tt.slots[i].live {
			fn(&tt.slots[i].task)
		}
	}
}
