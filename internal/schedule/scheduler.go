// Package schedule runs delayed callbacks on simulation time.
// It replaces wait-N-seconds coroutines: tasks fire from Tick on the
// simulation goroutine, never from a timer goroutine.
package schedule

import "sort"

// Task is a handle to a scheduled callback.
type Task struct {
	due       float64
	seq       uint64
	fn        func()
	cancelled bool
	done      bool
}

// Cancel prevents the task from running. Safe to call more than once.
func (t *Task) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Pending reports whether the task is still waiting to run.
func (t *Task) Pending() bool {
	return t != nil && !t.cancelled && !t.done
}

// Scheduler keeps simulation time and a set of pending tasks.
type Scheduler struct {
	now   float64
	seq   uint64
	tasks []*Task
}

// New creates a scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the accumulated simulation time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run once delay seconds of simulation time have passed.
func (s *Scheduler) After(delay float64, fn func()) *Task {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &Task{due: s.now + delay, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Tick advances time by dt and runs due tasks in due-time order.
// Tasks scheduled by a running task wait for the next tick.
func (s *Scheduler) Tick(dt float64) {
	if dt > 0 {
		s.now += dt
	}
	if len(s.tasks) == 0 {
		return
	}

	var due, waiting []*Task
	for _, t := range s.tasks {
		switch {
		case t.cancelled:
		case t.due <= s.now:
			due = append(due, t)
		default:
			waiting = append(waiting, t)
		}
	}
	s.tasks = waiting

	sort.Slice(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].seq < due[j].seq
		}
		return due[i].due < due[j].due
	})
	for _, t := range due {
		if t.cancelled {
			continue
		}
		t.done = true
		t.fn()
	}
}

// Len returns the number of tasks not yet run or cancelled.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Clear cancels every pending task.
func (s *Scheduler) Clear() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = nil
}
