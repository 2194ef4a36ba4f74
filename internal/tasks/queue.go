// Package tasks is a single-threaded timer queue driven by the frame loop.
// Nothing runs on its own goroutine: RunDue is called from the tick callback and
// executes every task whose deadline has passed, in deadline order.
package tasks

import (
	"sort"
	"time"

	"cosmic-playground/internal/clock"
)

// ID identifies a scheduled task. Zero is never a valid ID.
type ID uint64

type task struct {
	id       ID
	deadline time.Time
	interval time.Duration // 0 = one-shot
	fn       func()
}

// Queue holds pending one-shot and periodic tasks.
type Queue struct {
	time   clock.TimeProvider
	tasks  map[ID]*task
	nextID ID
	closed bool
}

// New returns an empty queue reading time from tp.
func New(tp clock.TimeProvider) *Queue {
	return &Queue{
		time:  tp,
		tasks: make(map[ID]*task),
	}
}

// After schedules fn to run once, no earlier than d from now.
// Returns 0 if the queue is closed.
func (q *Queue) After(d time.Duration, fn func()) ID {
	return q.schedule(d, 0, fn)
}

// Every schedules fn to run each interval, first run one interval from now.
// A non-positive interval is rejected with 0.
func (q *Queue) Every(interval time.Duration, fn func()) ID {
	if interval <= 0 {
		return 0
	}
	return q.schedule(interval, interval, fn)
}

func (q *Queue) schedule(d, interval time.Duration, fn func()) ID {
	if q.closed || fn == nil {
		return 0
	}
	q.nextID++
	id := q.nextID
	q.tasks[id] = &task{
		id:       id,
		deadline: q.time.Now().Add(d),
		interval: interval,
		fn:       fn,
	}
	return id
}

// Cancel removes a pending task. Returns false if it was not pending.
func (q *Queue) Cancel(id ID) bool {
	if _, ok := q.tasks[id]; !ok {
		return false
	}
	delete(q.tasks, id)
	return true
}

// Pending returns the number of scheduled tasks.
func (q *Queue) Pending() int {
	return len(q.tasks)
}

// RunDue runs every task whose deadline is at or before now and returns how many ran.
// Tasks scheduled while running wait for the next call, even with zero delay.
// Periodic tasks that fell more than one interval behind are rebased on now instead
// of firing repeatedly to catch up.
func (q *Queue) RunDue() int {
	if q.closed {
		return 0
	}
	now := q.time.Now()
	due := make([]*task, 0, len(q.tasks))
	for _, t := range q.tasks {
		if !t.deadline.After(now) {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].id < due[j].id
		}
		return due[i].deadline.Before(due[j].deadline)
	})

	ran := 0
	for _, t := range due {
		// An earlier task may have cancelled this one or closed the queue.
		if _, ok := q.tasks[t.id]; !ok {
			continue
		}
		if t.interval > 0 {
			t.deadline = t.deadline.Add(t.interval)
			if now.Sub(t.deadline) > t.interval {
				t.deadline = now.Add(t.interval)
			}
		} else {
			delete(q.tasks, t.id)
		}
		t.fn()
		ran++
	}
	return ran
}

// Close cancels every pending task and makes later scheduling a no-op.
// Safe to call more than once.
func (q *Queue) Close() {
	q.closed = true
	for id := range q.tasks {
		delete(q.tasks, id)
	}
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	return q.closed
}
