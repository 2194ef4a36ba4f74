package tasks

import (
	"reflect"
	"testing"
	"time"

	"cosmic-playground/internal/clock"
)

func newTestQueue() (*Queue, *clock.Mock) {
	m := clock.NewMock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(m), m
}

func TestAfterRunsOnceAtDeadline(t *testing.T) {
	q, m := newTestQueue()
	calls := 0
	q.After(50*time.Millisecond, func() { calls++ })

	m.Advance(49 * time.Millisecond)
	if n := q.RunDue(); n != 0 || calls != 0 {
		t.Fatalf("ran %d tasks before deadline", n)
	}
	m.Advance(time.Millisecond)
	if n := q.RunDue(); n != 1 || calls != 1 {
		t.Fatalf("expected one run at deadline, got n=%d calls=%d", n, calls)
	}
	m.Advance(time.Second)
	q.RunDue()
	if calls != 1 {
		t.Errorf("one-shot task ran %d times", calls)
	}
	if q.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", q.Pending())
	}
}

func TestRunDueOrdersByDeadlineThenID(t *testing.T) {
	q, m := newTestQueue()
	var order []string
	q.After(30*time.Millisecond, func() { order = append(order, "c") })
	q.After(10*time.Millisecond, func() { order = append(order, "a") })
	q.After(10*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(time.Second)
	q.RunDue()
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestCancel(t *testing.T) {
	q, m := newTestQueue()
	ran := false
	id := q.After(10*time.Millisecond, func() { ran = true })
	if !q.Cancel(id) {
		t.Fatal("Cancel of pending task returned false")
	}
	if q.Cancel(id) {
		t.Error("second Cancel returned true")
	}
	m.Advance(time.Second)
	q.RunDue()
	if ran {
		t.Error("cancelled task ran")
	}
}

func TestTaskCancelledByEarlierTask(t *testing.T) {
	q, m := newTestQueue()
	ran := false
	var second ID
	q.After(time.Millisecond, func() { q.Cancel(second) })
	second = q.After(2*time.Millisecond, func() { ran = true })
	m.Advance(time.Second)
	q.RunDue()
	if ran {
		t.Error("task cancelled during RunDue still ran")
	}
}

func TestTasksScheduledDuringRunWaitForNextCall(t *testing.T) {
	q, m := newTestQueue()
	inner := 0
	q.After(0, func() {
		q.After(0, func() { inner++ })
	})
	m.Advance(time.Millisecond)
	if n := q.RunDue(); n != 1 {
		t.Fatalf("first RunDue ran %d, want 1", n)
	}
	if inner != 0 {
		t.Fatal("nested task ran in the same pass")
	}
	q.RunDue()
	if inner != 1 {
		t.Errorf("nested task ran %d times, want 1", inner)
	}
}

func TestEvery(t *testing.T) {
	q, m := newTestQueue()
	ticks := 0
	q.Every(time.Second, func() { ticks++ })

	for i := 0; i < 3; i++ {
		m.Advance(time.Second)
		q.RunDue()
	}
	if ticks != 3 {
		t.Fatalf("ticks = %d, want 3", ticks)
	}

	// Falling far behind fires once, not once per missed interval.
	m.Advance(10 * time.Second)
	q.RunDue()
	if ticks != 4 {
		t.Errorf("ticks after stall = %d, want 4", ticks)
	}
	m.Advance(time.Second)
	q.RunDue()
	if ticks != 5 {
		t.Errorf("ticks after rebase = %d, want 5", ticks)
	}
	if q.Every(0, func() {}) != 0 {
		t.Error("Every(0) should be rejected")
	}
}

func TestCloseCancelsEverything(t *testing.T) {
	q, m := newTestQueue()
	ran := 0
	q.After(10*time.Millisecond, func() { ran++ })
	q.Every(time.Second, func() { ran++ })

	q.Close()
	q.Close()
	if q.Pending() != 0 {
		t.Fatalf("Pending() after Close = %d", q.Pending())
	}
	if id := q.After(0, func() { ran++ }); id != 0 {
		t.Errorf("After on closed queue returned %d", id)
	}
	m.Advance(time.Minute)
	if n := q.RunDue(); n != 0 || ran != 0 {
		t.Errorf("tasks ran after Close: n=%d ran=%d", n, ran)
	}
	if !q.Closed() {
		t.Error("Closed() = false")
	}
}
