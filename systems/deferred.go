package systems

import (
	"sort"

	"github.com/pthm-cable/noel/components"
)

// deferredTask is a callback waiting for the frame clock to reach due.
type deferredTask struct {
	handle components.TaskHandle
	due    float64
	fn     func()
}

// DeferredQueue runs callbacks after a delay measured on the frame clock.
// It is advanced from the frame loop, so callbacks run on the frame goroutine
// and a cancelled or cleared task never fires.
type DeferredQueue struct {
	now   float64
	next  components.TaskHandle
	tasks []deferredTask
	due   []deferredTask // Scratch for Advance
}

// NewDeferredQueue creates an empty queue at time zero.
func NewDeferredQueue() *DeferredQueue {
	return &DeferredQueue{}
}

// Schedule queues fn to run once delay seconds of frame time have passed.
// A nil fn is accepted and never runs.
func (q *DeferredQueue) Schedule(delay float64, fn func()) components.TaskHandle {
	q.next++
	if delay < 0 {
		delay = 0
	}
	q.tasks = append(q.tasks, deferredTask{handle: q.next, due: q.now + delay, fn: fn})
	return q.next
}

// Cancel removes a pending task. Returns false if it already ran or was never scheduled.
func (q *DeferredQueue) Cancel(h components.TaskHandle) bool {
	for i, t := range q.tasks {
		if t.handle == h {
			q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every pending task.
func (q *DeferredQueue) Clear() {
	q.tasks = q.tasks[:0]
}

// Pending returns the number of tasks not yet run.
func (q *DeferredQueue) Pending() int {
	return len(q.tasks)
}

// Now returns the queue's frame clock.
func (q *DeferredQueue) Now() float64 {
	return q.now
}

// Advance moves the clock forward by dt and runs every task that became due,
// earliest first. Tasks scheduled by a running callback wait for a later Advance.
func (q *DeferredQueue) Advance(dt float64) {
	q.now += dt

	q.due = q.due[:0]
	kept := q.tasks[:0]
	for _, t := range q.tasks {
		if t.due <= q.now {
			q.due = append(q.due, t)
		} else {
			kept = append(kept, t)
		}
	}
	q.tasks = kept

	sort.SliceStable(q.due, func(i, j int) bool { return q.due[i].due < q.due[j].due })
	for _, t := range q.due {
		if t.fn != nil {
			t.fn()
		}
	}
}
