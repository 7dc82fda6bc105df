package systems

import "testing"

func TestDeferredRunsAfterDelay(t *testing.T) {
	q := NewDeferredQueue()
	ran := 0
	q.Schedule(0.2, func() { ran++ })

	q.Advance(0.1)
	if ran != 0 {
		t.Fatal("task ran before its delay")
	}
	q.Advance(0.1)
	if ran != 1 {
		t.Fatalf("expected task to run once at 0.2s, ran %d", ran)
	}
	q.Advance(1)
	if ran != 1 {
		t.Errorf("task ran again, count %d", ran)
	}
	if q.Pending() != 0 {
		t.Errorf("expected empty queue, have %d", q.Pending())
	}
}

func TestDeferredOrder(t *testing.T) {
	q := NewDeferredQueue()
	var order []int
	q.Schedule(0.3, func() { order = append(order, 3) })
	q.Schedule(0.1, func() { order = append(order, 1) })
	q.Schedule(0.2, func() { order = append(order, 2) })

	q.Advance(1)
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", order)
	}
}

func TestDeferredCancel(t *testing.T) {
	q := NewDeferredQueue()
	ran := false
	h := q.Schedule(0.2, func() { ran = true })

	if !q.Cancel(h) {
		t.Fatal("expected cancel to find the task")
	}
	if q.Cancel(h) {
		t.Error("second cancel should report nothing removed")
	}
	q.Advance(1)
	if ran {
		t.Error("cancelled task ran")
	}
}

func TestDeferredClear(t *testing.T) {
	q := NewDeferredQueue()
	ran := 0
	for i := 0; i < 5; i++ {
		q.Schedule(0.1, func() { ran++ })
	}
	q.Clear()
	q.Advance(1)
	if ran != 0 {
		t.Errorf("cleared tasks ran %d times", ran)
	}
}

func TestDeferredScheduleFromCallback(t *testing.T) {
	q := NewDeferredQueue()
	ran := 0
	q.Schedule(0, func() {
		ran++
		q.Schedule(0, func() { ran++ })
	})

	q.Advance(0.016)
	if ran != 1 {
		t.Fatalf("nested task should wait for the next advance, ran %d", ran)
	}
	q.Advance(0.016)
	if ran != 2 {
		t.Errorf("expected nested task to run, ran %d", ran)
	}
}

func TestDeferredNilCallback(t *testing.T) {
	q := NewDeferredQueue()
	q.Schedule(0, nil)
	q.Advance(1) // Must not panic
	if q.Pending() != 0 {
		t.Error("nil task should still be consumed")
	}
}
