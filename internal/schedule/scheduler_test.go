package schedule

import "testing"

func TestAfterRunsWhenDue(t *testing.T) {
	s := New()
	ran := false
	s.After(1.0, func() { ran = true })

	s.Tick(0.5)
	if ran {
		t.Fatal("task ran before its delay elapsed")
	}
	s.Tick(0.5)
	if !ran {
		t.Fatal("task did not run once due")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestCancel(t *testing.T) {
	s := New()
	ran := false
	task := s.After(0.1, func() { ran = true })
	task.Cancel()
	task.Cancel()

	s.Tick(1)
	if ran {
		t.Error("cancelled task ran")
	}
	if task.Pending() {
		t.Error("cancelled task reports pending")
	}
}

func TestDueOrder(t *testing.T) {
	s := New()
	var order []int
	s.After(0.3, func() { order = append(order, 3) })
	s.After(0.1, func() { order = append(order, 1) })
	s.After(0.2, func() { order = append(order, 2) })
	s.After(0.1, func() { order = append(order, 11) })

	s.Tick(1)

	want := []int{1, 11, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %d, want %d", i, order[i], want[i])
		}
	}
}

func TestTaskScheduledDuringTickWaits(t *testing.T) {
	s := New()
	inner := false
	s.After(0, func() {
		s.After(0, func() { inner = true })
	})

	s.Tick(0.016)
	if inner {
		t.Fatal("nested task ran in the same tick")
	}
	s.Tick(0.016)
	if !inner {
		t.Fatal("nested task did not run on the following tick")
	}
}

func TestClear(t *testing.T) {
	s := New()
	task := s.After(1, func() { t.Error("cleared task ran") })
	s.Clear()
	s.Tick(2)
	if task.Pending() {
		t.Error("task still pending after Clear")
	}
}
