package engine

import (
	"container/heap"
	"testing"

	"dungeon-sim/internal/domain"
)

func TestTurnQueue(t *testing.T) {
	pq := make(TurnQueue, 0)
	heap.Init(&pq)

	item1 := &TurnItem{ID: 1, NextTick: 10}
	item2 := &TurnItem{ID: 2, NextTick: 5}
	item3 := &TurnItem{ID: 3, NextTick: 20}

	heap.Push(&pq, item1)
	heap.Push(&pq, item2)
	heap.Push(&pq, item3)

	if pq.Len() != 3 {
		t.Errorf("Expected length 3, got %d", pq.Len())
	}

	// First pop should be 2 (Tick 5)
	first := heap.Pop(&pq).(*TurnItem)
	if first.ID != 2 {
		t.Errorf("Expected 2, got %s", first.ID)
	}

	// Переносим 1 на тик 30, теперь первым должен быть 3
	pq.Update(item1, 30)

	second := heap.Pop(&pq).(*TurnItem)
	if second.ID != 3 {
		t.Errorf("Expected 3 (Tick 20), got %s", second.ID)
	}

	third := heap.Pop(&pq).(*TurnItem)
	if third.ID != 1 {
		t.Errorf("Expected 1 (Tick 30), got %s", third.ID)
	}
}

func TestTurnQueueSameTickOrder(t *testing.T) {
	pq := make(TurnQueue, 0)
	heap.Push(&pq, &TurnItem{ID: 1, NextTick: 1, Priority: PrioritySpawn, seq: 1})
	heap.Push(&pq, &TurnItem{ID: 2, NextTick: 1, Priority: PriorityAIMovement, seq: 3})
	heap.Push(&pq, &TurnItem{ID: 3, NextTick: 1, Priority: PriorityAIMovement, seq: 2})

	var got []domain.EntityID
	for pq.Len() > 0 {
		got = append(got, heap.Pop(&pq).(*TurnItem).ID)
	}
	want := []domain.EntityID{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pop order = %v, want %v", got, want)
		}
	}
}

func TestTurnManagerRunTick(t *testing.T) {
	tm := NewTurnManager()
	var calls []string

	tm.Register(1, PrioritySpawn, 2, func() { calls = append(calls, "spawn") })
	tm.Register(2, PriorityAIMovement, 1, func() { calls = append(calls, "move") })

	t.Run("first tick runs everything in priority order", func(t *testing.T) {
		if n := tm.RunTick(); n != 2 {
			t.Errorf("executed = %d, want 2", n)
		}
		if len(calls) != 2 || calls[0] != "move" || calls[1] != "spawn" {
			t.Errorf("calls = %v", calls)
		}
	})

	t.Run("interval skips a tick", func(t *testing.T) {
		calls = nil
		tm.RunTick()
		if len(calls) != 1 || calls[0] != "move" {
			t.Errorf("calls = %v, want only move", calls)
		}
		calls = nil
		tm.RunTick()
		if len(calls) != 2 {
			t.Errorf("calls = %v, want move and spawn", calls)
		}
	})

	t.Run("removed entity no longer runs", func(t *testing.T) {
		tm.Remove(2)
		calls = nil
		tm.RunTick()
		tm.RunTick()
		for _, c := range calls {
			if c == "move" {
				t.Fatal("removed mover still scheduled")
			}
		}
	})
}

func TestTurnManagerActionRemovesItself(t *testing.T) {
	tm := NewTurnManager()
	runs := 0
	tm.Register(7, PriorityAIMovement, 1, func() {
		runs++
		tm.Remove(7)
	})
	// Зарегистрированный во время тика колбэк выполнится только в следующем
	spawned := false
	tm.Register(8, PriorityAIMovement, 1, func() {
		if spawned {
			return
		}
		spawned = true
		tm.Register(9, PriorityAIMovement, 1, func() { runs += 10 })
	})

	tm.RunTick()
	if runs != 1 {
		t.Errorf("runs after first tick = %d, want 1", runs)
	}
	if tm.Has(7) {
		t.Error("self-removed item must be gone")
	}

	tm.RunTick()
	if runs != 11 {
		t.Errorf("runs after second tick = %d, want 11", runs)
	}
}

func TestTurnManagerSchedule(t *testing.T) {
	tm := NewTurnManager()
	if got := tm.Schedule(); got == nil || len(got) != 0 {
		t.Fatalf("empty schedule = %#v, want empty non-nil slice", got)
	}

	tm.Register(1, PrioritySpawn, 3, func() {})
	tm.Register(2, PriorityAIMovement, 1, func() {})
	tm.Register(3, PriorityAIMovement, 1, func() {})
	tm.RunTick()

	want := []ScheduledTurn{
		{ID: 2, NextTick: 2, Priority: PriorityAIMovement},
		{ID: 3, NextTick: 2, Priority: PriorityAIMovement},
		{ID: 1, NextTick: 4, Priority: PrioritySpawn},
	}
	got := tm.Schedule()
	if len(got) != len(want) {
		t.Fatalf("schedule = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("schedule[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if tm.Len() != 3 || tm.queue[0].Index != 0 {
		t.Error("snapshot must not disturb the heap")
	}
}
