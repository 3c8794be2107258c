package engine

import (
	"container/heap"
	"slices"

	"dungeon-sim/internal/domain"
	"dungeon-sim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// TurnManager - расписание тиковых колбэков (AI-ходы, спавнеры).
// Один колбэк на сущность.
type TurnManager struct {
	queue   TurnQueue
	itemMap map[domain.EntityID]*TurnItem
	tick    int
	seq     uint64
}

func NewTurnManager() *TurnManager {
	return &TurnManager{
		queue:   make(TurnQueue, 0),
		itemMap: make(map[domain.EntityID]*TurnItem),
	}
}

// Register ставит колбэк сущности на ближайший тик и дальше каждые interval тиков.
// Повторная регистрация заменяет старый колбэк.
func (tm *TurnManager) Register(id domain.EntityID, priority, interval int, action func()) {
	if interval < 1 {
		interval = 1
	}
	tm.Remove(id)

	tm.seq++
	item := &TurnItem{
		ID:       id,
		Action:   action,
		NextTick: tm.tick + 1,
		Interval: interval,
		Priority: priority,
		seq:      tm.seq,
	}
	heap.Push(&tm.queue, item)
	tm.itemMap[id] = item

	logger.Log.WithFields(logrus.Fields{
		"entity_id": id,
		"priority":  priority,
		"interval":  interval,
	}).Debug("Entity added to TurnManager")
}

// Remove убирает сущность из расписания (например, при уничтожении)
func (tm *TurnManager) Remove(id domain.EntityID) {
	if item, ok := tm.itemMap[id]; ok {
		heap.Remove(&tm.queue, item.Index)
		delete(tm.itemMap, id)
	}
}

// Has - зарегистрирована ли сущность
func (tm *TurnManager) Has(id domain.EntityID) bool {
	_, ok := tm.itemMap[id]
	return ok
}

// RunTick продвигает время на один тик и выполняет всё, что на него запланировано.
// Колбэки могут удалять и регистрировать сущности: новые попадут на следующий тик.
func (tm *TurnManager) RunTick() int {
	tm.tick++
	executed := 0

	for tm.queue.Len() > 0 {
		item := tm.queue[0]
		if item.NextTick > tm.tick {
			break
		}

		// Сначала переносим, потом выполняем: колбэк может удалить сам себя
		tm.queue.Update(item, tm.tick+item.Interval)
		item.Action()
		executed++
	}
	return executed
}

// Tick - номер последнего выполненного тика
func (tm *TurnManager) Tick() int {
	return tm.tick
}

func (tm *TurnManager) Len() int {
	return tm.queue.Len()
}

// ScheduledTurn - одна запись расписания
type ScheduledTurn struct {
	ID       domain.EntityID `json:"id"`
	NextTick int             `json:"next_tick"`
	Priority int             `json:"priority"`
}

// Schedule - снимок очереди в порядке выполнения. Очередь не меняется.
func (tm *TurnManager) Schedule() []ScheduledTurn {
	items := slices.Clone(tm.queue)
	slices.SortFunc(items, func(a, b *TurnItem) int {
		switch {
		case before(a, b):
			return -1
		case before(b, a):
			return 1
		}
		return 0
	})

	out := make([]ScheduledTurn, 0, len(items))
	for _, item := range items {
		out = append(out, ScheduledTurn{ID: item.ID, NextTick: item.NextTick, Priority: item.Priority})
	}
	return out
}
