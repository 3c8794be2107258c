package engine

import (
	"container/heap"

	"dungeon-sim/internal/domain"
)

// Приоритеты внутри одного тика. Чем меньше, тем раньше.
const (
	PriorityAIMovement = 10
	PrioritySpawn      = 20
)

// TurnItem обертка для элемента очереди приоритетов
type TurnItem struct {
	ID       domain.EntityID // Чей колбэк
	Action   func()          // Что сделать в тик
	NextTick int             // Когда сработать
	Interval int             // Через сколько тиков повторить
	Priority int             // Порядок внутри тика
	Index    int             // Индекс в куче (нужен для update)

	seq uint64 // порядок регистрации, стабилизирует равные приоритеты
}

// TurnQueue реализует heap.Interface и хранит TurnItems
type TurnQueue []*TurnItem

func (pq TurnQueue) Len() int { return len(pq) }

func (pq TurnQueue) Less(i, j int) bool {
	return before(pq[i], pq[j])
}

// before: раньше тик, потом меньший приоритет, потом порядок регистрации
func before(a, b *TurnItem) bool {
	if a.NextTick != b.NextTick {
		return a.NextTick < b.NextTick
	}
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.seq < b.seq
}

func (pq TurnQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *TurnQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*TurnItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *TurnQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// Update переносит элемент на другой тик
func (pq *TurnQueue) Update(item *TurnItem, nextTick int) {
	item.NextTick = nextTick
	heap.Fix(pq, item.Index)
}
