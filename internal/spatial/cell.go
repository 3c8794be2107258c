package spatial

import "dungeon-sim/internal/domain"

// Cell - клетка индекса: позиция и упорядоченный список жильцов.
// Пустых клеток не бывает, Index удаляет их сразу.
type Cell struct {
	pos      domain.Position
	entities []*domain.Entity
}

func newCell(e *domain.Entity) *Cell {
	return &Cell{pos: e.Pos, entities: []*domain.Entity{e}}
}

func (c *Cell) Position() domain.Position {
	return c.pos
}

func (c *Cell) Len() int {
	return len(c.entities)
}

// Entities возвращает снимок жильцов в порядке вставки.
// Копия: колбэки могут менять клетку, пока вызывающий итерирует снимок.
func (c *Cell) Entities() []*domain.Entity {
	out := make([]*domain.Entity, len(c.entities))
	copy(out, c.entities)
	return out
}

func (c *Cell) Contains(e *domain.Entity) bool {
	for _, other := range c.entities {
		if other == e {
			return true
		}
	}
	return false
}

// merge добавляет сущность в конец списка (порядок вставки важен для событий)
func (c *Cell) merge(e *domain.Entity) {
	if c.Contains(e) {
		return
	}
	c.entities = append(c.entities, e)
}

// remove удаляет сущность с сохранением порядка остальных
func (c *Cell) remove(e *domain.Entity) bool {
	for i, other := range c.entities {
		if other == e {
			copy(c.entities[i:], c.entities[i+1:])
			c.entities[len(c.entities)-1] = nil
			c.entities = c.entities[:len(c.entities)-1]
			return true
		}
	}
	return false
}

// Weight - стоимость прохода: максимальный MovementFactor среди жильцов, не меньше 1
func (c *Cell) Weight() int {
	weight := 1
	for _, e := range c.entities {
		if e.Terrain != nil && e.Terrain.MovementFactor > weight {
			weight = e.Terrain.MovementFactor
		}
	}
	return weight
}

// CanMoveOnto - пустит ли клетка mover'а: все жильцы должны согласиться
func (c *Cell) CanMoveOnto(w domain.World, mover *domain.Entity) bool {
	for _, e := range c.entities {
		if e == mover {
			continue
		}
		if !e.CanBeEnteredBy(w, mover) {
			return false
		}
	}
	return true
}

// Portal возвращает первый портал в клетке или nil
func (c *Cell) Portal() *domain.Entity {
	for _, e := range c.entities {
		if e.Portal != nil {
			return e
		}
	}
	return nil
}
