package spatial

import (
	"slices"

	"dungeon-sim/internal/domain"
)

// Index - пространственный индекс: Position -> Cell.
// Сущностями не владеет, только хранит ссылки.
type Index struct {
	cells map[domain.Position]*Cell
	size  int
}

func NewIndex() *Index {
	return &Index{cells: make(map[domain.Position]*Cell)}
}

// Insert кладёт сущность в клетку по её текущей позиции.
// Если клетка уже есть - сливает, иначе создаёт.
func (idx *Index) Insert(e *domain.Entity) {
	if cell, ok := idx.cells[e.Pos]; ok {
		if cell.Contains(e) {
			return
		}
		cell.merge(e)
		idx.size++
		return
	}
	idx.cells[e.Pos] = newCell(e)
	idx.size++
}

// Remove убирает сущность из клетки её текущей позиции; пустая клетка удаляется.
// Если сущности в индексе нет - ничего не делает.
func (idx *Index) Remove(e *domain.Entity) bool {
	cell, ok := idx.cells[e.Pos]
	if !ok || !cell.remove(e) {
		return false
	}
	idx.size--
	if cell.Len() == 0 {
		delete(idx.cells, e.Pos)
	}
	return true
}

// Cell возвращает клетку по позиции
func (idx *Index) Cell(p domain.Position) (*Cell, bool) {
	cell, ok := idx.cells[p]
	return cell, ok
}

// Has - существует ли клетка (есть ли хоть один жилец)
func (idx *Index) Has(p domain.Position) bool {
	_, ok := idx.cells[p]
	return ok
}

// At возвращает снимок жильцов позиции (пустой, если клетки нет)
func (idx *Index) At(p domain.Position) []*domain.Entity {
	cell, ok := idx.cells[p]
	if !ok {
		return []*domain.Entity{}
	}
	return cell.Entities()
}

// Contains - проиндексирована ли сущность по своей текущей позиции
func (idx *Index) Contains(e *domain.Entity) bool {
	cell, ok := idx.cells[e.Pos]
	return ok && cell.Contains(e)
}

// Positions возвращает занятые позиции в порядке (Y, X)
func (idx *Index) Positions() []domain.Position {
	out := make([]domain.Position, 0, len(idx.cells))
	for p := range idx.cells {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b domain.Position) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return out
}

// All - все сущности. Порядок детерминирован: клетки по (Y, X), внутри клетки - порядок вставки.
func (idx *Index) All() []*domain.Entity {
	out := make([]*domain.Entity, 0, idx.size)
	for _, p := range idx.Positions() {
		out = append(out, idx.cells[p].entities...)
	}
	return out
}

// OfCapability - все сущности с возможностью c
func (idx *Index) OfCapability(c domain.Capability) []*domain.Entity {
	var out []*domain.Entity
	for _, e := range idx.All() {
		if c.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

// Find ищет сущность по ID (линейно)
func (idx *Index) Find(id domain.EntityID) *domain.Entity {
	for _, cell := range idx.cells {
		for _, e := range cell.entities {
			if e.ID == id {
				return e
			}
		}
	}
	return nil
}

// CellCount - количество непустых клеток
func (idx *Index) CellCount() int {
	return len(idx.cells)
}

// Size - количество проиндексированных сущностей
func (idx *Index) Size() int {
	return idx.size
}
