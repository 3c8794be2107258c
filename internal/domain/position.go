package domain

import "fmt"

// Position - клетка сетки. Value-type, используется как ключ map.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction - одно из четырёх кардинальных направлений (или его отсутствие)
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// CardinalDirections в фиксированном порядке: от него зависит детерминизм телепорта и поиска пути.
var CardinalDirections = [4]Direction{DirUp, DirRight, DirDown, DirLeft}

var directionOffsets = map[Direction][2]int{
	DirNone:  {0, 0},
	DirUp:    {0, -1},
	DirDown:  {0, 1},
	DirLeft:  {-1, 0},
	DirRight: {1, 0},
}

var directionNames = map[Direction]string{
	DirNone:  "NONE",
	DirUp:    "UP",
	DirDown:  "DOWN",
	DirLeft:  "LEFT",
	DirRight: "RIGHT",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "UNKNOWN"
}

// Offset возвращает (dx, dy) для направления
func (d Direction) Offset() (int, int) {
	off := directionOffsets[d]
	return off[0], off[1]
}

// Opposite возвращает противоположное направление
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return DirNone
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Shift возвращает новую позицию со смещением
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Translate сдвигает позицию на одну клетку в направлении d
func (p Position) Translate(d Direction) Position {
	dx, dy := d.Offset()
	return p.Shift(dx, dy)
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ)
func (p Position) IsAdjacent(other Position) bool {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)

	// Если разница по X и Y не больше 1, значит соседи
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

// IsCardinallyAdjacent - соседство только по сторонам (без диагоналей)
func (p Position) IsCardinallyAdjacent(other Position) bool {
	return abs(p.X-other.X)+abs(p.Y-other.Y) == 1
}

// CardinalNeighbours возвращает 4 соседние клетки в порядке CardinalDirections
func (p Position) CardinalNeighbours() []Position {
	out := make([]Position, 0, len(CardinalDirections))
	for _, d := range CardinalDirections {
		out = append(out, p.Translate(d))
	}
	return out
}

// DirectionTo возвращает кардинальное направление к соседней клетке, DirNone если клетка не соседняя
func (p Position) DirectionTo(other Position) Direction {
	for _, d := range CardinalDirections {
		if p.Translate(d) == other {
			return d
		}
	}
	return DirNone
}

// Less задаёт порядок строк (Y, затем X). Нужен для детерминированного обхода индекса.
func (p Position) Less(other Position) bool {
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	return p.X < other.X
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
