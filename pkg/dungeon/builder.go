package dungeon

import (
	"math/rand"

	"dungeon-sim/internal/domain"
	"dungeon-sim/internal/entities"
	"dungeon-sim/internal/logic"
)

// Константы генерации
const (
	MapWidth  = 40
	MapHeight = 25
	MaxRooms  = 8
	MinSize   = 4
	MaxSize   = 10
)

// Rect - Вспомогательная структура для комнаты
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

func createRoom(floor [][]bool, room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			floor[y][x] = true
		}
	}
}

func createHCorridor(floor [][]bool, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		floor[y][x] = true
	}
}

func createVCorridor(floor [][]bool, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		floor[y][x] = true
	}
}

func (b *LevelBuilder) randRange(min, max int) int {
	return b.rng.Intn(max-min+1) + min
}

// LevelBuilder предоставляет fluent API для создания уровней.
// Стены - обычные сущности, поэтому карта на выходе - просто список сущностей.
type LevelBuilder struct {
	width    int
	height   int
	rooms    []Rect
	floor    [][]bool
	taken    map[domain.Position]bool
	entities []*domain.Entity
	factory  *entities.Factory
	rng      *rand.Rand
}

// NewLevel создает новый builder для уровня
func NewLevel(factory *entities.Factory, rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		width:   MapWidth,
		height:  MapHeight,
		taken:   make(map[domain.Position]bool),
		factory: factory,
		rng:     rng,
	}
}

// WithSize устанавливает размер карты. Отрицательный размер считается нулевым.
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = max(width, 0)
	b.height = max(height, 0)
	return b
}

// roomSpan - допустимые размеры комнаты вдоль стороны карты длиной side.
// Комната вместе со стенами должна влезть внутрь рамки карты, поэтому сторона не больше side-2.
// ok=false, если не влезает даже комната в одну клетку.
func roomSpan(side int) (lo, hi int, ok bool) {
	hi = min(MaxSize, side-2)
	if hi < 2 {
		return 0, 0, false
	}
	return min(MinSize, hi), hi, true
}

// WithRooms генерирует комнаты и коридоры
func (b *LevelBuilder) WithRooms(maxRooms int) *LevelBuilder {
	b.floor = make([][]bool, b.height)
	for y := range b.floor {
		b.floor[y] = make([]bool, b.width)
	}

	b.rooms = make([]Rect, 0, max(maxRooms, 0))
	minW, maxW, okW := roomSpan(b.width)
	minH, maxH, okH := roomSpan(b.height)
	if !okW || !okH {
		return b
	}
	for i := 0; i < maxRooms; i++ {
		w := b.randRange(minW, maxW)
		h := b.randRange(minH, maxH)
		x := b.randRange(1, b.width-w-1)
		y := b.randRange(1, b.height-h-1)

		newRoom := Rect{X: x, Y: y, W: w, H: h}

		// Проверяем пересечения
		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(b.floor, newRoom)

		// Соединяем с предыдущей комнатой
		if len(b.rooms) > 0 {
			prevX, prevY := b.rooms[len(b.rooms)-1].Center()
			currX, currY := newRoom.Center()

			if b.rng.Intn(2) == 0 {
				createHCorridor(b.floor, prevX, currX, prevY)
				createVCorridor(b.floor, prevY, currY, currX)
			} else {
				createVCorridor(b.floor, prevY, currY, prevX)
				createHCorridor(b.floor, prevX, currX, currY)
			}
		}
		b.rooms = append(b.rooms, newRoom)
	}

	return b
}

// Rooms - сгенерированные комнаты
func (b *LevelBuilder) Rooms() []Rect {
	return b.rooms
}

// IsFloor - проходима ли клетка по планировке
func (b *LevelBuilder) IsFloor(p domain.Position) bool {
	return p.Y >= 0 && p.Y < len(b.floor) && p.X >= 0 && p.X < len(b.floor[p.Y]) && b.floor[p.Y][p.X]
}

// place кладёт сущность, если клетка - свободный пол
func (b *LevelBuilder) place(e *domain.Entity) bool {
	if e == nil || !b.IsFloor(e.Pos) || b.taken[e.Pos] {
		return false
	}
	b.taken[e.Pos] = true
	b.entities = append(b.entities, e)
	return true
}

// freeSpot ищет свободную клетку пола в комнате (макс 20 попыток)
func (b *LevelBuilder) freeSpot(room Rect) (domain.Position, bool) {
	for attempt := 0; attempt < 20; attempt++ {
		p := domain.Position{
			X: room.X + 1 + b.rng.Intn(max(room.W-1, 1)),
			Y: room.Y + 1 + b.rng.Intn(max(room.H-1, 1)),
		}
		if b.IsFloor(p) && !b.taken[p] {
			return p, true
		}
	}
	return domain.Position{}, false
}

// PlacePlayer ставит игрока в центр первой комнаты
func (b *LevelBuilder) PlacePlayer() *LevelBuilder {
	b.place(b.factory.Player(b.GetStartPos()))
	return b
}

// SpawnEnemy спавнит врагов в случайных комнатах (кроме первой)
func (b *LevelBuilder) SpawnEnemy(kind domain.EntityKind, count int) *LevelBuilder {
	for i := 0; i < count && len(b.rooms) > 1; i++ {
		room := b.rooms[b.rng.Intn(len(b.rooms)-1)+1]
		if p, ok := b.freeSpot(room); ok {
			b.place(b.factory.Create(kind, p))
		}
	}
	return b
}

// SpawnItem спавнит предметы в случайных комнатах
func (b *LevelBuilder) SpawnItem(kind domain.EntityKind, count int) *LevelBuilder {
	for i := 0; i < count && len(b.rooms) > 0; i++ {
		room := b.rooms[b.rng.Intn(len(b.rooms))]
		if p, ok := b.freeSpot(room); ok {
			b.place(b.factory.Create(kind, p))
		}
	}
	return b
}

// PlaceSwamp разбрасывает болото с заданной стоимостью прохода
func (b *LevelBuilder) PlaceSwamp(count, factor int) *LevelBuilder {
	for i := 0; i < count && len(b.rooms) > 0; i++ {
		room := b.rooms[b.rng.Intn(len(b.rooms))]
		if p, ok := b.freeSpot(room); ok {
			b.place(b.factory.Swamp(p, factor))
		}
	}
	return b
}

// PlacePortals ставит пару порталов: в первой и последней комнате
func (b *LevelBuilder) PlacePortals(color string) *LevelBuilder {
	if len(b.rooms) < 2 {
		return b
	}
	first, okFirst := b.freeSpot(b.rooms[0])
	last, okLast := b.freeSpot(b.rooms[len(b.rooms)-1])
	if !okFirst || !okLast {
		return b
	}
	b.place(b.factory.Portal(first, color))
	b.place(b.factory.Portal(last, color))
	return b
}

// PlaceCircuit собирает в последней комнате схему: валун перед выключателем, провод и лампу.
//
//	B S
//	  W L
func (b *LevelBuilder) PlaceCircuit(rule logic.Rule) *LevelBuilder {
	if len(b.rooms) == 0 {
		return b
	}
	cx, cy := b.rooms[len(b.rooms)-1].Center()
	layout := []*domain.Entity{
		b.factory.Boulder(domain.Position{X: cx - 1, Y: cy}),
		b.factory.Switch(domain.Position{X: cx, Y: cy}),
		b.factory.Wire(domain.Position{X: cx, Y: cy + 1}),
		b.factory.LightBulb(domain.Position{X: cx + 1, Y: cy + 1}, rule),
	}
	for _, e := range layout {
		if !b.IsFloor(e.Pos) || b.taken[e.Pos] {
			return b
		}
	}
	for _, e := range layout {
		b.place(e)
	}
	return b
}

// GetStartPos возвращает стартовую позицию (центр первой комнаты)
func (b *LevelBuilder) GetStartPos() domain.Position {
	if len(b.rooms) > 0 {
		cx, cy := b.rooms[0].Center()
		return domain.Position{X: cx, Y: cy}
	}
	return domain.Position{X: b.width / 2, Y: b.height / 2}
}

// Build собирает сущности уровня. Стены ставятся только вдоль пола:
// остальной камень недостижим и в индекс не попадает.
func (b *LevelBuilder) Build() ([]*domain.Entity, domain.Position) {
	var walls []*domain.Entity
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			p := domain.Position{X: x, Y: y}
			if b.IsFloor(p) || !b.bordersFloor(p) {
				continue
			}
			walls = append(walls, b.factory.Wall(p))
		}
	}
	return append(walls, b.entities...), b.GetStartPos()
}

func (b *LevelBuilder) bordersFloor(p domain.Position) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && b.IsFloor(p.Shift(dx, dy)) {
				return true
			}
		}
	}
	return false
}
