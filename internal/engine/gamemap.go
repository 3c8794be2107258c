package engine

import (
	"time"

	"dungeon-sim/internal/domain"
	"dungeon-sim/internal/logic"
	"dungeon-sim/internal/observability"
	"dungeon-sim/internal/spatial"
	"dungeon-sim/internal/systems"
	"dungeon-sim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// GameMap - пространственное ядро: индекс позиций, логическая сеть, порталы,
// перемещение с двухфазной рассылкой событий и поиск пути.
// Однопоточная: всё выполняется синхронно внутри тика.
type GameMap struct {
	cfg     Config
	index   *spatial.Index
	network *logic.Network
	turns   *TurnManager
	metrics *observability.MapCollector

	player      *domain.Entity
	initialized bool
}

// Option настраивает GameMap при создании
type Option func(*GameMap)

// WithMetrics подключает Prometheus-коллектор
func WithMetrics(c *observability.MapCollector) Option {
	return func(m *GameMap) { m.metrics = c }
}

// WithTurnManager задаёт общее расписание тиков
func WithTurnManager(tm *TurnManager) Option {
	return func(m *GameMap) { m.turns = tm }
}

// WithLogicPairs заменяет таблицу совместимости логической сети
func WithLogicPairs(pairs []logic.Pair) Option {
	return func(m *GameMap) { m.network = logic.NewNetwork(pairs) }
}

func NewGameMap(cfg Config, opts ...Option) *GameMap {
	if cfg.PathSearchLimit <= 0 {
		cfg.PathSearchLimit = systems.DefaultSearchLimit
	}
	m := &GameMap{
		cfg:     cfg,
		index:   spatial.NewIndex(),
		network: logic.NewNetwork(nil),
		turns:   NewTurnManager(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize индексирует начальную расстановку, связывает порталы, строит логическую сеть
// и регистрирует AI в расписании. Вызывается один раз до первого тика.
func (m *GameMap) Initialize(entities []*domain.Entity) {
	for _, e := range entities {
		m.index.Insert(e)
	}

	m.bindPortals()
	m.network.Build(m.index.All())

	for _, e := range m.index.All() {
		if m.player == nil && e.IsPlayer() {
			m.player = e
		}
		m.schedule(e)
	}

	m.initialized = true
	m.metrics.SetCells(m.index.CellCount())

	logger.Log.WithFields(logrus.Fields{
		"component": "game_map",
		"entities":  m.index.Size(),
		"cells":     m.index.CellCount(),
		"edges":     m.network.EdgeCount(),
		"scheduled": m.turns.Len(),
	}).Info("Map initialized")
}

// AddEntity кладёт сущность на карту. После инициализации она сразу подключается
// к логической сети и расписанию.
func (m *GameMap) AddEntity(e *domain.Entity) {
	m.index.Insert(e)
	m.metrics.SetCells(m.index.CellCount())

	if !m.initialized {
		return
	}
	if m.player == nil && e.IsPlayer() {
		m.player = e
	}
	if e.Logic != nil {
		m.network.Attach(e, m.around(e.Pos))
	}
	m.schedule(e)
}

// DestroyEntity убирает сущность из индекса, сети и расписания, вызывает её OnDestroy
// и будит бывших соседей по сети.
// Повторное уничтожение ничего не делает.
func (m *GameMap) DestroyEntity(e *domain.Entity) {
	if !m.index.Remove(e) {
		return
	}
	m.turns.Remove(e.ID)
	if m.player == e {
		m.player = nil
	}

	m.metrics.IncDestroyed()
	m.metrics.SetCells(m.index.CellCount())

	logger.Log.WithFields(logrus.Fields{
		"component": "game_map",
		"entity_id": e.ID,
		"pos":       e.Pos,
	}).Debug("Entity destroyed")

	// Бывшие соседи по сети пересчитываются без e и могут сами что-то уничтожить
	m.network.Detach(m, e)

	if e.Destroyed != nil {
		e.Destroyed.OnDestroy(m)
	}
}

// schedule регистрирует AI-ходы и спавнеры
func (m *GameMap) schedule(e *domain.Entity) {
	if e.Mover != nil {
		mover := e.Mover
		m.turns.Register(e.ID, PriorityAIMovement, 1, func() { mover.Move(m) })
	}
	if e.Spawner != nil {
		spawner := e.Spawner
		m.turns.Register(e.ID, PrioritySpawn, 1, func() { spawner.Spawn(m) })
	}
}

// around - сущности в восьми соседних клетках
func (m *GameMap) around(p domain.Position) []*domain.Entity {
	var out []*domain.Entity
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out = append(out, m.index.At(p.Shift(dx, dy))...)
		}
	}
	return out
}

// --- ЗАПРОСЫ ---

// EntitiesAt - жильцы клетки в порядке вставки (пустой срез, если клетки нет)
func (m *GameMap) EntitiesAt(p domain.Position) []*domain.Entity {
	return m.index.At(p)
}

func (m *GameMap) AllEntities() []*domain.Entity {
	return m.index.All()
}

func (m *GameMap) EntitiesOfCapability(c domain.Capability) []*domain.Entity {
	return m.index.OfCapability(c)
}

func (m *GameMap) EntityByID(id domain.EntityID) *domain.Entity {
	return m.index.Find(id)
}

func (m *GameMap) SpawnerCount() int {
	return len(m.index.OfCapability(domain.CapSpawner))
}

func (m *GameMap) Player() *domain.Entity {
	return m.player
}

func (m *GameMap) Turns() *TurnManager {
	return m.turns
}

// NextStep - следующий шаг на кратчайшем пути с учётом порталов
func (m *GameMap) NextStep(src, dest domain.Position, e *domain.Entity) domain.Position {
	start := time.Now()
	step := systems.NextStep(m, src, dest, e, m.cfg.PathSearchLimit)
	m.metrics.ObservePathfinding(time.Since(start))
	return step
}

// --- ЛОГИЧЕСКАЯ СЕТЬ ---

func (m *GameMap) Neighbors(e *domain.Entity) []*domain.Entity {
	return m.network.Neighbors(e)
}

func (m *GameMap) NotifyChange(e *domain.Entity) {
	m.network.Broadcast(m, e)
}

// --- СЕТКА ДЛЯ ПОИСКА ПУТИ ---

// CanMoveTo - пустая клетка доступна всегда, занятая - если все жильцы согласны
func (m *GameMap) CanMoveTo(e *domain.Entity, p domain.Position) bool {
	cell, ok := m.index.Cell(p)
	if !ok {
		return true
	}
	return cell.CanMoveOnto(m, e)
}

func (m *GameMap) Occupied(p domain.Position) bool {
	return m.index.Has(p)
}

func (m *GameMap) Weight(p domain.Position) int {
	if cell, ok := m.index.Cell(p); ok {
		return cell.Weight()
	}
	return 1
}

func (m *GameMap) PortalAt(p domain.Position) *domain.Entity {
	if cell, ok := m.index.Cell(p); ok {
		return cell.Portal()
	}
	return nil
}

var (
	_ domain.World = (*GameMap)(nil)
	_ systems.Grid = (*GameMap)(nil)
)
