package domain

import "fmt"

// --- КОНТРАКТЫ ВОЗМОЖНОСТЕЙ ---
// Сущность может реализовать любое их подмножество. Диспетчер проверяет
// наличие возможности (поле != nil), а не конкретный тип.

// MovableOntoChecker решает, можно ли mover'у встать на клетку этой сущности
type MovableOntoChecker interface {
	CanMoveOnto(w World, mover *Entity) bool
}

// OverlapReactor срабатывает, когда кто-то пришёл на клетку
type OverlapReactor interface {
	OnOverlap(w World, mover *Entity)
}

// MovedAwayReactor срабатывает, когда кто-то ушёл с клетки
type MovedAwayReactor interface {
	OnMovedAway(w World, mover *Entity)
}

// DestroyedReactor срабатывает при удалении с карты
type DestroyedReactor interface {
	OnDestroy(w World)
}

// LogicRole - роль узла в логической сети
type LogicRole uint8

const (
	RoleActivator LogicRole = iota + 1 // выключатель
	RoleConductor                      // провод
	RoleReceiver                       // лампа, дверь, бомба
)

// Subscriber - участник логической сети. Рёбра хранит сама сеть (logic.Network),
// сущность только реагирует на сигнал и сообщает своё состояние.
type Subscriber interface {
	Role() LogicRole
	IsActive() bool
	OnSignal(bus SignalBus, source *Entity)
}

// PickupState - можно ли сейчас подобрать взрывчатку
type PickupState uint8

const (
	PickupEligible PickupState = iota
	PickupIneligible
)

// ExplosiveItem - взрывчатка, которую можно подобрать только в определённом состоянии
type ExplosiveItem interface {
	PickupState() PickupState
}

// Picker - игрок. Инвентарь вне ядра, ядру нужен только этот вызов.
type Picker interface {
	AttemptPickup(item *Entity) bool
}

// Mover - AI, который раз в тик запрашивает ход
type Mover interface {
	Move(w World)
}

// Spawner - генератор новых сущностей
type Spawner interface {
	Spawn(w World)
}

// --- КОЛЛАБОРАНТЫ ЯДРА ---

// MoveChecker отвечает на вопрос "можно ли e встать на p"
type MoveChecker interface {
	CanMoveTo(e *Entity, p Position) bool
}

// SignalBus - доступ к логической сети для реакторов
type SignalBus interface {
	Neighbors(e *Entity) []*Entity
	NotifyChange(e *Entity)
}

// World - то, что карта отдаёт сущностям в колбэках. Передаётся явно,
// у сущностей нет ссылки на игру.
type World interface {
	MoveChecker
	SignalBus
	EntitiesAt(p Position) []*Entity
	MoveTo(e *Entity, p Position) bool
	AddEntity(e *Entity)
	DestroyEntity(e *Entity)
	NextStep(src, dest Position, e *Entity) Position
	Player() *Entity
}

// Capability - именованный контракт для запросов вида entitiesOfCapability(C)
type Capability uint8

const (
	CapMovableOnto Capability = iota + 1
	CapOverlap
	CapMovedAway
	CapDestroyed
	CapSubscribable
	CapInventoryItem
	CapExplosive
	CapPortal
	CapPicker
	CapMover
	CapSpawner
	CapTerrain
)

var capabilityNames = map[Capability]string{
	CapMovableOnto:   "movable_onto",
	CapOverlap:       "overlap",
	CapMovedAway:     "moved_away",
	CapDestroyed:     "destroyed",
	CapSubscribable:  "subscribable",
	CapInventoryItem: "inventory_item",
	CapExplosive:     "explosive",
	CapPortal:        "portal",
	CapPicker:        "picker",
	CapMover:         "mover",
	CapSpawner:       "spawner",
	CapTerrain:       "terrain",
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("capability(%d)", uint8(c))
}

// Has проверяет, реализует ли сущность возможность.
// Неизвестная возможность - ошибка программиста, поэтому panic.
func (c Capability) Has(e *Entity) bool {
	switch c {
	case CapMovableOnto:
		return e.Blocker != nil
	case CapOverlap:
		return e.Overlap != nil
	case CapMovedAway:
		return e.MovedAway != nil
	case CapDestroyed:
		return e.Destroyed != nil
	case CapSubscribable:
		return e.Logic != nil
	case CapInventoryItem:
		return e.Item != nil
	case CapExplosive:
		return e.Explosive != nil
	case CapPortal:
		return e.Portal != nil
	case CapPicker:
		return e.Picker != nil
	case CapMover:
		return e.Mover != nil
	case CapSpawner:
		return e.Spawner != nil
	case CapTerrain:
		return e.Terrain != nil
	}
	panic(fmt.Sprintf("domain: unknown capability %s", c))
}
