package entities

import (
	"math/rand"

	"dungeon-sim/internal/domain"
	"dungeon-sim/internal/logic"
)

// Значения по умолчанию
const (
	DefaultInventorySlots = 20
	DefaultBombRadius     = 1
	DefaultSwampFactor    = 2
	DefaultSpawnInterval  = 10
)

// Factory создаёт сущности и раздаёт им EntityID.
// Генератор случайных чисел общий для всех зомби одной фабрики.
type Factory struct {
	next uint64
	rng  *rand.Rand
}

func NewFactory(seed int64) *Factory {
	return &Factory{rng: rand.New(rand.NewSource(seed))}
}

func (f *Factory) newEntity(kind domain.EntityKind, pos domain.Position) *domain.Entity {
	f.next++
	return &domain.Entity{
		ID:   domain.PackEntityID(kind, f.next),
		Kind: kind,
		Pos:  pos,
	}
}

// Create собирает сущность по типу с параметрами по умолчанию.
// Для неизвестного типа и для портала (ему нужен цвет) возвращает nil.
func (f *Factory) Create(kind domain.EntityKind, pos domain.Position) *domain.Entity {
	switch kind {
	case domain.KindPlayer:
		return f.Player(pos)
	case domain.KindWall:
		return f.Wall(pos)
	case domain.KindBoulder:
		return f.Boulder(pos)
	case domain.KindSwamp:
		return f.Swamp(pos, DefaultSwampFactor)
	case domain.KindSwitch:
		return f.Switch(pos)
	case domain.KindWire:
		return f.Wire(pos)
	case domain.KindLightBulb:
		return f.LightBulb(pos, logic.RuleOr)
	case domain.KindSwitchDoor:
		return f.SwitchDoor(pos, logic.RuleOr)
	case domain.KindBomb:
		return f.Bomb(pos, DefaultBombRadius)
	case domain.KindLogicalBomb:
		return f.LogicalBomb(pos, DefaultBombRadius, logic.RuleOr)
	case domain.KindTreasure, domain.KindSunStone:
		return f.Collectable(kind, pos)
	case domain.KindKey:
		return f.Key(pos, 1)
	case domain.KindDoor:
		return f.Door(pos, 1)
	case domain.KindZombie:
		return f.Zombie(pos)
	case domain.KindMercenary:
		return f.Mercenary(pos)
	case domain.KindZombieSpawner:
		return f.ZombieSpawner(pos, DefaultSpawnInterval)
	}
	return nil
}

func (f *Factory) Player(pos domain.Position) *domain.Entity {
	e := f.newEntity(domain.KindPlayer, pos)
	p := &Player{self: e, MaxSlots: DefaultInventorySlots}
	e.Picker = p
	e.Overlap = p
	return e
}

func (f *Factory) Wall(pos domain.Position) *domain.Entity {
	e := f.newEntity(domain.KindWall, pos)
	e.Blocker = wall{}
	return e
}

func (f *Factory) Boulder(pos domain.Position) *domain.Entity {
	e := f.newEntity(domain.KindBoulder, pos)
	b := &Boulder{self: e}
	e.Blocker = b
	e.Overlap = b
	return e
}

func (f *Factory) Swamp(pos domain.Position, factor int) *domain.Entity {
	e := f.newEntity(domain.KindSwamp, pos)
	e.Terrain = &domain.TerrainComponent{MovementFactor: factor}
	return e
}

func (f *Factory) Switch(pos domain.Position) *domain.Entity {
	e := f.newEntity(domain.KindSwitch, pos)
	s := &Switch{self: e}
	e.Logic = s
	e.Overlap = s
	e.MovedAway = s
	return e
}

func (f *Factory) Wire(pos domain.Position) *domain.Entity {
	e := f.newEntity(domain.KindWire, pos)
	e.Logic = &Wire{self: e}
	return e
}

func (f *Factory) LightBulb(pos domain.Position, rule logic.Rule) *domain.Entity {
	e := f.newEntity(domain.KindLightBulb, pos)
	e.Logic = &Receiver{self: e, Rule: rule}
	return e
}

func (f *Factory) SwitchDoor(pos domain.Position, rule logic.Rule) *domain.Entity {
	e := f.newEntity(domain.KindSwitchDoor, pos)
	d := &SwitchDoor{Receiver: Receiver{self: e, Rule: rule}}
	e.Logic = d
	e.Blocker = d
	return e
}

func (f *Factory) Bomb(pos domain.Position, radius int) *domain.Entity {
	e := f.newEntity(domain.KindBomb, pos)
	b := &Bomb{self: e, Radius: radius}
	e.Item = &domain.ItemComponent{Weight: 1}
	e.Explosive = b
	e.Logic = b
	return e
}

func (f *Factory) LogicalBomb(pos domain.Position, radius int, rule logic.Rule) *domain.Entity {
	e := f.newEntity(domain.KindLogicalBomb, pos)
	b := &Bomb{self: e, Radius: radius, Rule: rule, logical: true}
	e.Item = &domain.ItemComponent{Weight: 1}
	e.Explosive = b
	e.Logic = b
	return e
}

func (f *Factory) Portal(pos domain.Position, color string) *domain.Entity {
	e := f.newEntity(domain.KindPortal, pos)
	p := portal{self: e}
	e.Portal = &domain.PortalComponent{Color: color}
	e.Blocker = p
	e.Overlap = p
	return e
}

// Collectable - предмет без поведения (сокровище, ключ, солнечный камень)
func (f *Factory) Collectable(kind domain.EntityKind, pos domain.Position) *domain.Entity {
	e := f.newEntity(kind, pos)
	e.Item = &domain.ItemComponent{Weight: 1}
	return e
}

// Key открывает дверь с тем же номером
func (f *Factory) Key(pos domain.Position, number int) *domain.Entity {
	e := f.Collectable(domain.KindKey, pos)
	e.Item.Key = number
	return e
}

func (f *Factory) Door(pos domain.Position, number int) *domain.Entity {
	e := f.newEntity(domain.KindDoor, pos)
	d := &Door{self: e, Number: number}
	e.Blocker = d
	e.Overlap = d
	return e
}

func (f *Factory) Zombie(pos domain.Position) *domain.Entity {
	e := f.newEntity(domain.KindZombie, pos)
	z := &Zombie{enemy: enemy{self: e}, rng: f.rng}
	e.Mover = z
	e.Overlap = z
	return e
}

func (f *Factory) Mercenary(pos domain.Position) *domain.Entity {
	e := f.newEntity(domain.KindMercenary, pos)
	m := &Mercenary{enemy: enemy{self: e}}
	e.Mover = m
	e.Overlap = m
	return e
}

func (f *Factory) ZombieSpawner(pos domain.Position, interval int) *domain.Entity {
	e := f.newEntity(domain.KindZombieSpawner, pos)
	s := &ZombieSpawner{self: e, factory: f, Interval: interval}
	e.Spawner = s
	e.Blocker = wall{}
	return e
}
