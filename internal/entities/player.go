package entities

import (
	"slices"

	"dungeon-sim/internal/domain"
	"dungeon-sim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Player - единственная сущность с инвентарём.
// Бой вне ядра: встречи с врагами передаются в OnEncounter.
type Player struct {
	self *domain.Entity

	Inventory []*domain.Entity
	MaxSlots  int

	TreasureCount int
	SunStoneCount int
	Encounters    int

	// OnEncounter вызывается, когда игрок и враг оказались в одной клетке
	OnEncounter func(enemy *domain.Entity)
}

// PlayerOf достаёт поведение игрока из сущности
func PlayerOf(e *domain.Entity) *Player {
	if e == nil {
		return nil
	}
	p, _ := e.Picker.(*Player)
	return p
}

// AttemptPickup кладёт предмет в инвентарь, если есть место
func (p *Player) AttemptPickup(item *domain.Entity) bool {
	if item.Item == nil || len(p.Inventory) >= p.MaxSlots {
		return false
	}
	p.Inventory = append(p.Inventory, item)

	switch item.Kind {
	case domain.KindTreasure:
		p.TreasureCount++
	case domain.KindSunStone:
		p.SunStoneCount++
	}
	if b, ok := item.Explosive.(*Bomb); ok {
		b.State = BombInInventory
	}
	return true
}

// Has - есть ли в инвентаре предмет такого типа
func (p *Player) Has(kind domain.EntityKind) bool {
	return slices.ContainsFunc(p.Inventory, func(e *domain.Entity) bool { return e.Kind == kind })
}

// KeyFor - ключ от двери с номером number, если он есть в инвентаре
func (p *Player) KeyFor(number int) *domain.Entity {
	for _, e := range p.Inventory {
		if e.Kind == domain.KindKey && e.Item != nil && e.Item.Key == number {
			return e
		}
	}
	return nil
}

// Count - сколько предметов такого типа в инвентаре
func (p *Player) Count(kind domain.EntityKind) int {
	n := 0
	for _, e := range p.Inventory {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (p *Player) drop(item *domain.Entity) bool {
	i := slices.Index(p.Inventory, item)
	if i < 0 {
		return false
	}
	p.Inventory = slices.Delete(p.Inventory, i, i+1)
	return true
}

// OnOverlap - враг пришёл в клетку игрока
func (p *Player) OnOverlap(_ domain.World, mover *domain.Entity) {
	if isEnemy(mover) {
		p.encounter(mover)
	}
}

func (p *Player) encounter(enemy *domain.Entity) {
	p.Encounters++
	logger.Log.WithFields(logrus.Fields{
		"component": "player",
		"player_id": p.self.ID,
		"enemy_id":  enemy.ID,
	}).Debug("Encounter")
	if p.OnEncounter != nil {
		p.OnEncounter(enemy)
	}
}

// PlaceBomb выкладывает бомбу из инвентаря под ноги игрока.
// Если рядом уже включён выключатель - бомба взрывается сразу.
func (p *Player) PlaceBomb(w domain.World, bomb *domain.Entity) bool {
	b, ok := bomb.Explosive.(*Bomb)
	if !ok {
		return false
	}
	if !p.drop(bomb) {
		return false
	}

	bomb.Pos = p.self.Pos
	b.State = BombPlaced
	w.AddEntity(bomb)
	b.react(w)
	return true
}
