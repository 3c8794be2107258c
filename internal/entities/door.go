package entities

import (
	"dungeon-sim/internal/domain"
	"dungeon-sim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Door - запертая дверь. Игрок проходит с ключом того же номера или с солнечным камнем.
// Ключ при открытии тратится, камень остаётся. Открытая дверь пропускает всех.
type Door struct {
	self   *domain.Entity
	Number int
	Open   bool
}

func (d *Door) CanMoveOnto(_ domain.World, mover *domain.Entity) bool {
	if d.Open {
		return true
	}
	p := PlayerOf(mover)
	if p == nil {
		return false
	}
	return p.Has(domain.KindSunStone) || p.KeyFor(d.Number) != nil
}

func (d *Door) OnOverlap(_ domain.World, mover *domain.Entity) {
	p := PlayerOf(mover)
	if d.Open || p == nil {
		return
	}

	// Камень предпочтительнее: он не расходуется
	opener := "sun_stone"
	if !p.Has(domain.KindSunStone) {
		key := p.KeyFor(d.Number)
		if key == nil || !p.drop(key) {
			return
		}
		opener = "key"
	}
	d.Open = true

	logger.Log.WithFields(logrus.Fields{
		"component": "door",
		"door_id":   d.self.ID,
		"number":    d.Number,
		"opener":    opener,
	}).Debug("Door opened")
}
