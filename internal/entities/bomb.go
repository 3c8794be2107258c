package entities

import (
	"dungeon-sim/internal/domain"
	"dungeon-sim/internal/logic"
	"dungeon-sim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// BombState - жизненный цикл бомбы
type BombState uint8

const (
	BombSpawned     BombState = iota // лежит на карте с начала уровня
	BombInInventory                  // у игрока
	BombPlaced                       // выложена игроком
)

// Bomb взрывается от соседнего включённого выключателя.
// Логическая бомба слушает и провода и взрывается по правилу.
type Bomb struct {
	self    *domain.Entity
	Radius  int
	Rule    logic.Rule
	State   BombState
	logical bool
	blown   bool
}

// PickupState - подобрать можно только бомбу, которая лежит с начала уровня
func (b *Bomb) PickupState() domain.PickupState {
	if b.State == BombSpawned {
		return domain.PickupEligible
	}
	return domain.PickupIneligible
}

func (b *Bomb) Role() domain.LogicRole { return domain.RoleReceiver }

// IsActive - бомба не является источником сигнала
func (b *Bomb) IsActive() bool { return false }

func (b *Bomb) OnSignal(bus domain.SignalBus, _ *domain.Entity) {
	if w, ok := bus.(domain.World); ok {
		b.react(w)
	}
}

// react проверяет входы и взрывает бомбу, если условие выполнено
func (b *Bomb) react(w domain.World) {
	if b.State == BombInInventory {
		return
	}
	inputs := logic.Inputs(w, b.self)
	var trigger bool
	if b.logical {
		trigger = b.Rule.Evaluate(inputs)
	} else {
		for _, in := range inputs {
			if in.Kind == domain.KindSwitch && in.IsActive() {
				trigger = true
				break
			}
		}
	}
	if trigger {
		b.Explode(w)
	}
}

// Explode уничтожает всё в радиусе, кроме игрока, включая саму бомбу
func (b *Bomb) Explode(w domain.World) {
	if b.blown {
		return
	}
	b.blown = true
	center := b.self.Pos
	logger.Log.WithFields(logrus.Fields{
		"component": "bomb",
		"entity_id": b.self.ID,
		"pos":       center,
		"radius":    b.Radius,
	}).Info("Bomb exploded")

	for dy := -b.Radius; dy <= b.Radius; dy++ {
		for dx := -b.Radius; dx <= b.Radius; dx++ {
			for _, e := range w.EntitiesAt(center.Shift(dx, dy)) {
				if e.IsPlayer() {
					continue
				}
				w.DestroyEntity(e)
			}
		}
	}
}
