package engine

import (
	"dungeon-sim/internal/domain"
	"dungeon-sim/internal/observability"
	"dungeon-sim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// reaction - отложенный колбэк. Сначала собираем все по снимку клетки, потом выполняем.
type reaction func()

// dispatchMovedAway уведомляет жильцов старой клетки, что mover ушёл
func (m *GameMap) dispatchMovedAway(mover *domain.Entity, from domain.Position) {
	var queue []reaction
	for _, e := range m.index.At(from) {
		if e == mover || e.MovedAway == nil {
			continue
		}
		r := e.MovedAway
		queue = append(queue, func() { r.OnMovedAway(m, mover) })
	}
	m.run(observability.PhaseMovedAway, queue)
}

// dispatchOverlap уведомляет жильцов новой клетки о наложении.
// Если пришёл игрок, сначала пытаемся подобрать предмет.
func (m *GameMap) dispatchOverlap(mover *domain.Entity) {
	var queue []reaction
	for _, e := range m.index.At(mover.Pos) {
		if e == mover {
			continue
		}
		if mover.IsPlayer() {
			if r := m.resolvePickup(mover, e); r != nil {
				queue = append(queue, r)
			}
		}
		if e.Overlap != nil {
			r := e.Overlap
			queue = append(queue, func() { r.OnOverlap(m, mover) })
		}
	}
	m.run(observability.PhaseOverlap, queue)
}

// resolvePickup передаёт предмет игроку и возвращает отложенное уничтожение.
// nil - предмет не подобран.
func (m *GameMap) resolvePickup(player, item *domain.Entity) reaction {
	switch {
	case item.Explosive != nil:
		if item.Explosive.PickupState() != domain.PickupEligible {
			return nil
		}
		if !player.Picker.AttemptPickup(item) {
			return nil
		}
		// Бомба в инвентаре больше не слушает выключатели
		m.network.UnsubscribeAll(item)

	case item.Item != nil:
		if !player.Picker.AttemptPickup(item) {
			return nil
		}

	default:
		return nil
	}

	m.metrics.IncPickups()
	logger.Log.WithFields(logrus.Fields{
		"component": "dispatcher",
		"player_id": player.ID,
		"item_id":   item.ID,
		"kind":      item.Kind,
	}).Debug("Item picked up")

	return func() { m.DestroyEntity(item) }
}

func (m *GameMap) run(phase string, queue []reaction) {
	for _, r := range queue {
		r()
	}
	m.metrics.AddEvents(phase, len(queue))
}
