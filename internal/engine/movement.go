package engine

import (
	"dungeon-sim/internal/domain"
	"dungeon-sim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MoveTo переносит сущность на dest и рассылает события.
// Отклонённый ход не меняет позиций и ничего не рассылает.
// Шаг на соседнюю клетку разворачивает сущность в его сторону до проверки:
// толкаемые объекты смотрят на Facing.
func (m *GameMap) MoveTo(e *domain.Entity, dest domain.Position) bool {
	if d := e.Pos.DirectionTo(dest); d != domain.DirNone {
		e.Facing = d
	}
	if dest == e.Pos || !m.index.Contains(e) || !m.CanMoveTo(e, dest) {
		m.metrics.ObserveMove(false)
		logger.Log.WithFields(logrus.Fields{
			"component": "movement",
			"entity_id": e.ID,
			"from":      e.Pos,
			"to":        dest,
		}).Debug("Move rejected")
		return false
	}

	from := e.Pos

	// 1. Фаза ухода - по старой клетке, до переноса
	m.dispatchMovedAway(e, from)

	// Реакция на уход могла убрать mover'а с карты
	if !m.index.Contains(e) {
		m.metrics.ObserveMove(false)
		return false
	}

	// 2. Перенос в индексе
	m.index.Remove(e)
	e.Pos = dest
	m.index.Insert(e)
	m.metrics.ObserveMove(true)
	m.metrics.SetCells(m.index.CellCount())

	// 3. Фаза наложения - по новой клетке
	m.dispatchOverlap(e)
	return true
}

// MoveDir - то же, что MoveTo, но по направлению. Разворачивает сущность даже при отказе.
func (m *GameMap) MoveDir(e *domain.Entity, d domain.Direction) bool {
	e.Facing = d
	return m.MoveTo(e, e.Pos.Translate(d))
}
