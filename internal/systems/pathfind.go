package systems

import (
	"dungeon-sim/internal/domain"
	"dungeon-sim/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

// DefaultSearchLimit - узел с накопленной дистанцией больше этой останавливает поиск
const DefaultSearchLimit = 200

// Grid - то, что поиску пути нужно знать о карте
type Grid interface {
	domain.MoveChecker
	Occupied(p domain.Position) bool
	Weight(p domain.Position) int
	PortalAt(p domain.Position) *domain.Entity
}

type searchNode struct {
	pos  domain.Position
	dist int
}

// NextStep возвращает следующую клетку на кратчайшем пути от src к dest для сущности e.
// Если ходить не нужно (src/dest не на карте, уже на месте, цель недостижима) - возвращает src.
//
// Dijkstra с двумя особенностями:
//   - портал не раскрывает соседей, а раскрывает выходы парного портала с той же дистанцией;
//   - стоимость шага в занятую клетку равна её весу, в пустую - 1.
func NextStep(g Grid, src, dest domain.Position, e *domain.Entity, limit int) domain.Position {
	if !g.Occupied(src) || !g.Occupied(dest) || src == dest {
		return src
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	dist := map[domain.Position]int{src: 0}
	prev := make(map[domain.Position]domain.Position)
	visited := mapset.New[domain.Position]()

	q := heap.New(func(a, b searchNode) bool { return a.dist < b.dist })
	q.Push(searchNode{pos: src})

	for q.Size() > 0 {
		curr, _ := q.Pop()
		if curr.dist > dist[curr.pos] || visited.Has(curr.pos) {
			continue // устаревшая запись
		}
		if curr.pos == dest || curr.dist > limit {
			break
		}

		// 1. Портал: прыгаем к выходам пары без дополнительной стоимости
		if portal := g.PortalAt(curr.pos); portal != nil && curr.pos != src {
			for _, exit := range portal.Portal.Exits(g, e) {
				if visited.Has(exit) {
					continue
				}
				if d, ok := dist[exit]; ok && d <= curr.dist {
					continue
				}
				dist[exit] = curr.dist
				prev[exit] = curr.pos
				q.Push(searchNode{pos: exit, dist: curr.dist})
			}
			continue
		}

		// 2. Обычная клетка: кардинальные соседи
		visited.Put(curr.pos)
		for _, next := range curr.pos.CardinalNeighbours() {
			if visited.Has(next) || !g.CanMoveTo(e, next) {
				continue
			}
			newDist := curr.dist + g.Weight(next)
			if d, ok := dist[next]; !ok || newDist < d {
				dist[next] = newDist
				prev[next] = curr.pos
				q.Push(searchNode{pos: next, dist: newDist})
			}
		}
	}

	step := firstStep(prev, src, dest)

	logger.Log.WithFields(logrus.Fields{
		"component": "pathfinder",
		"entity_id": e.ID,
		"src":       src,
		"dest":      dest,
		"step":      step,
		"explored":  visited.Size(),
	}).Debug("Next step computed")

	return step
}

// firstStep идёт по цепочке предшественников от dest назад до src.
// Цепочка может оборваться (лимит поиска), поэтому длина обхода ограничена.
func firstStep(prev map[domain.Position]domain.Position, src, dest domain.Position) domain.Position {
	step := dest
	for i := 0; i <= len(prev); i++ {
		p, ok := prev[step]
		if !ok {
			return src
		}
		if p == src {
			return step
		}
		step = p
	}
	return src
}
