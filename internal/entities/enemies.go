package entities

import (
	"math/rand"

	"dungeon-sim/internal/domain"
	"dungeon-sim/pkg/logger"

	"github.com/sirupsen/logrus"
)

func isEnemy(e *domain.Entity) bool {
	return e.Kind == domain.KindZombie || e.Kind == domain.KindMercenary
}

// enemy - общая часть врагов: встреча с игроком при наложении
type enemy struct {
	self *domain.Entity
}

func (en *enemy) OnOverlap(_ domain.World, mover *domain.Entity) {
	if p := PlayerOf(mover); p != nil {
		p.encounter(en.self)
	}
}

// Zombie бродит случайно по свободным соседним клеткам
type Zombie struct {
	enemy
	rng *rand.Rand
}

func (z *Zombie) Move(w domain.World) {
	var options []domain.Position
	for _, next := range z.self.Pos.CardinalNeighbours() {
		if w.CanMoveTo(z.self, next) {
			options = append(options, next)
		}
	}
	if len(options) == 0 {
		return
	}
	w.MoveTo(z.self, options[z.rng.Intn(len(options))])
}

// Mercenary идёт к игроку по кратчайшему пути, пересчитывая его каждый тик
type Mercenary struct {
	enemy
}

func (m *Mercenary) Move(w domain.World) {
	player := w.Player()
	if player == nil {
		return
	}
	next := w.NextStep(m.self.Pos, player.Pos, m.self)
	if next == m.self.Pos {
		return
	}
	w.MoveTo(m.self, next)
}

// ZombieSpawner раз в Interval тиков ставит зомби на первую свободную соседнюю клетку
type ZombieSpawner struct {
	self     *domain.Entity
	factory  *Factory
	Interval int
	ticks    int
}

func (s *ZombieSpawner) Spawn(w domain.World) {
	s.ticks++
	if s.Interval <= 0 || s.ticks%s.Interval != 0 {
		return
	}
	for _, next := range s.self.Pos.CardinalNeighbours() {
		if len(w.EntitiesAt(next)) > 0 {
			continue
		}
		zombie := s.factory.Zombie(next)
		w.AddEntity(zombie)
		logger.Log.WithFields(logrus.Fields{
			"component":  "spawner",
			"spawner_id": s.self.ID,
			"entity_id":  zombie.ID,
			"pos":        next,
		}).Debug("Zombie spawned")
		return
	}
}
