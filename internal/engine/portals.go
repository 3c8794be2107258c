package engine

import (
	"dungeon-sim/internal/domain"
	"dungeon-sim/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// bindPortals связывает порталы одного цвета парами в порядке обхода индекса:
// первый со вторым, третий с четвёртым. Лишний портал остаётся без пары.
func (m *GameMap) bindPortals() {
	pending := make(map[string]*domain.Entity)
	seen := make(map[string]int)
	crowded := mapset.New[string]()

	for _, p := range m.index.OfCapability(domain.CapPortal) {
		if p.Portal.IsBound() {
			continue
		}
		color := p.Portal.Color
		seen[color]++
		if seen[color] > 2 {
			crowded.Put(color)
		}

		if first, ok := pending[color]; ok {
			domain.BindPortals(first, p)
			delete(pending, color)
			continue
		}
		pending[color] = p
	}

	crowded.Each(func(color string) {
		logger.Log.WithFields(logrus.Fields{
			"component": "portal_binder",
			"color":     color,
			"count":     seen[color],
		}).Warn("More than two portals share a color, pairing in discovery order")
	})
	for color, p := range pending {
		logger.Log.WithFields(logrus.Fields{
			"component": "portal_binder",
			"color":     color,
			"entity_id": p.ID,
			"pos":       p.Pos,
		}).Warn("Portal left without a partner")
	}
}
