package entities

import (
	"dungeon-sim/internal/domain"
	"dungeon-sim/internal/logic"
	"dungeon-sim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Switch включается, когда на него вкатили валун, и выключается, когда валун ушёл
type Switch struct {
	self   *domain.Entity
	active bool
}

func (s *Switch) Role() domain.LogicRole { return domain.RoleActivator }
func (s *Switch) IsActive() bool         { return s.active }

// OnSignal - выключатель сам сигналы не принимает
func (s *Switch) OnSignal(domain.SignalBus, *domain.Entity) {}

func (s *Switch) OnOverlap(w domain.World, mover *domain.Entity) {
	if mover.Kind == domain.KindBoulder {
		s.set(w, true)
	}
}

func (s *Switch) OnMovedAway(w domain.World, mover *domain.Entity) {
	if mover.Kind == domain.KindBoulder {
		s.set(w, false)
	}
}

func (s *Switch) set(bus domain.SignalBus, active bool) {
	if s.active == active {
		return
	}
	s.active = active
	logger.Log.WithFields(logrus.Fields{
		"component": "circuit",
		"entity_id": s.self.ID,
		"active":    active,
	}).Debug("Switch toggled")
	bus.NotifyChange(s.self)
}

// Wire проводит сигнал: активен, пока цепочкой проводов связан с включённым выключателем.
// Соседям сообщает только об изменении своего состояния.
type Wire struct {
	self   *domain.Entity
	active bool
}

func (w *Wire) Role() domain.LogicRole { return domain.RoleConductor }
func (w *Wire) IsActive() bool         { return w.active }

func (w *Wire) OnSignal(bus domain.SignalBus, _ *domain.Entity) {
	powered := logic.Powered(bus, w.self)
	if powered == w.active {
		return
	}
	w.active = powered
	bus.NotifyChange(w.self)
}

// Receiver - лампа: включается по логическому правилу над соседними входами
type Receiver struct {
	self   *domain.Entity
	Rule   logic.Rule
	active bool
}

func (r *Receiver) Role() domain.LogicRole { return domain.RoleReceiver }
func (r *Receiver) IsActive() bool         { return r.active }

func (r *Receiver) OnSignal(bus domain.SignalBus, _ *domain.Entity) {
	active := r.Rule.Evaluate(logic.Inputs(bus, r.self))
	if active == r.active {
		return
	}
	r.active = active
	logger.Log.WithFields(logrus.Fields{
		"component": "circuit",
		"entity_id": r.self.ID,
		"kind":      r.self.Kind,
		"rule":      r.Rule,
		"active":    active,
	}).Debug("Receiver changed state")
}

// SwitchDoor - дверь, открытая пока выполнено правило
type SwitchDoor struct {
	Receiver
}

func (d *SwitchDoor) CanMoveOnto(domain.World, *domain.Entity) bool {
	return d.active
}
