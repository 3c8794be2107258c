package entities

import "dungeon-sim/internal/domain"

// wall никого не пускает
type wall struct{}

func (wall) CanMoveOnto(domain.World, *domain.Entity) bool { return false }

// Boulder толкает игрок. Валун сдвигается на клетку дальше в направлении движения.
type Boulder struct {
	self *domain.Entity
}

// CanMoveOnto - только игрок, шагающий на валун по Facing, и только если валуну есть куда сдвинуться
func (b *Boulder) CanMoveOnto(w domain.World, mover *domain.Entity) bool {
	dir, ok := b.pushDir(mover)
	if !ok {
		return false
	}
	return w.CanMoveTo(b.self, b.self.Pos.Translate(dir))
}

func (b *Boulder) OnOverlap(w domain.World, mover *domain.Entity) {
	if dir, ok := b.pushDir(mover); ok {
		w.MoveTo(b.self, b.self.Pos.Translate(dir))
	}
}

// pushDir - направление толчка. Проверка входа и сам толчок берут его из одного места.
// В OnOverlap игрок уже стоит на клетке валуна, поэтому сравниваем обе позиции.
func (b *Boulder) pushDir(mover *domain.Entity) (domain.Direction, bool) {
	if !mover.IsPlayer() || mover.Facing == domain.DirNone {
		return domain.DirNone, false
	}
	if mover.Pos != b.self.Pos && mover.Pos.Translate(mover.Facing) != b.self.Pos {
		return domain.DirNone, false
	}
	return mover.Facing, true
}

// portal телепортирует игрока и наёмника к первому свободному выходу пары.
// Остальные встают на клетку портала как на пол.
type portal struct {
	self *domain.Entity
}

func (p portal) CanMoveOnto(w domain.World, mover *domain.Entity) bool {
	if !p.self.Portal.IsBound() {
		return false
	}
	if !teleports(mover) {
		return true
	}
	return len(p.self.Portal.Exits(w, mover)) > 0
}

func (p portal) OnOverlap(w domain.World, mover *domain.Entity) {
	if !teleports(mover) {
		return
	}
	exits := p.self.Portal.Exits(w, mover)
	if len(exits) == 0 {
		return
	}
	w.MoveTo(mover, exits[0])
}

func teleports(e *domain.Entity) bool {
	return e.IsPlayer() || e.Kind == domain.KindMercenary
}
