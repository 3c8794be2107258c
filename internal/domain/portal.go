package domain

import "fmt"

// PortalComponent - цветной телепорт. Пара связывается один раз при загрузке.
type PortalComponent struct {
	Color   string  `json:"color"`
	partner *Entity // симметричная связь, после Bind не меняется
}

// Partner возвращает связанный портал или nil
func (p *PortalComponent) Partner() *Entity {
	if p == nil {
		return nil
	}
	return p.partner
}

// IsBound - есть ли пара
func (p *PortalComponent) IsBound() bool {
	return p.Partner() != nil
}

// BindPortals связывает два портала симметрично.
// Повторная привязка нарушает инвариант 1:1, поэтому panic.
func BindPortals(a, b *Entity) {
	if a.Portal == nil || b.Portal == nil {
		panic(fmt.Sprintf("domain: bind of non-portal entities %s, %s", a.ID, b.ID))
	}
	if a == b {
		panic(fmt.Sprintf("domain: portal %s bound to itself", a.ID))
	}
	if a.Portal.partner != nil || b.Portal.partner != nil {
		panic(fmt.Sprintf("domain: portal already bound (%s, %s)", a.ID, b.ID))
	}
	a.Portal.partner = b
	b.Portal.partner = a
}

// Exits - клетки вокруг парного портала, на которые mover может выйти.
// Порядок соответствует CardinalDirections.
func (p *PortalComponent) Exits(m MoveChecker, mover *Entity) []Position {
	partner := p.Partner()
	if partner == nil {
		return nil
	}
	var exits []Position
	for _, next := range partner.Pos.CardinalNeighbours() {
		if m.CanMoveTo(mover, next) {
			exits = append(exits, next)
		}
	}
	return exits
}
