package logic

import (
	"fmt"
	"slices"

	"dungeon-sim/internal/domain"
	"dungeon-sim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Pair - два типа сущностей, которые соединяются ребром, если стоят рядом
type Pair struct {
	A, B domain.EntityKind
}

// DefaultPairs - таблица совместимости ролей:
// выключатель -> провод -> приёмник (лампа, дверь, бомба).
// Обычная бомба слушает только выключатели.
var DefaultPairs = []Pair{
	{domain.KindBomb, domain.KindSwitch},
	{domain.KindLogicalBomb, domain.KindSwitch},
	{domain.KindLogicalBomb, domain.KindWire},
	{domain.KindSwitchDoor, domain.KindSwitch},
	{domain.KindSwitchDoor, domain.KindWire},
	{domain.KindLightBulb, domain.KindSwitch},
	{domain.KindLightBulb, domain.KindWire},
	{domain.KindWire, domain.KindSwitch},
	{domain.KindWire, domain.KindWire},
}

// Network - симметричный граф подписок. Рёбра хранятся списком смежности по EntityID,
// у сущностей нет ссылок друг на друга.
type Network struct {
	pairs []Pair
	nodes map[domain.EntityID]*domain.Entity
	edges map[domain.EntityID][]domain.EntityID
}

func NewNetwork(pairs []Pair) *Network {
	if pairs == nil {
		pairs = DefaultPairs
	}
	return &Network{
		pairs: pairs,
		nodes: make(map[domain.EntityID]*domain.Entity),
		edges: make(map[domain.EntityID][]domain.EntityID),
	}
}

// Compatible - есть ли в таблице пара (a, b) в любом порядке
func (n *Network) Compatible(a, b domain.EntityKind) bool {
	for _, p := range n.pairs {
		if (p.A == a && p.B == b) || (p.A == b && p.B == a) {
			return true
		}
	}
	return false
}

// Build соединяет все совместимые пары соседей. Вызывается один раз после загрузки.
func (n *Network) Build(entities []*domain.Entity) {
	byKind := make(map[domain.EntityKind][]*domain.Entity)
	for _, e := range entities {
		if e.Logic != nil {
			byKind[e.Kind] = append(byKind[e.Kind], e)
		}
	}

	for _, p := range n.pairs {
		for _, s1 := range byKind[p.A] {
			for _, s2 := range byKind[p.B] {
				if s1.Pos.IsAdjacent(s2.Pos) {
					n.Subscribe(s1, s2)
				}
			}
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "logic_network",
		"nodes":     len(n.nodes),
		"edges":     n.EdgeCount(),
	}).Debug("Subscription network built")
}

// Attach подключает одну сущность (например, появившуюся после загрузки) к соседям-кандидатам
func (n *Network) Attach(e *domain.Entity, candidates []*domain.Entity) {
	if e.Logic == nil {
		return
	}
	for _, other := range candidates {
		if other == e || other.Logic == nil {
			continue
		}
		if e.Pos.IsAdjacent(other.Pos) && n.Compatible(e.Kind, other.Kind) {
			n.Subscribe(e, other)
		}
	}
}

// Subscribe создаёт симметричное ребро. Для не-участника сети - panic.
func (n *Network) Subscribe(a, b *domain.Entity) {
	mustSubscribable(a)
	mustSubscribable(b)
	if a == b || a.ID == b.ID {
		return
	}
	n.nodes[a.ID] = a
	n.nodes[b.ID] = b
	if !slices.Contains(n.edges[a.ID], b.ID) {
		n.edges[a.ID] = append(n.edges[a.ID], b.ID)
	}
	if !slices.Contains(n.edges[b.ID], a.ID) {
		n.edges[b.ID] = append(n.edges[b.ID], a.ID)
	}
}

// Unsubscribe удаляет ребро с обеих сторон
func (n *Network) Unsubscribe(a, b *domain.Entity) {
	n.edges[a.ID] = removeID(n.edges[a.ID], b.ID)
	n.edges[b.ID] = removeID(n.edges[b.ID], a.ID)
}

// UnsubscribeAll убирает сущность из списков всех соседей и очищает её собственный
func (n *Network) UnsubscribeAll(e *domain.Entity) {
	for _, id := range n.edges[e.ID] {
		n.edges[id] = removeID(n.edges[id], e.ID)
	}
	delete(n.edges, e.ID)
	delete(n.nodes, e.ID)
}

// Detach снимает сущность с сети и сообщает бывшим соседям, что источник пропал.
// Соседи пересчитывают состояние уже без неё. Сосед, ушедший из сети
// во время рассылки (взрыв цепочкой), сигнала не получает.
func (n *Network) Detach(bus domain.SignalBus, e *domain.Entity) {
	former := n.Neighbors(e)
	n.UnsubscribeAll(e)
	for _, nb := range former {
		if _, ok := n.nodes[nb.ID]; ok {
			nb.Logic.OnSignal(bus, e)
		}
	}
}

// Neighbors возвращает соседей в порядке создания рёбер
func (n *Network) Neighbors(e *domain.Entity) []*domain.Entity {
	ids := n.edges[e.ID]
	out := make([]*domain.Entity, 0, len(ids))
	for _, id := range ids {
		if other, ok := n.nodes[id]; ok {
			out = append(out, other)
		}
	}
	return out
}

// NotifyChange сообщает соседям, что e сменила состояние.
// Дальше по цепочке проводов сигнал несут сами провода.
func (n *Network) NotifyChange(e *domain.Entity) {
	n.Broadcast(n, e)
}

// Broadcast - то же, что NotifyChange, но соседи получают bus вызывающего
// (карта передаёт себя, чтобы реакторам был доступен весь мир)
func (n *Network) Broadcast(bus domain.SignalBus, e *domain.Entity) {
	for _, nb := range n.Neighbors(e) {
		nb.Logic.OnSignal(bus, e)
	}
}

// IsSubscribed - есть ли у сущности хоть одно ребро
func (n *Network) IsSubscribed(e *domain.Entity) bool {
	return len(n.edges[e.ID]) > 0
}

// EdgeCount - количество неориентированных рёбер
func (n *Network) EdgeCount() int {
	total := 0
	for _, ids := range n.edges {
		total += len(ids)
	}
	return total / 2
}

func mustSubscribable(e *domain.Entity) {
	if e.Logic == nil {
		panic(fmt.Sprintf("logic: entity %s (%s) is not subscribable", e.ID, e.Kind))
	}
}

func removeID(ids []domain.EntityID, id domain.EntityID) []domain.EntityID {
	i := slices.Index(ids, id)
	if i < 0 {
		return ids
	}
	return slices.Delete(ids, i, i+1)
}
