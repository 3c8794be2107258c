package logic

import (
	"os"
	"testing"

	"dungeon-sim/internal/domain"
	"dungeon-sim/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// node - минимальный участник сети для тестов
type node struct {
	role    domain.LogicRole
	active  bool
	signals []domain.EntityID
}

func (n *node) Role() domain.LogicRole { return n.role }
func (n *node) IsActive() bool         { return n.active }
func (n *node) OnSignal(_ domain.SignalBus, source *domain.Entity) {
	n.signals = append(n.signals, source.ID)
}

var nextIndex uint64

func newNode(kind domain.EntityKind, role domain.LogicRole, x, y int) (*domain.Entity, *node) {
	nextIndex++
	n := &node{role: role}
	return &domain.Entity{
		ID:    domain.PackEntityID(kind, nextIndex),
		Kind:  kind,
		Pos:   domain.Position{X: x, Y: y},
		Logic: n,
	}, n
}

func hasEdge(net *Network, a, b *domain.Entity) bool {
	for _, nb := range net.Neighbors(a) {
		if nb == b {
			return true
		}
	}
	return false
}

func TestBuildConnectsCompatibleNeighbours(t *testing.T) {
	sw, _ := newNode(domain.KindSwitch, domain.RoleActivator, 0, 0)
	wire, _ := newNode(domain.KindWire, domain.RoleConductor, 1, 1) // диагональ
	bulb, _ := newNode(domain.KindLightBulb, domain.RoleReceiver, 2, 1)
	farBulb, _ := newNode(domain.KindLightBulb, domain.RoleReceiver, 5, 5)
	bomb, _ := newNode(domain.KindBomb, domain.RoleReceiver, 1, 0)

	net := NewNetwork(nil)
	net.Build([]*domain.Entity{sw, wire, bulb, farBulb, bomb})

	cases := []struct {
		name string
		a, b *domain.Entity
		want bool
	}{
		{"switch-wire diagonal", sw, wire, true},
		{"wire-bulb", wire, bulb, true},
		{"bomb-switch", bomb, sw, true},
		{"bomb ignores wires", bomb, wire, false},
		{"bulb-bulb incompatible", bulb, farBulb, false},
		{"far bulb isolated", farBulb, wire, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := hasEdge(net, tc.a, tc.b); got != tc.want {
				t.Errorf("edge %s-%s = %t, want %t", tc.a.Kind, tc.b.Kind, got, tc.want)
			}
			if hasEdge(net, tc.a, tc.b) != hasEdge(net, tc.b, tc.a) {
				t.Error("edges must be symmetric")
			}
		})
	}
}

func TestSubscribeIsIdempotent(t *testing.T) {
	w1, _ := newNode(domain.KindWire, domain.RoleConductor, 0, 0)
	w2, _ := newNode(domain.KindWire, domain.RoleConductor, 1, 0)

	net := NewNetwork(nil)
	net.Build([]*domain.Entity{w1, w2})
	net.Subscribe(w1, w2)

	if net.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge, got %d", net.EdgeCount())
	}
}

func TestUnsubscribeRemovesBothSides(t *testing.T) {
	sw, _ := newNode(domain.KindSwitch, domain.RoleActivator, 1, 0)
	w1, _ := newNode(domain.KindWire, domain.RoleConductor, 0, 0)
	w2, _ := newNode(domain.KindWire, domain.RoleConductor, 2, 0)

	net := NewNetwork(nil)
	net.Build([]*domain.Entity{sw, w1, w2})
	edges := net.EdgeCount()

	net.Unsubscribe(sw, w1)

	if hasEdge(net, sw, w1) || hasEdge(net, w1, sw) {
		t.Error("edge must be removed from both lists")
	}
	if !hasEdge(net, sw, w2) || !hasEdge(net, w2, sw) {
		t.Error("unrelated edge must survive")
	}
	if net.EdgeCount() != edges-1 {
		t.Errorf("EdgeCount = %d, want %d", net.EdgeCount(), edges-1)
	}

	// Повторный вызов - no-op
	net.Unsubscribe(w1, sw)
	if net.EdgeCount() != edges-1 {
		t.Errorf("second Unsubscribe changed EdgeCount to %d", net.EdgeCount())
	}
}

func TestUnsubscribeAllLeavesNoDanglingEdges(t *testing.T) {
	sw, _ := newNode(domain.KindSwitch, domain.RoleActivator, 1, 1)
	w1, _ := newNode(domain.KindWire, domain.RoleConductor, 0, 1)
	w2, _ := newNode(domain.KindWire, domain.RoleConductor, 2, 1)
	bomb, _ := newNode(domain.KindBomb, domain.RoleReceiver, 1, 0)

	net := NewNetwork(nil)
	net.Build([]*domain.Entity{sw, w1, w2, bomb})

	net.UnsubscribeAll(sw)

	for _, e := range []*domain.Entity{w1, w2, bomb} {
		if hasEdge(net, e, sw) {
			t.Errorf("%s still lists the destroyed switch", e.Kind)
		}
	}
	if len(net.Neighbors(sw)) != 0 {
		t.Error("destroyed entity must have an empty edge list")
	}
	if net.IsSubscribed(bomb) {
		t.Error("bomb only had the switch as neighbour")
	}
}

func TestNotifyChangeFansOut(t *testing.T) {
	sw, _ := newNode(domain.KindSwitch, domain.RoleActivator, 1, 1)
	w1, n1 := newNode(domain.KindWire, domain.RoleConductor, 0, 1)
	bulb, nb := newNode(domain.KindLightBulb, domain.RoleReceiver, 2, 1)

	net := NewNetwork(nil)
	net.Build([]*domain.Entity{sw, w1, bulb})
	net.NotifyChange(sw)

	if len(n1.signals) != 1 || n1.signals[0] != sw.ID {
		t.Errorf("wire signals = %v", n1.signals)
	}
	if len(nb.signals) != 1 {
		t.Errorf("bulb signals = %v", nb.signals)
	}
}

func TestDetachWakesFormerNeighbours(t *testing.T) {
	sw, _ := newNode(domain.KindSwitch, domain.RoleActivator, 1, 1)
	w1, n1 := newNode(domain.KindWire, domain.RoleConductor, 0, 1)
	bulb, nb := newNode(domain.KindLightBulb, domain.RoleReceiver, 2, 1)
	far, nf := newNode(domain.KindWire, domain.RoleConductor, 9, 9)

	net := NewNetwork(nil)
	net.Build([]*domain.Entity{sw, w1, bulb, far})
	net.Detach(net, sw)

	if len(n1.signals) != 1 || n1.signals[0] != sw.ID || len(nb.signals) != 1 {
		t.Errorf("former neighbours signals: wire=%v bulb=%v", n1.signals, nb.signals)
	}
	if len(nf.signals) != 0 {
		t.Error("unrelated node must not be signalled")
	}
	if hasEdge(net, w1, sw) || hasEdge(net, bulb, sw) || len(net.Neighbors(sw)) != 0 {
		t.Error("detached entity must leave no edges behind")
	}
}

func TestSubscribeNonSubscribablePanics(t *testing.T) {
	sw, _ := newNode(domain.KindSwitch, domain.RoleActivator, 0, 0)
	plain := &domain.Entity{ID: 77, Kind: domain.KindWall}

	defer func() {
		if recover() == nil {
			t.Error("Subscribe with a non-subscribable entity must panic")
		}
	}()
	NewNetwork(nil).Subscribe(sw, plain)
}

func TestRules(t *testing.T) {
	on, onNode := newNode(domain.KindSwitch, domain.RoleActivator, 0, 0)
	onNode.active = true
	off, _ := newNode(domain.KindSwitch, domain.RoleActivator, 0, 0)
	on2, on2Node := newNode(domain.KindSwitch, domain.RoleActivator, 0, 0)
	on2Node.active = true

	cases := []struct {
		rule   Rule
		inputs []*domain.Entity
		want   bool
	}{
		{RuleOr, []*domain.Entity{off, on}, true},
		{RuleOr, []*domain.Entity{off}, false},
		{RuleAnd, []*domain.Entity{on, on2}, true},
		{RuleAnd, []*domain.Entity{on}, false},
		{RuleAnd, []*domain.Entity{on, on2, off}, false},
		{RuleXor, []*domain.Entity{on, off}, true},
		{RuleXor, []*domain.Entity{on, on2}, false},
	}
	for _, tc := range cases {
		if got := tc.rule.Evaluate(tc.inputs); got != tc.want {
			t.Errorf("%s over %d inputs = %t, want %t", tc.rule, len(tc.inputs), got, tc.want)
		}
	}

	if ParseRule("XOR") != RuleXor || ParseRule("garbage") != RuleOr {
		t.Error("ParseRule mismatch")
	}
}

func TestPoweredFollowsConductors(t *testing.T) {
	sw, swNode := newNode(domain.KindSwitch, domain.RoleActivator, 0, 0)
	w1, _ := newNode(domain.KindWire, domain.RoleConductor, 1, 0)
	w2, _ := newNode(domain.KindWire, domain.RoleConductor, 2, 0)
	w3, _ := newNode(domain.KindWire, domain.RoleConductor, 3, 0)

	net := NewNetwork(nil)
	net.Build([]*domain.Entity{sw, w1, w2, w3})

	if Powered(net, w3) {
		t.Error("wire must be unpowered while switch is off")
	}
	swNode.active = true
	if !Powered(net, w3) {
		t.Error("wire three hops away must be powered")
	}
}
