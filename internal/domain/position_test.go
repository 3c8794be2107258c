package domain

import "testing"

func TestPositionAdjacency(t *testing.T) {
	origin := Position{X: 5, Y: 5}

	cases := []struct {
		name      string
		other     Position
		adjacent  bool
		cardinals bool
	}{
		{"same cell", Position{X: 5, Y: 5}, false, false},
		{"right", Position{X: 6, Y: 5}, true, true},
		{"up", Position{X: 5, Y: 4}, true, true},
		{"diagonal", Position{X: 4, Y: 4}, true, false},
		{"two away", Position{X: 7, Y: 5}, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := origin.IsAdjacent(tc.other); got != tc.adjacent {
				t.Errorf("IsAdjacent(%v) = %t, want %t", tc.other, got, tc.adjacent)
			}
			if got := origin.IsCardinallyAdjacent(tc.other); got != tc.cardinals {
				t.Errorf("IsCardinallyAdjacent(%v) = %t, want %t", tc.other, got, tc.cardinals)
			}
		})
	}
}

func TestPositionTranslate(t *testing.T) {
	p := Position{X: 2, Y: 2}

	if got := p.Translate(DirUp); got != (Position{X: 2, Y: 1}) {
		t.Errorf("Translate(UP) = %v", got)
	}
	if got := p.Translate(DirLeft); got != (Position{X: 1, Y: 2}) {
		t.Errorf("Translate(LEFT) = %v", got)
	}
	if got := p.Translate(DirNone); got != p {
		t.Errorf("Translate(NONE) should not move, got %v", got)
	}
	if d := p.DirectionTo(Position{X: 3, Y: 2}); d != DirRight {
		t.Errorf("DirectionTo = %v, want RIGHT", d)
	}
	if DirUp.Opposite() != DirDown || DirLeft.Opposite() != DirRight {
		t.Error("Opposite is broken")
	}
}

func TestBindPortals(t *testing.T) {
	a := &Entity{ID: 1, Portal: &PortalComponent{Color: "red"}}
	b := &Entity{ID: 2, Portal: &PortalComponent{Color: "red"}}
	c := &Entity{ID: 3, Portal: &PortalComponent{Color: "red"}}

	BindPortals(a, b)

	if a.Portal.Partner() != b || b.Portal.Partner() != a {
		t.Fatal("binding must be symmetric")
	}

	defer func() {
		if recover() == nil {
			t.Error("rebinding a bound portal must panic")
		}
	}()
	BindPortals(a, c)
}

func TestCapabilityUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("unknown capability must panic")
		}
	}()
	Capability(200).Has(&Entity{})
}
