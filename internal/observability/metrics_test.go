package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMapCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewMapCollector(reg)
	if err != nil {
		t.Fatalf("NewMapCollector: %v", err)
	}

	c.ObserveMove(true)
	c.ObserveMove(true)
	c.ObserveMove(false)
	c.AddEvents(PhaseOverlap, 3)
	c.AddEvents(PhaseMovedAway, 0)
	c.IncPickups()
	c.IncDestroyed()
	c.SetCells(7)
	c.ObservePathfinding(2 * time.Millisecond)

	if got := testutil.ToFloat64(c.Moves.WithLabelValues(MoveAccepted)); got != 2 {
		t.Errorf("accepted moves = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Moves.WithLabelValues(MoveRejected)); got != 1 {
		t.Errorf("rejected moves = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.EventsDispatched.WithLabelValues(PhaseOverlap)); got != 3 {
		t.Errorf("overlap events = %v, want 3", got)
	}
	if got := testutil.ToFloat64(c.Pickups); got != 1 {
		t.Errorf("pickups = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Cells); got != 7 {
		t.Errorf("cells = %v, want 7", got)
	}
	if got := testutil.CollectAndCount(c.PathfindingSeconds); got != 1 {
		t.Errorf("pathfinding series = %d, want 1", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *MapCollector
	c.ObserveMove(true)
	c.AddEvents(PhaseOverlap, 1)
	c.IncPickups()
	c.IncDestroyed()
	c.SetCells(1)
	c.ObservePathfinding(time.Millisecond)
}

func TestRegisterTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMapCollector(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := NewMapCollector(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	first.IncDestroyed()
	if got := testutil.ToFloat64(second.EntitiesDestroyed); got != 1 {
		t.Errorf("second collector must share the counter, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewMapCollector(reg)
	if err != nil {
		t.Fatalf("NewMapCollector: %v", err)
	}
	c.ObserveMove(true)
	c.AddEvents(PhaseMovedAway, 1)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"dungeon_moves_total",
		"dungeon_events_dispatched_total",
		"dungeon_cells",
		"dungeon_pathfinding_duration_seconds",
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("expected %q in /metrics output", metric)
		}
	}
}
