package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Значения меток
const (
	MoveAccepted = "accepted"
	MoveRejected = "rejected"

	PhaseMovedAway = "moved_away"
	PhaseOverlap   = "overlap"
)

// MapCollector - метрики активности карты.
// Все методы безопасны для nil: карта без коллектора просто ничего не пишет.
type MapCollector struct {
	gatherer prometheus.Gatherer

	Moves              *prometheus.CounterVec
	EventsDispatched   *prometheus.CounterVec
	Pickups            prometheus.Counter
	EntitiesDestroyed  prometheus.Counter
	Cells              prometheus.Gauge
	PathfindingSeconds prometheus.Histogram
}

// NewMapCollector регистрирует метрики в reg (nil - регистр по умолчанию)
func NewMapCollector(reg prometheus.Registerer) (*MapCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	moves, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dungeon_moves_total",
		Help: "Move requests resolved by the map, by result.",
	}, []string{"result"}), "dungeon_moves_total")
	if err != nil {
		return nil, err
	}

	events, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dungeon_events_dispatched_total",
		Help: "Reactor callbacks executed by the event dispatcher, by phase.",
	}, []string{"phase"}), "dungeon_events_dispatched_total")
	if err != nil {
		return nil, err
	}

	pickups, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dungeon_pickups_total",
		Help: "Items transferred into the player's inventory.",
	}), "dungeon_pickups_total")
	if err != nil {
		return nil, err
	}

	destroyed, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dungeon_entities_destroyed_total",
		Help: "Entities removed from the map.",
	}), "dungeon_entities_destroyed_total")
	if err != nil {
		return nil, err
	}

	cells, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dungeon_cells",
		Help: "Number of occupied cells in the position index.",
	}), "dungeon_cells")
	if err != nil {
		return nil, err
	}

	pathfinding, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dungeon_pathfinding_duration_seconds",
		Help:    "Duration of next-step path searches.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	}), "dungeon_pathfinding_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &MapCollector{
		gatherer:           gatherer,
		Moves:              moves,
		EventsDispatched:   events,
		Pickups:            pickups,
		EntitiesDestroyed:  destroyed,
		Cells:              cells,
		PathfindingSeconds: pathfinding,
	}, nil
}

// ObserveMove считает принятый или отклонённый ход
func (c *MapCollector) ObserveMove(accepted bool) {
	if c == nil || c.Moves == nil {
		return
	}
	result := MoveRejected
	if accepted {
		result = MoveAccepted
	}
	c.Moves.WithLabelValues(result).Inc()
}

// AddEvents считает выполненные колбэки фазы
func (c *MapCollector) AddEvents(phase string, n int) {
	if c == nil || c.EventsDispatched == nil || n <= 0 {
		return
	}
	c.EventsDispatched.WithLabelValues(phase).Add(float64(n))
}

func (c *MapCollector) IncPickups() {
	if c == nil || c.Pickups == nil {
		return
	}
	c.Pickups.Inc()
}

func (c *MapCollector) IncDestroyed() {
	if c == nil || c.EntitiesDestroyed == nil {
		return
	}
	c.EntitiesDestroyed.Inc()
}

// SetCells обновляет количество занятых клеток
func (c *MapCollector) SetCells(n int) {
	if c == nil || c.Cells == nil {
		return
	}
	c.Cells.Set(float64(n))
}

// ObservePathfinding записывает длительность одного поиска пути
func (c *MapCollector) ObservePathfinding(d time.Duration) {
	if c == nil || c.PathfindingSeconds == nil {
		return
	}
	c.PathfindingSeconds.Observe(d.Seconds())
}

// Handler отдаёт /metrics
func (c *MapCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
