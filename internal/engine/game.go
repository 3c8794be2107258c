package engine

import (
	"context"

	"dungeon-sim/internal/domain"
	"dungeon-sim/pkg/logger"

	"github.com/sirupsen/logrus"
)

// PlayerInput решает, куда пойдёт игрок в тике. DirNone - пропуск хода.
type PlayerInput func(tick int, g *Game) domain.Direction

// TickReport - итог одного тика
type TickReport struct {
	Tick        int  `json:"tick"`
	PlayerMoved bool `json:"playerMoved"`
	Actions     int  `json:"actions"`
	Entities    int  `json:"entities"`
}

// Game - тиковый цикл поверх карты: сначала ход игрока, потом расписание
type Game struct {
	Map *GameMap
	cfg Config
}

// NewGame инициализирует карту начальной расстановкой
func NewGame(cfg Config, entities []*domain.Entity, opts ...Option) *Game {
	m := NewGameMap(cfg, opts...)
	m.Initialize(entities)
	return &Game{Map: m, cfg: cfg}
}

// Tick выполняет один тик симуляции
func (g *Game) Tick(dir domain.Direction) TickReport {
	report := TickReport{}

	if player := g.Map.Player(); player != nil && dir != domain.DirNone {
		report.PlayerMoved = g.Map.MoveDir(player, dir)
	}

	report.Actions = g.Map.Turns().RunTick()
	report.Tick = g.Map.Turns().Tick()
	report.Entities = len(g.Map.AllEntities())

	logger.Log.WithFields(logrus.Fields{
		"component":    "game",
		"tick":         report.Tick,
		"player_moved": report.PlayerMoved,
		"actions":      report.Actions,
		"entities":     report.Entities,
	}).Debug("Tick processed")

	return report
}

// Run крутит ticks тиков или пока не отменён ctx
func (g *Game) Run(ctx context.Context, ticks int, input PlayerInput) ([]TickReport, error) {
	reports := make([]TickReport, 0, ticks)
	for i := 1; i <= ticks; i++ {
		select {
		case <-ctx.Done():
			return reports, ctx.Err()
		default:
		}

		dir := domain.DirNone
		if input != nil {
			dir = input(i, g)
		}
		reports = append(reports, g.Tick(dir))
	}
	return reports, nil
}
