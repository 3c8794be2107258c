package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dungeon-sim/internal/domain"
	"dungeon-sim/internal/engine"
	"dungeon-sim/internal/entities"
	"dungeon-sim/internal/logic"
	"dungeon-sim/internal/observability"
	"dungeon-sim/internal/version"
	"dungeon-sim/pkg/dungeon"
	"dungeon-sim/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		configPath  string
		seed        int64
		ticks       int
		metricsAddr string
	)
	flag.StringVar(&configPath, "config", "", "Path to YAML config")
	flag.Int64Var(&seed, "seed", 0, "World seed (0 for random)")
	flag.IntVar(&ticks, "ticks", 0, "Number of ticks to simulate (0 keeps config value)")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "Address for the /metrics endpoint")
	flag.Parse()

	cfg := engine.NewConfig()
	if configPath != "" {
		loaded, err := engine.LoadConfig(configPath)
		if err != nil {
			logger.Log.Fatal("Failed to load config: ", err)
		}
		cfg = loaded
	}
	// Флаги перекрывают файл
	if seed != 0 {
		cfg.Seed = seed
	}
	if ticks > 0 {
		cfg.Ticks = ticks
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	logger.Log.WithFields(version.Fields(cfg.Seed, cfg.Ticks)).Info("Starting dungeon simulation...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Метрики
	registry := prometheus.NewRegistry()
	collector, err := observability.NewMapCollector(registry)
	if err != nil {
		logger.Log.Fatal("Failed to register metrics: ", err)
	}
	srv := startMetrics(cfg.MetricsAddr, collector)

	// 3. Уровень
	rng := rand.New(rand.NewSource(cfg.Seed))
	level, start := dungeon.NewLevel(entities.NewFactory(cfg.Seed), rng).
		WithRooms(dungeon.MaxRooms).
		PlacePlayer().
		PlacePortals("blue").
		PlaceCircuit(logic.RuleOr).
		PlaceSwamp(3, 3).
		SpawnEnemy(domain.KindMercenary, 2).
		SpawnEnemy(domain.KindZombieSpawner, 1).
		SpawnItem(domain.KindTreasure, 3).
		SpawnItem(domain.KindBomb, 1).
		Build()

	game := engine.NewGame(cfg, level, engine.WithMetrics(collector))
	logger.Log.WithFields(logrus.Fields{
		"entities": len(level),
		"start":    start,
	}).Info("Level built")

	// 4. Симуляция: игрок бродит случайно
	reports, err := game.Run(ctx, cfg.Ticks, func(int, *engine.Game) domain.Direction {
		return domain.CardinalDirections[rng.Intn(len(domain.CardinalDirections))]
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.Error("Simulation stopped: ", err)
	}

	summary := logrus.Fields{
		"ticks":    len(reports),
		"entities": len(game.Map.AllEntities()),
		"spawners": game.Map.SpawnerCount(),
	}
	if p := entities.PlayerOf(game.Map.Player()); p != nil {
		summary["inventory"] = len(p.Inventory)
		summary["treasure"] = p.TreasureCount
		summary["encounters"] = p.Encounters
	}
	logger.Log.WithFields(summary).Info("Simulation finished")
	logger.Log.WithField("schedule", game.Map.Turns().Schedule()).Debug("Turn schedule")

	// 5. Метрики остаются доступны до сигнала
	if srv != nil {
		<-ctx.Done()
		logger.Log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Metrics server shutdown error: ", err)
		}
	}

	logger.Log.Info("Done.")
}

func startMetrics(addr string, collector *observability.MapCollector) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Log.Infof("Metrics listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Metrics server error: ", err)
		}
	}()
	return srv
}
