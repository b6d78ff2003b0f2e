package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lasercut/planetoids/internal/config"
	"github.com/lasercut/planetoids/internal/core/event"
	coresys "github.com/lasercut/planetoids/internal/core/system"
	"github.com/lasercut/planetoids/internal/data"
	"github.com/lasercut/planetoids/internal/physics"
	"github.com/lasercut/planetoids/internal/planetoid"
	"github.com/lasercut/planetoids/internal/record"
	"github.com/lasercut/planetoids/internal/scripting"
	"github.com/lasercut/planetoids/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             planetoids  v0.1.0            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation loop ──────────────────────────────────────────

func run() error {
	cfgPath := "config/planetoids.toml"
	if p := os.Getenv("PLANETOIDS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	printSection("data")

	table, err := data.LoadPlanetoidTable(cfg.Spawn.TableFile)
	if err != nil {
		return fmt.Errorf("load planetoid table: %w", err)
	}
	printStat("planetoid templates", table.Count())

	luaEngine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("lua scripts loaded")

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	space := physics.NewSpace(cfg.Physics, log)
	bus := event.NewBus()

	opts := planetoid.OptionsFromConfig(cfg)
	opts.Bus = bus
	opts.Rand = rng
	opts.Impulse = func(ctx planetoid.ImpulseContext) float64 {
		return luaEngine.CalcSplitImpulse(scripting.ImpulseContext{
			Power: ctx.Power,
			MassA: ctx.MassA,
			MassB: ctx.MassB,
			AreaA: ctx.AreaA,
			AreaB: ctx.AreaB,
		})
	}
	mgr := planetoid.NewManager(physics.Adapter{Space: space}, opts, log)
	mgr.EnteredPlay.AddListener(func() {
		log.Debug("planetoids in play", zap.Int("active", mgr.ActiveCount()))
	})
	mgr.LeftPlay.AddListener(func() {
		log.Debug("planetoids in play", zap.Int("active", mgr.ActiveCount()))
	})
	fmt.Println()

	arena := cfg.Arena.Rect()
	runner := coresys.NewRunner()
	runner.Register(system.NewLaserSystem(mgr, cfg.Laser, cfg.Slicing.LaserRange, arena, rng, log))
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewPhysicsSystem(space))
	runner.Register(system.NewSpawnerSystem(mgr, table, luaEngine, cfg.Spawn.TargetActive, cfg.Spawn.WaveInterval, rng, log))
	runner.Register(system.NewFadeSystem(mgr))
	runner.Register(system.NewBoundsSystem(mgr, arena))
	runner.Register(system.NewCleanupSystem(mgr.World(), log))
	runner.Register(system.NewNotifySystem(mgr))
	stats := system.NewStatsSystem(bus, mgr, cfg.Logging.StatsEvery, log)
	runner.Register(stats)

	if cfg.Record.Enabled {
		rec, err := record.Create(cfg.Record.Path)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Error("close recording", zap.Error(err))
			}
			log.Info("recording saved", zap.String("path", cfg.Record.Path), zap.Int("frames", rec.Frames()))
		}()
		runner.Register(system.NewRecordSystem(rec, mgr, cfg.Record.Every, log))
		printOK("recording to " + cfg.Record.Path)
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("arena [%g,%g]x[%g,%g]", arena.Min.X(), arena.Max.X(), arena.Min.Y(), arena.Max.Y()))
	printReady(fmt.Sprintf("simulation loop started (tick: %s, seed: %d)", cfg.Simulation.TickRate, seed))
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Simulation.TickRate)
			if cfg.Simulation.MaxTicks > 0 && runner.Ticks() >= cfg.Simulation.MaxTicks {
				stats.Report()
				log.Info("tick limit reached", zap.Uint64("ticks", runner.Ticks()))
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			stats.Report()
			n := mgr.ClearAll()
			mgr.FlushSignals()
			log.Info("simulation stopped",
				zap.Int("cleared", n),
				zap.Int("bodies", space.BodyCount()),
				zap.Uint64("ticks", runner.Ticks()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
