// Package main provides the paced battlers binary: it drives the battle one
// turn per tick through the interactive runner, so a battle can be watched
// as it unfolds. Ctrl-C quits cleanly between turns.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sgtnasty/battlers/internal/config"
	"github.com/sgtnasty/battlers/internal/game/battle"
	"github.com/sgtnasty/battlers/internal/game/dice"
	"github.com/sgtnasty/battlers/internal/game/roster"
	"github.com/sgtnasty/battlers/internal/game/sim"
	"github.com/sgtnasty/battlers/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	rosterPath := flag.String("roster", "", "path to roster YAML file; empty = randomized combatants")
	players := flag.Int("players", 2, "number of randomized combatants when no roster is given")
	seed := flag.Int64("seed", 0, "random seed override; 0 keeps the configured value")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var src dice.Source
	if cfg.Simulation.Seed != 0 {
		src = dice.NewSeededSource(cfg.Simulation.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	src = dice.NewLoggedSource(src, logger)

	var combatants []*battle.Combatant
	if *rosterPath != "" {
		combatants, err = roster.Load(*rosterPath)
		if err != nil {
			logger.Fatal("loading roster", zap.Error(err))
		}
	} else {
		n := *players
		if n < 2 {
			n = 2
		}
		if n > cfg.Simulation.MaxPlayers {
			n = cfg.Simulation.MaxPlayers
		}
		combatants = roster.Generate(n, src, cfg.Simulation.ArenaSize)
	}

	// The engine logs every turn event as it happens; the runner paces the
	// battle and keeps the bounded log for the final summary.
	engine := battle.NewEngine(battle.Config{MaxTurns: cfg.Simulation.MaxTurns}, logger)
	for _, c := range combatants {
		engine.AddCombatant(c)
	}

	runner := sim.NewRunner(engine, sim.Config{
		MaxLogEntries: cfg.Stepper.MaxLogEntries,
		TickRate:      cfg.Stepper.TickRate,
		AutoAdvance:   true,
	})
	if err := runner.Start(); err != nil {
		logger.Fatal("starting battle", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(runner.TickRate())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			runner.Quit()
			logger.Info("battle interrupted",
				zap.Int("turn", runner.CurrentTurn()),
				zap.Int("live", runner.LiveCount()),
			)
			return
		case <-ticker.C:
			if runner.Step(src) {
				continue
			}
			if w := runner.Winner(); w != nil {
				logger.Info("battle finished",
					zap.String("winner", w.Name),
					zap.Int("armor", w.Armor.Curr),
					zap.Int("armor_base", w.Armor.Base),
					zap.Int("turns", runner.CurrentTurn()),
				)
			} else {
				logger.Warn("battle finished inconclusively",
					zap.Int("turns", runner.CurrentTurn()),
					zap.Int("survivors", runner.LiveCount()),
				)
			}
			return
		}
	}
}
