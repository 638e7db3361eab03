// Package main provides the headless battlers binary: it builds a roster,
// runs the battle to completion, and logs the outcome.
package main

import (
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/sgtnasty/battlers/internal/config"
	"github.com/sgtnasty/battlers/internal/game/battle"
	"github.com/sgtnasty/battlers/internal/game/dice"
	"github.com/sgtnasty/battlers/internal/game/roster"
	"github.com/sgtnasty/battlers/internal/observability"
)

func main() {
	start := time.Now()

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

	src := newSource(cfg.Simulation, logger)

	combatants, err := buildRoster(cfg.Simulation, *rosterPath, *players, src)
	if err != nil {
		logger.Fatal("building roster", zap.Error(err))
	}

	engine := battle.NewEngine(battle.Config{MaxTurns: cfg.Simulation.MaxTurns}, logger)
	for _, c := range combatants {
		logger.Info("combatant ready",
			zap.String("name", c.Name),
			zap.Int("attack", c.Attack.Curr),
			zap.Int("defense", c.Defense.Curr),
			zap.Int("armor", c.Armor.Curr),
			zap.Int("power", c.Power.Curr),
			zap.Int("speed", c.Speed.Curr),
			zap.Int("range", c.Range.Curr),
			zap.Float64("x", c.Loc.X),
			zap.Float64("y", c.Loc.Y),
		)
		engine.AddCombatant(c)
	}

	outcome := engine.Run(src)

	logger.Info("simulation complete",
		zap.String("outcome", outcome.String()),
		zap.Int("turns", outcome.Turns),
		zap.Int("survivors", outcome.Survivors),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// newSource builds the dice source from the simulation config: seeded for
// reproducible runs, crypto otherwise, always with debug-level roll logging.
func newSource(cfg config.SimulationConfig, logger *zap.Logger) dice.Source {
	var src dice.Source
	if cfg.Seed != 0 {
		logger.Info("using seeded random source", zap.Int64("seed", cfg.Seed))
		src = dice.NewSeededSource(cfg.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	return dice.NewLoggedSource(src, logger)
}

// buildRoster loads combatants from a roster file, or generates random ones
// bounded by the configured player cap.
func buildRoster(cfg config.SimulationConfig, path string, n int, src dice.Source) ([]*battle.Combatant, error) {
	if path != "" {
		return roster.Load(path)
	}
	if n < 2 {
		n = 2
	}
	if n > cfg.MaxPlayers {
		n = cfg.MaxPlayers
	}
	return roster.Generate(n, src, cfg.ArenaSize), nil
}
