// Package sim wraps the battle engine in a step-at-a-time state machine for
// paced or interactive drivers, with a bounded rolling log of battle events.
package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/sgtnasty/battlers/internal/game/battle"
	"github.com/sgtnasty/battlers/internal/game/dice"
)

// State is the runner's lifecycle phase.
type State int

const (
	StateSetup State = iota
	StateRunning
	StatePaused
	StateFinished
	StateQuit
)

// String returns a lowercase label for the state.
func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// BattleEvent is one log entry, tagged with the turn at which it occurred.
type BattleEvent struct {
	Turn    int
	Message string
	Kind    battle.EventKind
}

const (
	// DefaultMaxLogEntries caps the rolling battle log.
	DefaultMaxLogEntries = 50
	// DefaultTickRate is the pacing interval for auto-advancing drivers.
	DefaultTickRate = 500 * time.Millisecond
)

// Config holds the runner's tunables. Zero values fall back to the defaults.
type Config struct {
	// MaxLogEntries bounds the event log; the oldest entry is evicted first.
	MaxLogEntries int
	// TickRate is the suggested delay between auto-advanced steps. The
	// runner itself never blocks; pacing belongs to the driver.
	TickRate time.Duration
	// AutoAdvance is the initial auto-advance setting.
	AutoAdvance bool
}

// Runner drives a battle.Engine one turn at a time through the state machine
// Setup → Running ⇄ Paused → Finished, with Quit reachable from any state.
// Single-owner and synchronous: Step always returns immediately after at
// most one turn.
type Runner struct {
	state       State
	game        *battle.Engine
	log         []BattleEvent
	maxLog      int
	tickRate    time.Duration
	autoAdvance bool
}

// NewRunner wraps game with a fresh runner in the Setup state.
//
// Precondition: game must be non-nil.
func NewRunner(game *battle.Engine, cfg Config) *Runner {
	if cfg.MaxLogEntries < 1 {
		cfg.MaxLogEntries = DefaultMaxLogEntries
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	return &Runner{
		state:       StateSetup,
		game:        game,
		maxLog:      cfg.MaxLogEntries,
		tickRate:    cfg.TickRate,
		autoAdvance: cfg.AutoAdvance,
	}
}

// State returns the current lifecycle phase.
func (r *Runner) State() State { return r.state }

// CurrentTurn returns the engine's turn counter.
func (r *Runner) CurrentTurn() int { return r.game.Turns() }

// LiveCount returns the number of live combatants.
func (r *Runner) LiveCount() int { return r.game.LiveCount() }

// Winner returns the sole live combatant, or nil.
func (r *Runner) Winner() *battle.Combatant { return r.game.Winner() }

// TickRate returns the suggested pacing interval for auto-advance drivers.
func (r *Runner) TickRate() time.Duration { return r.tickRate }

// AutoAdvance reports whether the driver should step without user input.
func (r *Runner) AutoAdvance() bool { return r.autoAdvance }

// ToggleAutoAdvance flips the auto-advance setting.
func (r *Runner) ToggleAutoAdvance() { r.autoAdvance = !r.autoAdvance }

// Start transitions Setup → Running.
//
// Precondition: at least one combatant has been added to the engine.
func (r *Runner) Start() error {
	if r.state != StateSetup {
		return fmt.Errorf("cannot start battle from state %q", r.state)
	}
	if r.game.LiveCount() == 0 {
		return errors.New("cannot start battle with no combatants")
	}
	r.state = StateRunning
	r.record(battle.EventInfo, "Battle begins!")
	return nil
}

// Pause transitions Running → Paused; any other state is a no-op.
func (r *Runner) Pause() {
	if r.state == StateRunning {
		r.state = StatePaused
	}
}

// Resume transitions Paused → Running; any other state is a no-op.
func (r *Runner) Resume() {
	if r.state == StatePaused {
		r.state = StateRunning
	}
}

// TogglePause flips between Running and Paused.
func (r *Runner) TogglePause() {
	switch r.state {
	case StateRunning:
		r.Pause()
	case StatePaused:
		r.Resume()
	}
}

// Quit moves to the terminal Quit state from any state. No in-progress state
// needs unwinding; the driver simply stops calling Step.
func (r *Runner) Quit() {
	r.state = StateQuit
}

// ShouldQuit reports whether the driver should exit.
func (r *Runner) ShouldQuit() bool {
	return r.state == StateQuit
}

// Step executes at most one turn and reports whether the battle continues.
// The ≤1-survivor and turn-cap conditions are re-checked independently both
// before and after acting. The cap check here fires once the counter
// reaches the cap, one turn earlier than the headless loop's post-increment
// check.
func (r *Runner) Step(src dice.Source) bool {
	if r.state == StateFinished || r.state == StateQuit {
		return false
	}

	if r.game.LiveCount() <= 1 {
		r.finish()
		return false
	}
	if r.game.Turns() >= r.game.MaxTurns() {
		r.record(battle.EventInfo,
			fmt.Sprintf("Battle reached maximum turns: %d", r.game.MaxTurns()))
		r.finish()
		return false
	}

	// Events carry the turn number at which they occurred, i.e. the counter
	// before the engine increments it.
	turn := r.game.Turns()
	result := r.game.ExecuteTurn(src)
	for _, ev := range result.Events {
		r.recordAt(turn, ev.Kind, ev.Message)
	}

	if r.game.LiveCount() <= 1 {
		r.finish()
		return false
	}
	return true
}

// Events returns the bounded battle log, oldest first.
func (r *Runner) Events() []BattleEvent {
	return r.log
}

func (r *Runner) finish() {
	r.state = StateFinished
	if w := r.game.Winner(); w != nil {
		r.record(battle.EventInfo,
			fmt.Sprintf("%s is the winner with %d/%d armor remaining!",
				w.Name, w.Armor.Curr, w.Armor.Base))
		return
	}
	r.record(battle.EventInfo, "Battle ended inconclusively")
}

func (r *Runner) record(kind battle.EventKind, message string) {
	r.recordAt(r.game.Turns(), kind, message)
}

func (r *Runner) recordAt(turn int, kind battle.EventKind, message string) {
	r.log = append(r.log, BattleEvent{Turn: turn, Message: message, Kind: kind})
	for len(r.log) > r.maxLog {
		r.log = r.log[1:]
	}
}
