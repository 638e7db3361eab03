package battle

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/sgtnasty/battlers/internal/game/dice"
)

// DefaultMaxTurns is the turn cap applied when Config.MaxTurns is unset.
const DefaultMaxTurns = 256

// Config holds the engine's tunable limits. An explicit struct rather than
// package-level constants, so tests can vary the cap.
type Config struct {
	// MaxTurns is the turn cap; once the counter exceeds it the battle ends
	// inconclusively. Values < 1 fall back to DefaultMaxTurns.
	MaxTurns int
}

// Outcome is the terminal result of a battle. Exactly one of two shapes:
// a single winner with remaining armor, or an inconclusive result (zero or
// several survivors, or turn cap exceeded). Both are valid terminations,
// never errors.
type Outcome struct {
	// Turns is the total number of turns elapsed.
	Turns int
	// Winner is the sole survivor, or nil when the battle was inconclusive.
	Winner *Combatant
	// Survivors is the live-combatant count at termination.
	Survivors int
	// CapExceeded is true when the battle was stopped by the turn cap.
	CapExceeded bool
}

// Conclusive reports whether the battle produced a single winner.
func (o Outcome) Conclusive() bool {
	return o.Winner != nil
}

// String returns a one-line summary of the outcome.
func (o Outcome) String() string {
	if o.Winner != nil {
		return fmt.Sprintf("%s wins with %d/%d armor after %d turns",
			o.Winner.Name, o.Winner.Armor.Curr, o.Winner.Armor.Base, o.Turns)
	}
	if o.CapExceeded {
		return fmt.Sprintf("inconclusive: battle too long (%d turns, %d survivors)",
			o.Turns, o.Survivors)
	}
	return fmt.Sprintf("inconclusive: %d survivors after %d turns", o.Survivors, o.Turns)
}

// Engine owns the ordered collection of live combatants and the turn
// protocol. The front of the collection is the next combatant to act; after
// acting it rotates to the back. Dead combatants are removed the instant the
// damage that killed them is applied, never left for a later turn.
//
// Engine is single-owner and not safe for concurrent use; the simulation is
// synchronous by design.
type Engine struct {
	cfg     Config
	logger  *zap.Logger
	turns   int
	players []*Combatant
}

// NewEngine creates an engine with the given limits. A nil logger disables
// logging.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if cfg.MaxTurns < 1 {
		cfg.MaxTurns = DefaultMaxTurns
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// AddCombatant appends c to the back of the rotation order.
//
// Precondition: c must be non-nil.
func (e *Engine) AddCombatant(c *Combatant) {
	e.players = append(e.players, c)
}

// Combatants returns the live combatants in current rotation order.
func (e *Engine) Combatants() []*Combatant {
	return e.players
}

// LiveCount returns the number of live combatants.
func (e *Engine) LiveCount() int {
	return len(e.players)
}

// Turns returns the number of turns executed so far.
func (e *Engine) Turns() int {
	return e.turns
}

// MaxTurns returns the configured turn cap.
func (e *Engine) MaxTurns() int {
	return e.cfg.MaxTurns
}

// Winner returns the sole live combatant, or nil when zero or several
// remain.
func (e *Engine) Winner() *Combatant {
	if len(e.players) == 1 {
		return e.players[0]
	}
	return nil
}

// ExecuteTurn runs exactly one turn for the combatant at the front of the
// rotation: acquire the nearest target, then either close distance or
// resolve an attack, then rotate to the back and increment the turn counter.
// The active combatant is removed from the collection while acting, so the
// nearest-target scan addresses the remaining pool by index.
//
// Precondition: at least two live combatants. Panics otherwise; callers
// check LiveCount first.
// Postcondition: Turns() has incremented by one; a killed target has been
// removed from the collection.
func (e *Engine) ExecuteTurn(src dice.Source) TurnResult {
	if len(e.players) < 2 {
		panic("battle: ExecuteTurn requires at least two live combatants")
	}

	active := e.players[0]
	pool := e.players[1:]

	idx := nearestIndex(active, pool)
	if idx < 0 {
		// Unreachable while the live-count precondition holds; a failed scan
		// here is a defect in the scan itself.
		panic("battle: nearest-target scan found no candidate among live combatants")
	}
	target := pool[idx]

	result := TurnResult{Actor: active.Name, Target: target.Name}

	if active.InRange(target.Loc) {
		result.add(EventAttack, fmt.Sprintf("%s is in range of %s", active.Name, target.Name))
		if ResolveAttack(active, target, src) {
			damage := ResolveDamage(active, target, src)
			result.add(EventHit, fmt.Sprintf("%s hit %s for %d damage", active.Name, target.Name, damage))
			if target.IsDead() {
				result.add(EventDeath, fmt.Sprintf("%s defeated %s", active.Name, target.Name))
				pool = append(pool[:idx], pool[idx+1:]...)
			}
		} else {
			result.add(EventMiss, fmt.Sprintf("%s missed", active.Name))
		}
	} else {
		distance := active.Loc.Distance(target.Loc)
		result.add(EventMovement, fmt.Sprintf("%s moves towards %s (distance: %.1f)",
			active.Name, target.Name, distance))
		active.MoveTowards(target.Loc)
	}

	e.players = append(pool, active)
	e.turns++
	e.logTurn(result)
	return result
}

// Run executes turns until a single survivor remains, the collection
// empties, or the turn counter exceeds the cap. One live combatant at entry
// wins immediately with zero turns executed.
//
// Postcondition: the returned Outcome has either a Winner or
// Survivors != 1.
func (e *Engine) Run(src dice.Source) Outcome {
	for len(e.players) > 1 {
		e.ExecuteTurn(src)
		if len(e.players) <= 1 {
			break
		}
		if e.turns > e.cfg.MaxTurns {
			e.logger.Warn("battle is taking too many turns", zap.Int("turns", e.turns))
			return e.outcome(true)
		}
	}
	return e.outcome(false)
}

func (e *Engine) outcome(capExceeded bool) Outcome {
	out := Outcome{
		Turns:       e.turns,
		Survivors:   len(e.players),
		CapExceeded: capExceeded,
	}
	if !capExceeded {
		out.Winner = e.Winner()
	}
	if out.Winner != nil {
		e.logger.Info("battle over",
			zap.String("winner", out.Winner.Name),
			zap.Int("armor", out.Winner.Armor.Curr),
			zap.Int("turns", out.Turns),
		)
	} else {
		e.logger.Warn("battle ended inconclusively",
			zap.Int("survivors", out.Survivors),
			zap.Int("turns", out.Turns),
		)
	}
	return out
}

func (e *Engine) logTurn(result TurnResult) {
	for _, ev := range result.Events {
		switch ev.Kind {
		case EventDeath:
			e.logger.Warn(ev.Message, zap.Int("turn", e.turns))
		default:
			e.logger.Info(ev.Message,
				zap.Int("turn", e.turns),
				zap.String("kind", ev.Kind.String()),
			)
		}
	}
}

// nearestIndex returns the index into pool of the combatant closest to
// source, excluding source itself by name; ties go to the first candidate in
// scan order. Returns -1 when pool holds no valid candidate.
func nearestIndex(source *Combatant, pool []*Combatant) int {
	minDistance := math.MaxFloat64
	target := -1
	for i, c := range pool {
		if c.Name == source.Name {
			continue
		}
		distance := source.Loc.Distance(c.Loc)
		if distance < minDistance {
			minDistance = distance
			target = i
		}
	}
	return target
}
