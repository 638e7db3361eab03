// Package battle implements the battlers combat model: attributes with
// derived bonuses, 3D locations, combatants, and the turn-based engine that
// fights them to a single survivor or a turn cap.
package battle

import (
	"math"

	"github.com/google/uuid"

	"github.com/sgtnasty/battlers/internal/game/dice"
)

// DefaultArenaSize is the per-axis bound for randomized locations.
const DefaultArenaSize = 60

// AttributeKind names one of the six combatant statistics.
type AttributeKind int

const (
	Attack AttributeKind = iota
	Defense
	Armor
	Power
	Speed
	Range
)

// String returns the attribute's display name.
func (k AttributeKind) String() string {
	switch k {
	case Attack:
		return "attack"
	case Defense:
		return "defense"
	case Armor:
		return "armor"
	case Power:
		return "power"
	case Speed:
		return "speed"
	case Range:
		return "range"
	default:
		return "unknown"
	}
}

// Attribute is a single combatant statistic with a base and a current value.
//
// Invariant: Curr == Base immediately after Set or Randomize; only combat
// damage (on Armor) mutates Curr afterwards.
type Attribute struct {
	Kind AttributeKind
	Base int
	Curr int
}

// Set assigns value to both Base and Curr.
func (a *Attribute) Set(value int) {
	a.Base = value
	a.Curr = a.Base
}

// Bonus returns the derived modifier: (Curr - 10.5) / 2, truncated toward
// zero. The truncation is intentional: Curr=10 yields 0, Curr=8 yields -1,
// Curr=20 yields 4.
func (a *Attribute) Bonus() int {
	return int((float64(a.Curr) - 10.5) / 2.0)
}

// Randomize sets Base and Curr to a fresh 3d6 roll.
//
// Postcondition: Curr == Base and both are in [3, 18].
func (a *Attribute) Randomize(src dice.Source) {
	a.Base = dice.Roll3d6(src)
	a.Curr = a.Base
}

// Location is a point in 3D space. Combat takes place on the z=0 plane;
// randomized locations always have Z == 0.
type Location struct {
	X float64
	Y float64
	Z float64
}

// Distance returns the Euclidean distance between l and target.
//
// Postcondition: Distance(l, l) == 0; Distance is symmetric.
func (l Location) Distance(target Location) float64 {
	dx := l.X - target.X
	dy := l.Y - target.Y
	dz := l.Z - target.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Randomize places the location at integer coordinates in [1, arena] on
// each of the x and y axes, with Z = 0.
//
// Precondition: arena > 0.
func (l *Location) Randomize(src dice.Source, arena int) {
	l.X = float64(src.Intn(arena) + 1)
	l.Y = float64(src.Intn(arena) + 1)
	l.Z = 0
}

// Combatant is a single participant in a battle: six attributes, a location,
// and an identity. Names are assumed unique within a battle; the nearest-
// target scan excludes the active combatant by name.
type Combatant struct {
	// ID is a unique identifier, independent of the display name.
	ID   string
	Name string

	Attack  Attribute
	Defense Attribute
	Armor   Attribute
	Power   Attribute
	Speed   Attribute
	Range   Attribute

	Loc Location
}

// NewCombatant creates a combatant with the given name, zeroed attributes,
// and a fresh UUID.
func NewCombatant(name string) *Combatant {
	return &Combatant{
		ID:      uuid.NewString(),
		Name:    name,
		Attack:  Attribute{Kind: Attack},
		Defense: Attribute{Kind: Defense},
		Armor:   Attribute{Kind: Armor},
		Power:   Attribute{Kind: Power},
		Speed:   Attribute{Kind: Speed},
		Range:   Attribute{Kind: Range},
	}
}

// Randomize rolls all six attributes with 3d6 and places the combatant at a
// random location inside the arena.
func (c *Combatant) Randomize(src dice.Source, arena int) {
	c.Attack.Randomize(src)
	c.Defense.Randomize(src)
	c.Armor.Randomize(src)
	c.Power.Randomize(src)
	c.Speed.Randomize(src)
	c.Range.Randomize(src)
	c.Loc.Randomize(src, arena)
}

// MoveTowards advances the combatant up to Speed.Curr units along the
// straight line to target on the XY plane. When the target is already within
// one step (including distance zero) the position is unchanged; the
// combatant never overshoots. Z is never modified.
func (c *Combatant) MoveTowards(target Location) {
	distance := c.Loc.Distance(target)
	if distance <= float64(c.Speed.Curr) {
		return
	}
	step := float64(c.Speed.Curr)
	c.Loc.X += (target.X - c.Loc.X) / distance * step
	c.Loc.Y += (target.Y - c.Loc.Y) / distance * step
}

// InRange reports whether target is within the combatant's attack range,
// boundary inclusive.
func (c *Combatant) InRange(target Location) bool {
	return c.Loc.Distance(target) <= float64(c.Range.Curr)
}

// IsDead reports whether the combatant's armor has dropped below 1.
func (c *Combatant) IsDead() bool {
	return c.Armor.Curr < 1
}
