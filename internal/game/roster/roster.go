// Package roster loads combatant definitions from YAML files and generates
// randomized rosters for unconfigured battles.
package roster

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/sgtnasty/battlers/internal/game/battle"
	"github.com/sgtnasty/battlers/internal/game/dice"
)

// LocationSpec is the YAML representation of a starting location.
type LocationSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// PlayerSpec is the YAML representation of one combatant. Supplied values
// become both the base and current attribute values, bypassing
// randomization.
type PlayerSpec struct {
	Name    string       `yaml:"name"`
	Attack  int          `yaml:"attack"`
	Defense int          `yaml:"defense"`
	Armor   int          `yaml:"armor"`
	Power   int          `yaml:"power"`
	Speed   int          `yaml:"speed"`
	Range   int          `yaml:"range"`
	Loc     LocationSpec `yaml:"loc"`
}

// Validate checks the spec's invariants.
//
// Postcondition: Returns nil iff Name is non-empty and all six attributes
// are non-negative.
func (s PlayerSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("roster: player name must not be empty")
	}
	for _, a := range []struct {
		kind  battle.AttributeKind
		value int
	}{
		{battle.Attack, s.Attack},
		{battle.Defense, s.Defense},
		{battle.Armor, s.Armor},
		{battle.Power, s.Power},
		{battle.Speed, s.Speed},
		{battle.Range, s.Range},
	} {
		if a.value < 0 {
			return fmt.Errorf("roster: player %q: %s must not be negative, got %d",
				s.Name, a.kind, a.value)
		}
	}
	return nil
}

// Combatant converts the spec into a live combatant by direct field
// assignment.
//
// Postcondition: every attribute has Base == Curr == the supplied value.
func (s PlayerSpec) Combatant() *battle.Combatant {
	c := battle.NewCombatant(s.Name)
	c.Attack.Set(s.Attack)
	c.Defense.Set(s.Defense)
	c.Armor.Set(s.Armor)
	c.Power.Set(s.Power)
	c.Speed.Set(s.Speed)
	c.Range.Set(s.Range)
	c.Loc = battle.Location{X: s.Loc.X, Y: s.Loc.Y, Z: s.Loc.Z}
	return c
}

// SpecFor is the inverse of Combatant: it captures c's name, base attribute
// values, and location as a spec.
func SpecFor(c *battle.Combatant) PlayerSpec {
	return PlayerSpec{
		Name:    c.Name,
		Attack:  c.Attack.Base,
		Defense: c.Defense.Base,
		Armor:   c.Armor.Base,
		Power:   c.Power.Base,
		Speed:   c.Speed.Base,
		Range:   c.Range.Base,
		Loc:     LocationSpec{X: c.Loc.X, Y: c.Loc.Y, Z: c.Loc.Z},
	}
}

// File is the top-level YAML structure of a roster file.
type File struct {
	Players []PlayerSpec `yaml:"players"`
}

// Validate checks every player spec and requires at least one.
func (f *File) Validate() error {
	if len(f.Players) == 0 {
		return fmt.Errorf("roster: file defines no players")
	}
	for _, p := range f.Players {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ParseFile parses and validates a roster from YAML bytes.
func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing roster YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads and validates a roster YAML file. Errors name the source
// path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster file %s: %w", path, err)
	}
	f, err := ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("roster file %s: %w", path, err)
	}
	return f, nil
}

// Load reads a roster file and converts every spec into a combatant, in file
// order.
func Load(path string) ([]*battle.Combatant, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	combatants := make([]*battle.Combatant, 0, len(f.Players))
	for _, p := range f.Players {
		combatants = append(combatants, p.Combatant())
	}
	return combatants, nil
}

// Generate creates n fully randomized combatants with generated names,
// placed inside an arena of the given per-axis size.
//
// Precondition: n >= 0; arena > 0.
func Generate(n int, src dice.Source, arena int) []*battle.Combatant {
	combatants := make([]*battle.Combatant, 0, n)
	for i := 0; i < n; i++ {
		c := battle.NewCombatant(generateName())
		c.Randomize(src, arena)
		combatants = append(combatants, c)
	}
	return combatants
}

// generateName produces a unique combatant name from a fresh UUID.
func generateName() string {
	return "battler-" + uuid.NewString()[:8]
}
