package roster_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/sgtnasty/battlers/internal/game/battle"
	"github.com/sgtnasty/battlers/internal/game/dice"
	"github.com/sgtnasty/battlers/internal/game/roster"
)

const sampleRoster = `
players:
  - name: Fred
    attack: 10
    defense: 12
    armor: 14
    power: 8
    speed: 16
    range: 6
    loc:
      x: 5.0
      y: 10.0
      z: 0.0
  - name: John
    attack: 11
    defense: 9
    armor: 13
    power: 15
    speed: 7
    range: 4
    loc:
      x: 40.0
      y: 40.0
      z: 0.0
`

func TestParseFile(t *testing.T) {
	f, err := roster.ParseFile([]byte(sampleRoster))
	require.NoError(t, err)
	require.Len(t, f.Players, 2)

	fred := f.Players[0]
	assert.Equal(t, "Fred", fred.Name)
	assert.Equal(t, 10, fred.Attack)
	assert.Equal(t, 12, fred.Defense)
	assert.Equal(t, 14, fred.Armor)
	assert.Equal(t, 8, fred.Power)
	assert.Equal(t, 16, fred.Speed)
	assert.Equal(t, 6, fred.Range)
	assert.Equal(t, 5.0, fred.Loc.X)
	assert.Equal(t, 10.0, fred.Loc.Y)
	assert.Zero(t, fred.Loc.Z)
}

func TestParseFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "players:\n  - name: [unclosed"},
		{"no players", "players: []"},
		{"empty name", "players:\n  - attack: 10"},
		{"negative attribute", "players:\n  - name: X\n    armor: -1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := roster.ParseFile([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_ErrorNamesPath(t *testing.T) {
	_, err := roster.LoadFile("does/not/exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does/not/exist.yaml")

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("players: []"), 0o644))
	_, err = roster.LoadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}

func TestLoad_ConvertsSpecsInFileOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRoster), 0o644))

	combatants, err := roster.Load(path)
	require.NoError(t, err)
	require.Len(t, combatants, 2)
	assert.Equal(t, "Fred", combatants[0].Name)
	assert.Equal(t, "John", combatants[1].Name)
	assert.Equal(t, 14, combatants[0].Armor.Base)
	assert.Equal(t, 14, combatants[0].Armor.Curr)
}

func TestSpec_CombatantRoundTrip(t *testing.T) {
	spec := roster.PlayerSpec{
		Name: "Test Player", Attack: 10, Defense: 12, Armor: 14,
		Power: 8, Speed: 16, Range: 6,
		Loc: roster.LocationSpec{X: 5, Y: 10, Z: 0},
	}

	c := spec.Combatant()
	assert.Equal(t, "Test Player", c.Name)
	assert.NotEmpty(t, c.ID)
	for _, a := range []battle.Attribute{c.Attack, c.Defense, c.Armor, c.Power, c.Speed, c.Range} {
		assert.Equal(t, a.Base, a.Curr)
	}

	assert.Equal(t, spec, roster.SpecFor(c))
}

func TestSpec_CombatantRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		stat := rapid.IntRange(0, 30)
		coord := rapid.Float64Range(-100, 100)
		spec := roster.PlayerSpec{
			Name:    rapid.StringMatching(`[a-zA-Z][a-zA-Z0-9 ]{0,20}`).Draw(rt, "name"),
			Attack:  stat.Draw(rt, "attack"),
			Defense: stat.Draw(rt, "defense"),
			Armor:   stat.Draw(rt, "armor"),
			Power:   stat.Draw(rt, "power"),
			Speed:   stat.Draw(rt, "speed"),
			Range:   stat.Draw(rt, "range"),
			Loc: roster.LocationSpec{
				X: coord.Draw(rt, "x"),
				Y: coord.Draw(rt, "y"),
				Z: coord.Draw(rt, "z"),
			},
		}
		assert.Equal(rt, spec, roster.SpecFor(spec.Combatant()))
	})
}

func TestGenerate(t *testing.T) {
	src := dice.NewSeededSource(9)
	combatants := roster.Generate(4, src, battle.DefaultArenaSize)
	require.Len(t, combatants, 4)

	seen := map[string]bool{}
	for _, c := range combatants {
		assert.NotEmpty(t, c.Name)
		assert.False(t, seen[c.Name], "duplicate name %q", c.Name)
		seen[c.Name] = true

		assert.GreaterOrEqual(t, c.Armor.Base, 3)
		assert.LessOrEqual(t, c.Armor.Base, 18)
		assert.GreaterOrEqual(t, c.Loc.X, 1.0)
		assert.LessOrEqual(t, c.Loc.X, 60.0)
	}

	assert.Empty(t, roster.Generate(0, src, battle.DefaultArenaSize))
}
