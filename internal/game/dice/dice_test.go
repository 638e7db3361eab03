package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/sgtnasty/battlers/internal/game/dice"
)

// scriptedSource returns a fixed sequence of draws, then repeats the last one.
type scriptedSource struct {
	draws []int
	i     int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.draws[s.i]
	if s.i < len(s.draws)-1 {
		s.i++
	}
	if v >= n {
		return n - 1
	}
	return v
}

func TestRoll3d6_SumsThreeDraws(t *testing.T) {
	// draws 0, 2, 5 → dice 1, 3, 6 → 10
	src := &scriptedSource{draws: []int{0, 2, 5}}
	assert.Equal(t, 10, dice.Roll3d6(src))
}

func TestRoll3d6_Range(t *testing.T) {
	src := dice.NewSeededSource(1)
	for i := 0; i < 1000; i++ {
		v := dice.Roll3d6(src)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 18)
	}
}

func TestRoll1d20_Range(t *testing.T) {
	src := dice.NewSeededSource(2)
	for i := 0; i < 1000; i++ {
		v := dice.Roll1d20(src)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 20)
	}
}

func TestRoll1d8_Range(t *testing.T) {
	src := dice.NewSeededSource(3)
	for i := 0; i < 1000; i++ {
		v := dice.Roll1d8(src)
		require.GreaterOrEqual(t, v, 1)
		require.LessOrEqual(t, v, 8)
	}
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_PanicsOnNonPositive(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(20), b.Intn(20), "draw %d diverged", i)
	}
}

func TestSeededSource_PanicsOnNonPositive(t *testing.T) {
	src := dice.NewSeededSource(7)
	assert.Panics(t, func() { src.Intn(-1) })
}

func TestLoggedSource_DelegatesUnchanged(t *testing.T) {
	inner := &scriptedSource{draws: []int{4, 0, 7}}
	src := dice.NewLoggedSource(inner, zap.NewNop())
	assert.Equal(t, 4, src.Intn(8))
	assert.Equal(t, 0, src.Intn(8))
	assert.Equal(t, 7, src.Intn(8))
}

func TestLoggedSource_Property_MatchesSeededSequence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		n := rapid.IntRange(1, 100).Draw(rt, "n")

		plain := dice.NewSeededSource(seed)
		logged := dice.NewLoggedSource(dice.NewSeededSource(seed), zap.NewNop())
		for i := 0; i < 20; i++ {
			assert.Equal(rt, plain.Intn(n), logged.Intn(n))
		}
	})
}
