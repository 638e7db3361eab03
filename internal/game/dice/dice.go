// Package dice provides the randomness abstraction and the fixed die rolls
// used by the battlers simulation: 3d6 for attribute generation, 1d20 for
// attack resolution, and 1d8 for damage.
package dice

// Source is the randomness provider for dice rolls. The caller owns the
// source and threads it explicitly into every roll, so the draw sequence is
// strictly ordered per call under a fixed seed.
type Source interface {
	// Intn returns a uniform random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Roll3d6 returns the sum of three uniform draws in [1,6].
//
// Postcondition: result is in [3, 18].
func Roll3d6(src Source) int {
	return rollDie(src, 6) + rollDie(src, 6) + rollDie(src, 6)
}

// Roll1d20 returns one uniform draw in [1,20].
func Roll1d20(src Source) int {
	return rollDie(src, 20)
}

// Roll1d8 returns one uniform draw in [1,8].
func Roll1d8(src Source) int {
	return rollDie(src, 8)
}

func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}
