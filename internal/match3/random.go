package match3

import "math/rand"

// Random is the source used to generate tile types and shuffles.
// It can be replaced in tests with a deterministic sequence.
type Random interface {
	// Intn returns a random int in [0, n).
	Intn(n int) int
}

// NewRandom returns a Random seeded with the given value.
func NewRandom(seed int64) Random {
	return rand.New(rand.NewSource(seed))
}
