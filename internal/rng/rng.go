// Package rng provides the deterministic pseudo-random primitives the
// evaluation engine is built on: a stable 32-bit string hash, seed
// combination, a seedable float stream, and a Fisher-Yates shuffle.
// Identical seeds always produce identical sequences across runs and
// processes.
package rng

const (
	fnvOffsetBasis uint32 = 2166136261
	fnvPrime       uint32 = 16777619
)

// HashString returns a stable 32-bit FNV-1a fingerprint for a string.
func HashString(value string) uint32 {
	hash := fnvOffsetBasis
	for i := 0; i < len(value); i++ {
		hash ^= uint32(value[i])
		hash *= fnvPrime
	}
	return hash
}

// CombineSeed folds a caller seed, a question hash, and a stream offset into
// a non-zero 32-bit seed. A zero or negative caller seed still yields a
// usable seed.
func CombineSeed(seed int64, questionHash uint32, offset int64) uint32 {
	combined := (seed + int64(questionHash) + offset) % (1 << 32)
	if combined < 0 {
		combined = -combined
	}
	if combined == 0 {
		combined = 1
	}
	return uint32(combined)
}

// Stream is a mulberry32 pseudo-random generator producing floats in [0, 1).
type Stream struct {
	state uint32
}

// NewStream returns a stream seeded with the given 32-bit seed.
func NewStream(seed uint32) *Stream {
	return &Stream{state: seed}
}

// Float64 returns the next pseudo-random value in [0, 1).
func (s *Stream) Float64() float64 {
	s.state += 0x6D2B79F5
	z := s.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	return float64(z) / 4294967296.0
}

// IdentityPermutation returns [0..n-1].
func IdentityPermutation(n int) []int {
	permutation := make([]int, n)
	for i := range permutation {
		permutation[i] = i
	}
	return permutation
}

// ShufflePermutation returns a pseudo-random permutation of [0..n-1] using a
// Fisher-Yates shuffle driven by the stream.
func ShufflePermutation(n int, stream *Stream) []int {
	permutation := IdentityPermutation(n)
	for i := n - 1; i >= 1; i-- {
		j := int(stream.Float64() * float64(i+1))
		permutation[i], permutation[j] = permutation[j], permutation[i]
	}
	return permutation
}
