// Package labelnoise deterministically perturbs which choice counts as
// ground truth, for robustness testing against label corruption.
package labelnoise

import (
	"waver/internal/rng"
)

// seedOffset separates the noise stream from the shuffle streams so noise
// decisions never correlate with shuffle permutations for the same question.
const seedOffset = 9973

// Resolve returns the (possibly corrupted) ground-truth choice index for a
// question. The same question, seed, and percentage always yield the same
// decision. noisePct is a percentage in [0, 100]; at 100 with more than one
// choice the result is always a non-original index.
func Resolve(originalIndex int, noisePct float64, numChoices int, seed int64, questionID string) int {
	if noisePct <= 0 || numChoices <= 1 {
		return originalIndex
	}
	stream := rng.NewStream(rng.CombineSeed(seed, rng.HashString(questionID), seedOffset))
	if stream.Float64()*100 >= noisePct {
		return originalIndex
	}
	// Uniform over the numChoices-1 alternatives, skipping the original.
	alternative := int(stream.Float64() * float64(numChoices-1))
	if alternative >= originalIndex {
		alternative++
	}
	return alternative
}
