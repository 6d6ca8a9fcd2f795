package quizsession

import "math/rand"

// Draw returns min(limit, len(questions)) distinct questions in random
// order. The input slice is left untouched. A nil rng uses the global
// source.
func Draw[T any](questions []T, limit int, rng *rand.Rand) []T {
	shuffled := make([]T, len(questions))
	copy(shuffled, questions)

	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}

	if limit > 0 && limit < len(shuffled) {
		shuffled = shuffled[:limit]
	}
	return shuffled
}
