package recommender

import "math/rand/v2"

// Sampler draws n candidate positions in [0, pool), with replacement.
// Recommendation calls are intentionally non-repeating, so the production
// sampler seeds itself freshly on every call; tests substitute a fixed
// sequence.
type Sampler interface {
	Sample(pool, n int) []int
}

// randomSampler is the production sampler.
type randomSampler struct{}

func (randomSampler) Sample(pool, n int) []int {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	out := make([]int, n)
	for i := range out {
		out[i] = rng.IntN(pool)
	}
	return out
}
