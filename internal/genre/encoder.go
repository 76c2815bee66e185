// package genre implements the indicator-vector encoding over the catalog's
// genre universe.
package genre

// Encoder maps genre sets to fixed-width indicator vectors. The universe is
// fitted once at catalog load and never changes afterwards, so an Encoder is
// safe for unrestricted concurrent use.
type Encoder struct {
	universe []string
	index    map[string]int
}

// NewEncoder fits an encoder to the given ordered genre universe.
func NewEncoder(universe []string) *Encoder {
	index := make(map[string]int, len(universe))
	for i, g := range universe {
		index[g] = i
	}
	return &Encoder{universe: universe, index: index}
}

// Universe returns the ordered genre universe the encoder was fitted to.
// Callers must not mutate the returned slice.
func (e *Encoder) Universe() []string {
	return e.universe
}

// Size returns the dimensionality of the indicator vectors.
func (e *Encoder) Size() int {
	return len(e.universe)
}

// Index returns the position of a genre in the universe, or -1 when the
// genre is unknown.
func (e *Encoder) Index(genre string) int {
	if i, ok := e.index[genre]; ok {
		return i
	}
	return -1
}

// Encode converts a genre set to an indicator vector. Position i is 1 iff
// universe[i] is in the input. Unknown genres are ignored, which keeps the
// encoder permissive when genres come from noisy external tags.
func (e *Encoder) Encode(genres []string) []uint8 {
	vec := make([]uint8, len(e.universe))
	for _, g := range genres {
		if i, ok := e.index[g]; ok {
			vec[i] = 1
		}
	}
	return vec
}

// Decode converts an indicator vector back to the genre list it flags, in
// universe order.
func (e *Encoder) Decode(vec []uint8) []string {
	var genres []string
	for i, bit := range vec {
		if i >= len(e.universe) {
			break
		}
		if bit == 1 {
			genres = append(genres, e.universe[i])
		}
	}
	return genres
}
