package genre

// Age brackets keyed by the minimum age of the bracket, derived from US
// favorite-genre survey data.
var byAgeBracket = map[int][]string{
	19: {"pop", "rap", "rock"},
	24: {"pop", "rap", "rock"},
	34: {"pop", "rock", "rap", "country", "traditional"},
	44: {"pop", "rock", "rap", "country", "traditional"},
	54: {"rock", "pop", "country", "traditional"},
	64: {"rock", "country", "traditional"},
	65: {"rock", "country", "traditional"},
}

// bracket keys in ascending order; lookup code relies on this.
var ageBrackets = []int{19, 24, 34, 44, 54, 64, 65}

// ForAge returns the genre list for the greatest bracket key at or below the
// given age. Ages below the lowest key fall into the lowest bracket.
func ForAge(age int) []string {
	bracket := ageBrackets[0]
	for _, key := range ageBrackets {
		if age >= key {
			bracket = key
		}
	}
	genres := byAgeBracket[bracket]
	out := make([]string, len(genres))
	copy(out, genres)
	return out
}
