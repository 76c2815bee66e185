package similarity

import "github.com/spindle-fm/spindle/internal/models"

// exactNameBonus rewards a candidate whose display name is literally one of
// the user's favorite artists.
const exactNameBonus = 1.0

// Ranker holds one description vector per artist row, built once at catalog
// load. Safe for concurrent use.
type Ranker struct {
	names   []string
	vectors []Vector
}

// NewRanker vectorizes every artist description. Vectors are indexed 1:1
// with artist rows.
func NewRanker(artists []models.Artist) *Ranker {
	docs := make([]string, len(artists))
	names := make([]string, len(artists))
	for i, artist := range artists {
		docs[i] = artist.Description
		names[i] = artist.Name
	}
	return &Ranker{names: names, vectors: Vectorize(docs)}
}

// Score rates a candidate artist against the user's favorite artist rows:
// the sum of linear-kernel products between the candidate's and each
// favorite's vector, plus a fixed bonus when the candidate's name exactly
// matches a favorite's display name. Out-of-range candidates score zero.
func (r *Ranker) Score(candidate int, favorites []int) float64 {
	if candidate < 0 || candidate >= len(r.vectors) {
		return 0
	}
	var score float64
	var isFavorite bool
	for _, fav := range favorites {
		if fav < 0 || fav >= len(r.vectors) {
			continue
		}
		score += r.vectors[candidate].Dot(r.vectors[fav])
		if r.names[candidate] == r.names[fav] {
			isFavorite = true
		}
	}
	if isFavorite {
		score += exactNameBonus
	}
	return score
}
