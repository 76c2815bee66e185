// package similarity scores candidate songs by how closely their artist's
// description matches a user's favorite artists, using term-weighted vectors
// over the artist description corpus.
package similarity

import (
	"math"
	"regexp"
	"strings"
)

// word tokens of at least two letters or digits
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Vector is a sparse term-weighted representation of a document, keyed by
// term.
type Vector map[string]float64

// Dot returns the linear-kernel product of two vectors.
func (v Vector) Dot(other Vector) float64 {
	// iterate the smaller side
	if len(other) < len(v) {
		v, other = other, v
	}
	var sum float64
	for term, w := range v {
		if w2, ok := other[term]; ok {
			sum += w * w2
		}
	}
	return sum
}

// Norm returns the euclidean length of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

func tokenize(doc string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(doc), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := stopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Vectorize fits term frequency-inverse document frequency weights over the
// corpus and returns one l2-normalized vector per document. Inverse document
// frequency is smoothed: idf(t) = ln((1+n)/(1+df(t))) + 1.
func Vectorize(docs []string) []Vector {
	n := len(docs)
	tokenized := make([][]string, n)
	df := make(map[string]int)
	for i, doc := range docs {
		tokenized[i] = tokenize(doc)
		seen := make(map[string]struct{})
		for _, tok := range tokenized[i] {
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				df[tok]++
			}
		}
	}

	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log(float64(1+n)/float64(1+count)) + 1
	}

	vectors := make([]Vector, n)
	for i, tokens := range tokenized {
		vec := make(Vector)
		for _, tok := range tokens {
			vec[tok] += idf[tok]
		}
		if norm := vec.Norm(); norm > 0 {
			for term := range vec {
				vec[term] /= norm
			}
		}
		vectors[i] = vec
	}
	return vectors
}
