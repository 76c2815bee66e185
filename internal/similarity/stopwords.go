package similarity

import (
	_ "embed"
	"strings"
)

// Stop words cover both catalog languages: a generic english list and a
// persian list, combined into one set at init.

//go:embed stopwords_en.txt
var englishStopWords string

//go:embed stopwords_fa.txt
var persianStopWords string

var stopWords = buildStopSet(englishStopWords, persianStopWords)

func buildStopSet(lists ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, w := range strings.Fields(list) {
			set[w] = struct{}{}
		}
	}
	return set
}
