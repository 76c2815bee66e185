package search

// Sequence similarity in the style of Ratcliff/Obershelp: recursively find
// the longest contiguous matching block and count matched characters on both
// sides of it. The ratio is 2*M/T where M is the total matched length and T
// the combined length of both strings.

type matcher struct {
	a, b []rune
	b2j  map[rune][]int
}

func newMatcher(a, b string) *matcher {
	m := &matcher{a: []rune(a), b: []rune(b)}
	m.b2j = make(map[rune][]int)
	for j, ch := range m.b {
		m.b2j[ch] = append(m.b2j[ch], j)
	}
	return m
}

type block struct {
	aIdx, bIdx, size int
}

// longestMatch finds the longest matching block within a[alo:ahi] and
// b[blo:bhi], preferring the earliest in a, then in b, on ties.
func (m *matcher) longestMatch(alo, ahi, blo, bhi int) block {
	best := block{aIdx: alo, bIdx: blo}
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newJ2len := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > best.size {
				best = block{aIdx: i - k + 1, bIdx: j - k + 1, size: k}
			}
		}
		j2len = newJ2len
	}
	return best
}

// matchingBlocks walks the match tree iteratively, returning blocks in
// ascending order.
func (m *matcher) matchingBlocks() []block {
	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var matched []block

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		best := m.longestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if best.size == 0 {
			continue
		}
		matched = append(matched, best)
		if s.alo < best.aIdx && s.blo < best.bIdx {
			queue = append(queue, span{s.alo, best.aIdx, s.blo, best.bIdx})
		}
		if best.aIdx+best.size < s.ahi && best.bIdx+best.size < s.bhi {
			queue = append(queue, span{best.aIdx + best.size, s.ahi, best.bIdx + best.size, s.bhi})
		}
	}
	return matched
}

// Ratio returns the similarity of two strings in [0, 1]. 1.0 means
// identical; order of arguments does not matter.
func Ratio(a, b string) float64 {
	m := newMatcher(a, b)
	var matches int
	for _, blk := range m.matchingBlocks() {
		matches += blk.size
	}
	return calculateRatio(matches, len(m.a)+len(m.b))
}

// upperBound is a cheap overestimate of Ratio used to skip hopeless
// candidates before running the full block search.
func upperBound(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	shorter := la
	if lb < la {
		shorter = lb
	}
	return calculateRatio(shorter, la+lb)
}

func calculateRatio(matches, length int) float64 {
	if length == 0 {
		return 1.0
	}
	return 2.0 * float64(matches) / float64(length)
}
