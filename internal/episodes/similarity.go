package episodes

// autojunkMinLen is the length of b from which popular elements are
// ignored when searching for matches.
const autojunkMinLen = 200

// Ratio returns the similarity of a and b as 2*M/T, where M is the number
// of characters in the matching blocks found by recursively taking the
// longest common substring, and T the total length of both strings.
// Results equal those of Python's difflib.SequenceMatcher(None, a, b).ratio().
func Ratio(a, b string) float64 {
	return ratio([]rune(a), []rune(b), true)
}

func ratio(a, b []rune, autojunk bool) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	m := newSequenceMatcher(a, b, autojunk)
	matches := 0
	for _, blk := range m.matchingBlocks() {
		matches += blk.size
	}
	return 2.0 * float64(matches) / float64(total)
}

type block struct {
	i, j, size int
}

type sequenceMatcher struct {
	a, b []rune
	b2j  map[rune][]int
}

func newSequenceMatcher(a, b []rune, autojunk bool) *sequenceMatcher {
	b2j := make(map[rune][]int)
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	if n := len(b); autojunk && n >= autojunkMinLen {
		limit := n/100 + 1
		for r, idxs := range b2j {
			if len(idxs) > limit {
				delete(b2j, r)
			}
		}
	}

	return &sequenceMatcher{a: a, b: b, b2j: b2j}
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] within the
// given bounds, preferring the earliest i and then the earliest j.
func (m *sequenceMatcher) longestMatch(alo, ahi, blo, bhi int) block {
	best := block{i: alo, j: blo}

	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > best.size {
				best = block{i: i - k + 1, j: j - k + 1, size: k}
			}
		}
		j2len = next
	}

	// Popular elements are absent from b2j; grow the block over them.
	for best.i > alo && best.j > blo && m.a[best.i-1] == m.b[best.j-1] {
		best.i--
		best.j--
		best.size++
	}
	for best.i+best.size < ahi && best.j+best.size < bhi && m.a[best.i+best.size] == m.b[best.j+best.size] {
		best.size++
	}

	return best
}

func (m *sequenceMatcher) matchingBlocks() []block {
	type bounds struct{ alo, ahi, blo, bhi int }

	var blocks []block
	queue := []bounds{{0, len(m.a), 0, len(m.b)}}
	for len(queue) > 0 {
		q := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		blk := m.longestMatch(q.alo, q.ahi, q.blo, q.bhi)
		if blk.size == 0 {
			continue
		}
		blocks = append(blocks, blk)
		if q.alo < blk.i && q.blo < blk.j {
			queue = append(queue, bounds{q.alo, blk.i, q.blo, blk.j})
		}
		if blk.i+blk.size < q.ahi && blk.j+blk.size < q.bhi {
			queue = append(queue, bounds{blk.i + blk.size, q.ahi, blk.j + blk.size, q.bhi})
		}
	}
	return blocks
}
