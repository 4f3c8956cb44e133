package results

// Distance is the Levenshtein edit distance between a and b: insertions,
// deletions and substitutions cost 1, transpositions are not special.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	column := make([]int, len(ra)+1)
	for y := range column {
		column[y] = y
	}
	for x := 1; x <= len(rb); x++ {
		column[0] = x
		lastDiag := x - 1
		for y := 1; y <= len(ra); y++ {
			oldDiag := column[y]
			cost := 1
			if ra[y-1] == rb[x-1] {
				cost = 0
			}
			column[y] = min(column[y]+1, column[y-1]+1, lastDiag+cost)
			lastDiag = oldDiag
		}
	}
	return column[len(ra)]
}

// Score lowers the relevance of every entry to its smallest distance to any
// of targets.
func (s *Set) Score(targets []string) {
	for _, t := range targets {
		for _, e := range s.entries {
			d := Exact(Distance(t, e.Name()))
			if d.Compare(e.relevance) < 0 {
				e.relevance = d
			}
		}
	}
}
