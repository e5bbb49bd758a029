package search

// QuickRatio measures how much of a appears, in order, within b. It is a
// directional greedy overlap, not an edit distance: the cursor into a only
// advances on a match, while the cursor into b advances every step, so
// QuickRatio(a, b) and QuickRatio(b, a) generally differ. Callers pass the
// normalized query as a and the indexed field as b.
//
// The result is 2*common/(len(a)+len(b)) in [0, 1], counted over runes.
// Either side being empty yields 0; QuickRatio(a, a) is 1 for non-empty a.
func QuickRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	common := 0
	i := 0
	for j := 0; i < len(ra) && j < len(rb); j++ {
		if ra[i] == rb[j] {
			common++
			i++
		}
	}

	return 2.0 * float64(common) / float64(len(ra)+len(rb))
}
