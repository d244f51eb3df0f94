package rhyme

// FindCommonRime returns the longest rime shared by every tail, found by
// aligning vowel nuclei from the end of each tail inward.
//
// Syllable n (counted from the end) is accepted when the n-th vowel of each
// tail matches the first tail's n-th vowel, exactly or by class, and the
// consonants in the gap newly spanned by it pass [consonantsCompatible].
// Extension stops at the first syllable that fails; an inner syllable is
// never skipped. fuzzy is true once any accepted syllable needed a
// non-exact comparison.
//
// slices[i] is the rime portion of tails[i]. When no syllable matches, or
// any tail has no vowel, every slice is empty and fuzzy is false.
func FindCommonRime(tails ...Tail) (slices []Tail, fuzzy bool) {
	vowelIdx := make([][]int, len(tails))
	minVowels := -1
	for i, t := range tails {
		vowelIdx[i] = t.VowelIndices()
		if minVowels < 0 || len(vowelIdx[i]) < minVowels {
			minVowels = len(vowelIdx[i])
		}
	}
	if minVowels <= 0 {
		return make([]Tail, len(tails)), false
	}

	// nth returns the position in tail i of its n-th vowel from the end.
	nth := func(i, n int) int {
		return vowelIdx[i][len(vowelIdx[i])-n]
	}

	best := 0
	for n := 1; n <= minVowels; n++ {
		exactStep, ok := nucleiMatch(tails, func(i int) Phone { return tails[i][nth(i, n)].Phone })
		if !ok {
			break
		}

		segments := make([][]Phone, len(tails))
		for i, t := range tails {
			start := nth(i, n) + 1
			end := len(t)
			if n > 1 {
				end = nth(i, n-1)
			}
			segments[i] = consonantsIn(t[start:end])
		}
		consOK, consFuzzy := consonantsCompatible(segments)
		if !consOK {
			break
		}

		if !exactStep || consFuzzy {
			fuzzy = true
		}
		best = n
	}

	if best == 0 {
		return make([]Tail, len(tails)), false
	}

	slices = make([]Tail, len(tails))
	for i, t := range tails {
		slices[i] = t[nth(i, best):]
	}
	return slices, fuzzy
}

// nucleiMatch compares the vowel chosen by at for every tail against the
// first tail's. exact is true when all bases are equal; ok is true when
// they are equal by base or all share the reference's class.
func nucleiMatch(tails []Tail, at func(i int) Phone) (exact, ok bool) {
	ref := at(0)
	exact, byClass := true, true
	for i := 1; i < len(tails); i++ {
		v := at(i)
		if v.Base() != ref.Base() {
			exact = false
		}
		if v.Class() != ref.Class() {
			byClass = false
		}
	}
	return exact, exact || byClass
}

// consonantsIn returns the consonant phones of t.
func consonantsIn(t Tail) []Phone {
	var out []Phone
	for _, ap := range t {
		if !ap.Phone.IsVowel() {
			out = append(out, ap.Phone)
		}
	}
	return out
}
