package rhyme

// RimeCandidates returns the stressed-vowel rime candidates of a line's
// phones. The main candidate runs from the last primary- or
// secondary-stressed vowel to the end (falling back to the last vowel of any
// stress). When that vowel carries secondary stress and a primary-stressed
// vowel precedes it, a second candidate starting there is appended.
func RimeCandidates(t Tail) []Tail {
	last := -1
	for i := len(t) - 1; i >= 0; i-- {
		if s := t[i].Phone.Stress(); t[i].Phone.IsVowel() && s != StressNone {
			last = i
			break
		}
	}
	if last < 0 {
		idx := t.VowelIndices()
		if len(idx) == 0 {
			return nil
		}
		last = idx[len(idx)-1]
	}

	candidates := []Tail{t[last:]}
	if t[last].Phone.Stress() == StressSecondary {
		for i := last - 1; i >= 0; i-- {
			if t[i].Phone.Stress() == StressPrimary {
				candidates = append(candidates, t[i:])
				break
			}
		}
	}
	return candidates
}
