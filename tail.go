package rhyme

// MaxRimeSyllables is the number of vowel nuclei, counted from the end of a
// line, that a tail may span.
const MaxRimeSyllables = 3

// flatten attributes every phone of words to its morpheme and word.
func flatten(words []Word) Tail {
	var flat Tail
	for _, w := range words {
		for _, m := range w.Morphemes {
			for _, p := range m.Phones {
				flat = append(flat, AttributedPhone{Phone: p, Label: m.Label, Word: w.Text})
			}
		}
	}
	return flat
}

// ExtractTail returns the trailing window of a decomposed line that holds up
// to maxSyllables vowels. A line with fewer vowels yields all its phones;
// a line with no phones, or a maxSyllables below one, yields an empty tail.
func ExtractTail(words []Word, maxSyllables int) Tail {
	if maxSyllables < 1 {
		return nil
	}
	flat := flatten(words)

	vowelCount := 0
	cutoff := 0
	for i := len(flat) - 1; i >= 0; i-- {
		if !flat[i].Phone.IsVowel() {
			continue
		}
		vowelCount++
		if vowelCount >= maxSyllables {
			cutoff = i
			break
		}
	}
	return flat[cutoff:]
}
