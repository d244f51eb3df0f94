package rhyme

import "strings"

// decomposeAll decomposes every trimmed line, stopping at the first failure.
// The collaborator's error is returned as is.
func (a *Analyser) decomposeAll(lines []string) ([]string, [][]Word, error) {
	texts := make([]string, len(lines))
	parsed := make([][]Word, len(lines))
	for i, line := range lines {
		texts[i] = strings.TrimSpace(line)
		words, err := a.dec.Decompose(texts[i])
		if err != nil {
			return nil, nil, err
		}
		parsed[i] = words
	}
	return texts, parsed, nil
}

// analyse implements Analyse.
func (a *Analyser) analyse(lines []string) (*Result, error) {
	if len(lines) < 2 {
		return nil, ErrTooFewLines
	}

	texts, parsed, err := a.decomposeAll(lines)
	if err != nil {
		return nil, err
	}

	tails := make([]Tail, len(parsed))
	for i, words := range parsed {
		tails[i] = a.tailOf(words)
	}

	slices, fuzzy := FindCommonRime(tails...)

	res := &Result{
		RimePhones: slices[0].Phones(),
		Fuzzy:      fuzzy,
		Lines:      make([]LineResult, len(lines)),
	}
	for i := range lines {
		lr := LineResult{
			Text:          texts[i],
			Parse:         parsed[i],
			Rime:          slices[i],
			MorphemeCount: len(slices[i].Morphemes()),
		}
		if n := len(parsed[i]); n > 0 {
			lr.RhymeWord = parsed[i][n-1].Text
		}
		res.Lines[i] = lr
	}
	return res, nil
}
