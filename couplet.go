package rhyme

import (
	"context"
	"strconv"
	"strings"
)

// Couplet is one pair of consecutive lines analysed as a rhyming couplet.
type Couplet struct {
	// Number is the 1-based couplet number.
	Number int
	// LineNumbers are the 1-based positions of the two lines.
	LineNumbers [2]int
	// Texts are the trimmed texts of the two lines.
	Texts [2]string
	// Result is nil when the couplet could not be analysed.
	Result *Result
	// Err is the decomposition failure of this couplet, if any.
	Err error
}

// Pairs groups lines into consecutive couplets (1,2), (3,4), ... A trailing
// odd line is dropped.
func Pairs(lines []string) [][]string {
	pairs := make([][]string, 0, len(lines)/2)
	for i := 0; i+1 < len(lines); i += 2 {
		pairs = append(pairs, []string{lines[i], lines[i+1]})
	}
	return pairs
}

// AnalyseCouplets pairs lines into couplets and analyses them concurrently.
// A couplet whose lines cannot be decomposed keeps its error in Err and does
// not stop the others; only cancellation of ctx fails the whole call.
func (a *Analyser) AnalyseCouplets(ctx context.Context, lines []string) ([]Couplet, error) {
	pairs := Pairs(lines)
	out := make([]Couplet, len(pairs))
	err := a.fanOut(ctx, len(pairs), func(i int) error {
		c := Couplet{
			Number:      i + 1,
			LineNumbers: [2]int{2*i + 1, 2*i + 2},
			Texts:       [2]string{strings.TrimSpace(pairs[i][0]), strings.TrimSpace(pairs[i][1])},
		}
		c.Result, c.Err = a.analyse(pairs[i])
		out[i] = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CoupletHeader names the fields produced by [Couplet.Record].
var CoupletHeader = []string{
	"couplet", "line1_num", "line2_num", "line1_text", "line2_text",
	"rime_phones", "rime_ipa", "fuzzy",
	"line1_rhyme_words", "line2_rhyme_words",
	"line1_rime_morphemes", "line2_rime_morphemes",
	"line1_morpheme_count", "line2_morpheme_count",
}

// Record renders the couplet as export fields in the order of
// [CoupletHeader]. A failed couplet leaves the analysis fields blank.
func (c Couplet) Record() []string {
	rec := make([]string, len(CoupletHeader))
	rec[0] = strconv.Itoa(c.Number)
	rec[1] = strconv.Itoa(c.LineNumbers[0])
	rec[2] = strconv.Itoa(c.LineNumbers[1])
	rec[3], rec[4] = c.Texts[0], c.Texts[1]
	if c.Result == nil {
		return rec
	}

	rec[5] = JoinPhones(c.Result.RimePhones)
	rec[6] = ToIPA(c.Result.RimePhones)
	rec[7] = strconv.FormatBool(c.Result.Fuzzy)
	for k, line := range c.Result.Lines[:2] {
		var morphemes []string
		for _, m := range line.Rime.Morphemes() {
			morphemes = append(morphemes, m.String())
		}
		rec[8+k] = strings.Join(line.Rime.Words(), " | ")
		rec[10+k] = strings.Join(morphemes, " + ")
		rec[12+k] = strconv.Itoa(line.MorphemeCount)
	}
	return rec
}
