package rhyme

import (
	"strconv"
	"strings"
)

// PoemAnalysis is the rhyme scheme of a poem together with the rime
// analysis of every group of two or more lines.
type PoemAnalysis struct {
	Scheme *Scheme
	// Results maps a scheme letter to the analysis of its group. Letters of
	// unrhymed (single-line) groups have no entry.
	Results map[string]*Result
}

// PoemRow is one exported line of a poem analysis.
type PoemRow struct {
	Letter        string
	LineNumber    int
	Text          string
	RimePhones    string
	RimeIPA       string
	Fuzzy         bool
	Analysed      bool
	RhymeWords    []string
	RimeMorphemes []string
	MorphemeCount int
}

// AnalysePoem detects the rhyme scheme of lines and analyses each rhyme
// group of at least two lines.
func (a *Analyser) AnalysePoem(lines []string) (*PoemAnalysis, error) {
	scheme, err := a.detectScheme(lines)
	if err != nil {
		return nil, err
	}

	pa := &PoemAnalysis{Scheme: scheme, Results: make(map[string]*Result)}
	for _, g := range scheme.Groups() {
		if len(g.Lines) < 2 {
			continue
		}
		texts := make([]string, len(g.Lines))
		for i, l := range g.Lines {
			texts[i] = l.Text
		}
		res, err := a.analyse(texts)
		if err != nil {
			return nil, err
		}
		pa.Results[g.Letter] = res
	}
	return pa, nil
}

// Rows flattens the analysis into one row per line, grouped by scheme
// letter in order of first appearance.
func (pa *PoemAnalysis) Rows() []PoemRow {
	var rows []PoemRow
	for _, g := range pa.Scheme.Groups() {
		res := pa.Results[g.Letter]
		for i, l := range g.Lines {
			row := PoemRow{Letter: g.Letter, LineNumber: l.Number, Text: l.Text}
			if res != nil {
				info := res.Lines[i]
				row.Analysed = true
				row.RimePhones = JoinPhones(res.RimePhones)
				row.RimeIPA = ToIPA(res.RimePhones)
				row.Fuzzy = res.Fuzzy
				row.RhymeWords = info.Rime.Words()
				for _, m := range info.Rime.Morphemes() {
					row.RimeMorphemes = append(row.RimeMorphemes, m.String())
				}
				row.MorphemeCount = info.MorphemeCount
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// Record renders the row as export fields in the order of [PoemRowHeader].
// Rows of unanalysed lines leave the analysis fields blank.
func (r PoemRow) Record() []string {
	rec := []string{r.Letter, strconv.Itoa(r.LineNumber), r.Text, "", "", "", "", "", ""}
	if !r.Analysed {
		return rec
	}
	rec[3] = r.RimePhones
	rec[4] = r.RimeIPA
	rec[5] = "false"
	if r.Fuzzy {
		rec[5] = "true"
	}
	rec[6] = strings.Join(r.RhymeWords, " | ")
	rec[7] = strings.Join(r.RimeMorphemes, " + ")
	rec[8] = strconv.Itoa(r.MorphemeCount)
	return rec
}

// PoemRowHeader names the fields produced by [PoemRow.Record].
var PoemRowHeader = []string{
	"scheme_letter", "line_num", "line_text", "rime_phones", "rime_ipa",
	"fuzzy", "rhyme_words", "rime_morphemes", "morpheme_count",
}
