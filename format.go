package rhyme

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatAnalysis renders res as a human-readable report: the common rime,
// then for every line its morphological parse and the morphemes behind
// each rime phone.
func FormatAnalysis(res *Result) string {
	var sb strings.Builder

	if res.Rhymes() {
		kind := "exact"
		if res.Fuzzy {
			kind = "fuzzy"
		}
		fmt.Fprintf(&sb, "Common rime: %s  [%s]  (%s match)\n",
			JoinPhones(res.RimePhones), ToIPA(res.RimePhones), kind)
	} else {
		sb.WriteString("No common rime detected.\n")
	}
	sb.WriteString("\n")

	for i, line := range res.Lines {
		fmt.Fprintf(&sb, "── Line %d: %q ──\n", i+1, line.Text)

		for _, w := range line.Parse {
			parts := make([]string, len(w.Morphemes))
			for k, m := range w.Morphemes {
				parts[k] = fmt.Sprintf("%s(%s)", m.Label, ToIPA(m.Phones))
			}
			fmt.Fprintf(&sb, "  %-15s %s\n", w.Text, strings.Join(parts, " + "))
		}

		if len(line.Rime) > 0 {
			refs := line.Rime.Morphemes()
			labels := make([]string, len(refs))
			for k, r := range refs {
				labels[k] = r.String()
			}
			plural := "s"
			if line.MorphemeCount == 1 {
				plural = ""
			}
			fmt.Fprintf(&sb, "  Rime [%s] spans %d morpheme%s: %s\n",
				ToIPA(line.Rime.Phones()), line.MorphemeCount, plural, strings.Join(labels, " + "))
			for _, ap := range line.Rime {
				fmt.Fprintf(&sb, "    %-6s [%s]  ← %s (%s)\n",
					ap.Phone, padRight(PhoneIPA(ap.Phone), 3), ap.Label, ap.Word)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatGloss renders words as a three-row interlinear gloss: orthographic
// words, IPA with morpheme boundaries, and morpheme labels.
func FormatGloss(words []Word) string {
	n := len(words)
	ortho := make([]string, n)
	ipa := make([]string, n)
	labels := make([]string, n)
	widths := make([]int, n)

	for i, w := range words {
		ps := make([]string, len(w.Morphemes))
		ls := make([]string, len(w.Morphemes))
		for k, m := range w.Morphemes {
			ps[k] = ToIPAStressed(m.Phones)
			ls[k] = m.Label.String()
		}
		ortho[i] = w.Text
		ipa[i] = strings.Join(ps, "-")
		labels[i] = strings.Join(ls, "-")
		widths[i] = max(utf8.RuneCountInString(ortho[i]),
			utf8.RuneCountInString(ipa[i]), utf8.RuneCountInString(labels[i]))
	}

	row := func(cells []string) string {
		padded := make([]string, n)
		for i, c := range cells {
			padded[i] = padRight(c, widths[i])
		}
		return strings.Join(padded, "  ")
	}
	return " " + row(ortho) + "\n/" + strings.TrimRight(row(ipa), " ") + "/\n " + row(labels)
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// FormatRimeCandidates renders the candidates of [RimeCandidates] as
// "rime(1°): /…/" with the stress of the main candidate's vowel, followed by
// "alt(1°): /…/" when a primary-stressed alternative exists.
func FormatRimeCandidates(cands []Tail) string {
	if len(cands) == 0 || len(cands[0]) == 0 {
		return ""
	}
	label := "0"
	switch cands[0][0].Phone.Stress() {
	case StressPrimary:
		label = "1°"
	case StressSecondary:
		label = "2°"
	}
	s := fmt.Sprintf("rime(%s): /%s/", label, ToIPA(cands[0].Phones()))
	if len(cands) > 1 {
		s += fmt.Sprintf("  alt(1°): /%s/", ToIPA(cands[1].Phones()))
	}
	return s
}
