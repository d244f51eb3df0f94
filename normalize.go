package rhyme

import (
	"regexp"
	"strings"
)

// reWord matches a single word token: letters with optional internal
// apostrophes ("don't", "o'er").
var reWord = regexp.MustCompile(`\p{L}+(?:'\p{L}+)*`)

// apostropheReplacer folds typographic apostrophes and quotes into the
// ASCII apostrophe used by the pronouncing dictionary.
var apostropheReplacer = strings.NewReplacer(
	"’", "'", // ’
	"‘", "'", // ‘
	"ʼ", "'", // ʼ
	"`", "'", // `
	"´", "'", // ´
)

// NormalizeApostrophes replaces typographic apostrophes in s with "'".
func NormalizeApostrophes(s string) string {
	return apostropheReplacer.Replace(s)
}

// NormalizeKey returns the dictionary lookup key for a word token.
func NormalizeKey(s string) string {
	return strings.ToLower(NormalizeApostrophes(s))
}

// Tokenize splits a line into word tokens, dropping punctuation, digits and
// whitespace. Apostrophes are normalised.
func Tokenize(line string) []string {
	return reWord.FindAllString(NormalizeApostrophes(line), -1)
}

// contraction is a clitic split off a token that the dictionary does not
// know as a whole.
type contraction struct {
	suffix string
	phones []Phone
}

// contractions lists clitic suffixes with their reduced pronunciations.
var contractions = []contraction{
	{"n't", []Phone{"AH0", "N", "T"}},
	{"'ll", []Phone{"AH0", "L"}},
	{"'re", []Phone{"ER0"}},
	{"'ve", []Phone{"AH0", "V"}},
	{"'d", []Phone{"AH0", "D"}},
	{"'s", []Phone{"Z"}},
	{"'m", []Phone{"AH0", "M"}},
}

// CliticTag labels morphemes split off as contractions.
const CliticTag = "CLITIC"

// splitContraction splits token into its host and a known clitic suffix.
func splitContraction(token string) (host string, c contraction, ok bool) {
	key := NormalizeKey(token)
	for _, c := range contractions {
		if len(key) > len(c.suffix) && strings.HasSuffix(key, c.suffix) {
			return token[:len(token)-len(c.suffix)], c, true
		}
	}
	return "", contraction{}, false
}

// lemmaCandidates returns the possible citation forms of word once ending
// is stripped. An ending of the form "ies>y" strips "ies" and appends "y".
// Besides the plain stem, a restored final "e" ("lov" → "love") and an
// undoubled final consonant ("stopp" → "stop") are proposed.
func lemmaCandidates(word, ending string) []string {
	strip, add, _ := strings.Cut(ending, ">")
	if strip == "" || len(word) <= len(strip) || !strings.HasSuffix(word, strip) {
		return nil
	}
	stem := word[:len(word)-len(strip)]
	if add != "" {
		return []string{stem + add}
	}

	out := []string{stem, stem + "e"}
	if n := len(stem); n >= 2 && stem[n-1] == stem[n-2] && !strings.ContainsRune("aeiou", rune(stem[n-1])) {
		out = append(out, stem[:n-1])
	}
	return out
}

// applyMergers rewrites phones according to the active phoneme mergers.
// The cot–caught merger collapses AO into AA, keeping the stress digit.
func applyMergers(phones []Phone, cotCaught bool) []Phone {
	if !cotCaught {
		return phones
	}
	out := make([]Phone, len(phones))
	for i, p := range phones {
		if p.Base() == "AO" {
			p = "AA" + p[len("AO"):]
		}
		out[i] = p
	}
	return out
}
