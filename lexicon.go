package rhyme

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownWord is returned by [Lexicon.Decompose] when a word has no
// pronunciation in the dictionary.
var ErrUnknownWord = errors.New("rhyme: unknown word")

// RootTag labels uninflected words and the roots of inflected ones whose
// part of speech is not implied by a rule.
const RootTag = "ROOT"

// Default data file names inside a lexicon data directory.
const (
	DefaultDictionaryFile = "cmudict.dict"
	DefaultRulesFile      = "inflections.yaml"
	DefaultIrregularsFile = "irregulars.yaml"
)

// inflectionRule strips one inflectional suffix.
type inflectionRule struct {
	// label tags the suffix morpheme, e.g. "PL".
	label string
	// pos tags the root the suffix attaches to, e.g. "NOUN".
	pos string
	// endings are orthographic endings, e.g. "s", "ies>y".
	endings []string
	// suffixes are the phonological realisations, e.g. [Z], [IH0 Z].
	suffixes [][]Phone
	// normalize maps surface allophones to the underlying form, e.g. T → D.
	normalize map[Phone]Phone
}

// underlying rewrites surface suffix phones to their underlying form.
func (r *inflectionRule) underlying(phones []Phone) []Phone {
	out := make([]Phone, len(phones))
	for i, p := range phones {
		if q, ok := r.normalize[p]; ok {
			p = q
		}
		out[i] = p
	}
	return out
}

// irregularForm is an inflected word whose suffix cannot be stripped.
type irregularForm struct {
	lemma string
	pos   string
	label string
}

// LexiconOption configures a [Lexicon] before its data is loaded.
type LexiconOption func(*Lexicon)

// WithCotCaughtMerger collapses AO into AA when pronunciations are added.
// Default: true.
func WithCotCaughtMerger(enabled bool) LexiconOption {
	return func(lx *Lexicon) {
		lx.cotCaught = enabled
	}
}

// WithDictionaryFile overrides the dictionary file name. Default: cmudict.dict.
func WithDictionaryFile(name string) LexiconOption {
	return func(lx *Lexicon) {
		lx.dictionaryFile = name
	}
}

// WithRulesFile overrides the inflection rules file name. Default: inflections.yaml.
func WithRulesFile(name string) LexiconOption {
	return func(lx *Lexicon) {
		lx.rulesFile = name
	}
}

// WithIrregularsFile overrides the irregular forms file name. Default: irregulars.yaml.
func WithIrregularsFile(name string) LexiconOption {
	return func(lx *Lexicon) {
		lx.irregularsFile = name
	}
}

// Lexicon is a dictionary-backed [Decomposer]: it looks words up in a
// pronouncing dictionary and splits inflected forms into root and suffix
// morphemes. It is read-only after loading and safe for concurrent use.
type Lexicon struct {
	// pronunciations maps a lowercase word to its first pronunciation.
	pronunciations map[string][]Phone

	// rules are tried in order; the first clean strip wins.
	rules []inflectionRule

	// irregulars maps a lowercase word to its irregular tagging.
	irregulars map[string]irregularForm

	cotCaught      bool
	dictionaryFile string
	rulesFile      string
	irregularsFile string
}

// NewLexicon returns an empty Lexicon. Pronunciations can be added with
// [Lexicon.Add].
func NewLexicon(opts ...LexiconOption) *Lexicon {
	lx := &Lexicon{
		pronunciations: make(map[string][]Phone),
		irregulars:     make(map[string]irregularForm),
		cotCaught:      true,
		dictionaryFile: DefaultDictionaryFile,
		rulesFile:      DefaultRulesFile,
		irregularsFile: DefaultIrregularsFile,
	}
	for _, o := range opts {
		o(lx)
	}
	return lx
}

// LoadLexicon loads the dictionary, inflection rules and irregular forms
// found in dataDir and returns a ready-to-use Lexicon.
func LoadLexicon(dataDir string, opts ...LexiconOption) (*Lexicon, error) {
	lx := NewLexicon(opts...)

	if err := lx.loadDictionary(dataDir); err != nil {
		return nil, err
	}
	if err := lx.loadRules(dataDir); err != nil {
		return nil, err
	}
	if err := lx.loadIrregulars(dataDir); err != nil {
		return nil, err
	}
	return lx, nil
}

// Add registers a pronunciation for word unless it already has one.
// Active phoneme mergers are applied.
func (lx *Lexicon) Add(word string, phones []Phone) {
	key := NormalizeKey(word)
	if _, ok := lx.pronunciations[key]; ok {
		return
	}
	lx.pronunciations[key] = applyMergers(phones, lx.cotCaught)
}

// Pronounce returns the pronunciation of word.
func (lx *Lexicon) Pronounce(word string) ([]Phone, bool) {
	p, ok := lx.pronunciations[NormalizeKey(word)]
	if !ok {
		return nil, false
	}
	return slices.Clone(p), true
}

// Len returns the number of words with a pronunciation.
func (lx *Lexicon) Len() int {
	return len(lx.pronunciations)
}

// Decompose tokenizes line and decomposes every word into morphemes.
// It fails with [ErrUnknownWord] on the first word it cannot pronounce.
func (lx *Lexicon) Decompose(line string) ([]Word, error) {
	var words []Word
	for _, tok := range Tokenize(line) {
		ws, err := lx.decomposeToken(tok)
		if err != nil {
			return nil, err
		}
		words = append(words, ws...)
	}
	return words, nil
}

// decomposeToken decomposes one token. Tokens unknown as a whole are split
// into host and clitic when they end in a known contraction.
func (lx *Lexicon) decomposeToken(tok string) ([]Word, error) {
	key := NormalizeKey(tok)
	if phones, ok := lx.pronunciations[key]; ok {
		return []Word{{Text: tok, Morphemes: lx.morphemes(key, phones)}}, nil
	}

	if host, c, ok := splitContraction(tok); ok {
		words, err := lx.decomposeToken(host)
		if err != nil {
			return nil, err
		}
		clitic := Word{
			Text:      tok[len(host):],
			Morphemes: []Morpheme{{Phones: slices.Clone(c.phones), Label: RegularLabel(CliticTag)}},
		}
		return append(words, clitic), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownWord, tok)
}

// morphemes splits the pronunciation of word into root and inflectional
// suffix. Irregular forms stay whole and are tagged POS<LABEL>. Stripped
// roots and irregular forms carry their lemma.
func (lx *Lexicon) morphemes(word string, phones []Phone) []Morpheme {
	whole := slices.Clone(phones)
	if irr, ok := lx.irregulars[word]; ok {
		return []Morpheme{{Phones: whole, Label: IrregularLabel(irr.pos, irr.label), Lemma: irr.lemma}}
	}

	for i := range lx.rules {
		r := &lx.rules[i]
		if root, suffix, lemma, ok := lx.strip(r, word, phones); ok {
			return []Morpheme{
				{Phones: root, Label: RegularLabel(r.pos), Lemma: lemma},
				{Phones: r.underlying(suffix), Label: RegularLabel(r.label)},
			}
		}
	}
	return []Morpheme{{Phones: whole, Label: RegularLabel(RootTag)}}
}

// strip tries rule r on word: some lemma candidate must be in the
// dictionary and one of the rule's suffixes must split the word's
// pronunciation into exactly the lemma's pronunciation plus that suffix.
func (lx *Lexicon) strip(r *inflectionRule, word string, phones []Phone) (root, suffix []Phone, lemma string, ok bool) {
	for _, ending := range r.endings {
		for _, lemma := range lemmaCandidates(word, ending) {
			lemmaPhones, found := lx.pronunciations[lemma]
			if !found || lemma == word {
				continue
			}
			for _, suf := range r.suffixes {
				n := len(suf)
				if len(phones) <= n {
					continue
				}
				cut := len(phones) - n
				if slices.Equal(phones[cut:], suf) && slices.Equal(phones[:cut], lemmaPhones) {
					return slices.Clone(phones[:cut]), slices.Clone(phones[cut:]), lemma, true
				}
			}
		}
	}
	return nil, nil, "", false
}
