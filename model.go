package rhyme

// LabelKind distinguishes regular morphemes from irregular inflected forms.
type LabelKind uint8

const (
	// LabelRegular tags a root or a cleanly stripped suffix, e.g. "NOUN" or "PL".
	LabelRegular LabelKind = iota
	// LabelIrregular tags a whole irregular form with its base tag,
	// e.g. "VERB<PAST>" for "went".
	LabelIrregular
)

// Label identifies which morpheme a phone belongs to.
type Label struct {
	Kind LabelKind
	// Tag is the morpheme tag: a part of speech for roots ("NOUN"),
	// an inflection for suffixes and irregular forms ("PL", "PAST").
	Tag string
	// Base is the part of speech of an irregular form; empty otherwise.
	Base string
}

// RegularLabel returns a label for a regular morpheme.
func RegularLabel(tag string) Label {
	return Label{Kind: LabelRegular, Tag: tag}
}

// IrregularLabel returns a label for an irregular form of part of speech base
// carrying inflection tag.
func IrregularLabel(base, tag string) Label {
	return Label{Kind: LabelIrregular, Tag: tag, Base: base}
}

// String renders the label the way glosses display it.
func (l Label) String() string {
	if l.Kind == LabelIrregular {
		return l.Base + "<" + l.Tag + ">"
	}
	return l.Tag
}

// Morpheme is a run of phones sharing one label within a word.
type Morpheme struct {
	Phones []Phone
	Label  Label
	// Lemma is the citation form of an inflected root or irregular form,
	// e.g. "go" for "went". Empty for suffixes and uninflected words.
	Lemma string
}

// Word is one orthographic word of a line with its morphemes in surface order.
type Word struct {
	Text      string
	Morphemes []Morpheme
}

// Phones returns all phones of w in order.
func (w Word) Phones() []Phone {
	var out []Phone
	for _, m := range w.Morphemes {
		out = append(out, m.Phones...)
	}
	return out
}

// AttributedPhone is a phone tagged with the morpheme and word it came from.
type AttributedPhone struct {
	Phone Phone
	Label Label
	Word  string
}

// MorphemeRef identifies a morpheme occurrence by its (label, word) pair.
type MorphemeRef struct {
	Label Label
	Word  string
}

// String renders the reference as "LABEL(word)".
func (m MorphemeRef) String() string {
	return m.Label.String() + "(" + m.Word + ")"
}

// Tail is an ordered run of attributed phones: the trailing window of a
// line, or a rime slice of one.
type Tail []AttributedPhone

// Phones returns the bare phones of t.
func (t Tail) Phones() []Phone {
	if len(t) == 0 {
		return nil
	}
	out := make([]Phone, len(t))
	for i, ap := range t {
		out[i] = ap.Phone
	}
	return out
}

// VowelIndices returns the positions of vowel phones in t.
func (t Tail) VowelIndices() []int {
	var idx []int
	for i, ap := range t {
		if ap.Phone.IsVowel() {
			idx = append(idx, i)
		}
	}
	return idx
}

// Morphemes returns the distinct morphemes t spans, in order of first
// occurrence.
func (t Tail) Morphemes() []MorphemeRef {
	seen := make(map[MorphemeRef]bool)
	var out []MorphemeRef
	for _, ap := range t {
		ref := MorphemeRef{Label: ap.Label, Word: ap.Word}
		if !seen[ref] {
			seen[ref] = true
			out = append(out, ref)
		}
	}
	return out
}

// Words returns the distinct source words t spans, in order of first
// occurrence.
func (t Tail) Words() []string {
	seen := make(map[string]bool)
	var out []string
	for _, ap := range t {
		if !seen[ap.Word] {
			seen[ap.Word] = true
			out = append(out, ap.Word)
		}
	}
	return out
}

// LineResult holds the analysis of a single line.
type LineResult struct {
	// Text is the trimmed input line.
	Text string
	// Parse is the full morphological decomposition of the line.
	Parse []Word
	// RhymeWord is the last word of the line, "" if it has none.
	RhymeWord string
	// Rime is the matched rhyming portion of this line's tail.
	Rime Tail
	// MorphemeCount is the number of distinct morphemes Rime spans.
	MorphemeCount int
}

// Result is the outcome of analysing a set of lines assumed to rhyme.
// An empty RimePhones means no common rime was found.
type Result struct {
	// RimePhones is the canonical rime, taken from the first line.
	RimePhones []Phone
	// Fuzzy is true when near-rhyme tolerance was needed.
	Fuzzy bool
	Lines []LineResult
}

// Rhymes reports whether a common rime was found.
func (r *Result) Rhymes() bool {
	return len(r.RimePhones) > 0
}
