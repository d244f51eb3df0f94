// Package rhyme detects end-rhyme and near-rhyme between lines of poetry.
//
// Lines are decomposed into phones tagged with the morpheme and word they
// come from, the trailing syllables of each line are aligned nucleus by
// nucleus from the end, and the longest mutually compatible rime is
// reported together with the morphemes it spans. Small mismatches such as
// voicing alternations, a single inserted or dropped consonant, or nearby
// vowel qualities are tolerated and flagged as fuzzy.
//
// The engine is deterministic and holds no mutable state; an [Analyser] is
// safe for concurrent use as long as its [Decomposer] is.
package rhyme

import "errors"

// ErrTooFewLines is returned when fewer than two lines are given for
// analysis.
var ErrTooFewLines = errors.New("rhyme: at least two lines are required")

// Decomposer turns a line of text into words with their morphemes and
// phones. Implementations must return the same decomposition for the same
// line and must not include punctuation tokens.
type Decomposer interface {
	Decompose(line string) ([]Word, error)
}

// DecomposerFunc adapts a function to the [Decomposer] interface.
type DecomposerFunc func(line string) ([]Word, error)

// Decompose calls f(line).
func (f DecomposerFunc) Decompose(line string) ([]Word, error) {
	return f(line)
}

const defaultConcurrency = 4

// Option configures an [Analyser].
type Option func(*Analyser)

// WithMaxSyllables sets how many trailing vowel nuclei a line tail may span.
// Values below one are ignored. Default: [MaxRimeSyllables].
func WithMaxSyllables(n int) Option {
	return func(a *Analyser) {
		if n > 0 {
			a.maxSyllables = n
		}
	}
}

// WithConcurrency bounds the number of independent analyses run at once by
// the batch methods. Values below one are ignored. Default: 4.
func WithConcurrency(n int) Option {
	return func(a *Analyser) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// Analyser compares the endings of lines decomposed by a [Decomposer].
type Analyser struct {
	dec          Decomposer
	maxSyllables int
	concurrency  int
}

// New returns an Analyser that decomposes lines with dec.
func New(dec Decomposer, opts ...Option) *Analyser {
	a := &Analyser{
		dec:          dec,
		maxSyllables: MaxRimeSyllables,
		concurrency:  defaultConcurrency,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyse finds the rime shared by lines, which are assumed to rhyme with
// each other. A result with no rime is not an error.
func (a *Analyser) Analyse(lines []string) (*Result, error) {
	return a.analyse(lines)
}

// DetectScheme assigns a rhyme-scheme letter to every line of a poem.
// Blank lines should be removed by the caller.
func (a *Analyser) DetectScheme(lines []string) (*Scheme, error) {
	return a.detectScheme(lines)
}

// Tail decomposes line and returns its trailing rhyme window.
func (a *Analyser) Tail(line string) (Tail, error) {
	words, err := a.dec.Decompose(line)
	if err != nil {
		return nil, err
	}
	return a.tailOf(words), nil
}

// tailOf extracts the rhyme window of words. An Analyser not built by [New]
// uses [MaxRimeSyllables].
func (a *Analyser) tailOf(words []Word) Tail {
	n := a.maxSyllables
	if n < 1 {
		n = MaxRimeSyllables
	}
	return ExtractTail(words, n)
}
