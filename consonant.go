package rhyme

import (
	"slices"

	"github.com/antzucaro/matchr"
)

// consonantsCompatible reports whether the consonant segments found at one
// syllable gap of every tail are compatible with the first tail's segment.
//
// Each other segment must match the reference exactly, by equivalence class,
// or within a single insertion or deletion at the base or class level. The
// last two tolerances mark the comparison as fuzzy. One incompatible segment
// fails the whole gap.
func consonantsCompatible(segments [][]Phone) (ok, fuzzy bool) {
	if len(segments) < 2 {
		return true, false
	}

	refBase := bases(segments[0])
	refClass := classes(segments[0])

	for _, seg := range segments[1:] {
		otherBase := bases(seg)
		if slices.Equal(refBase, otherBase) {
			continue
		}

		otherClass := classes(seg)
		if slices.Equal(refClass, otherClass) {
			fuzzy = true
			continue
		}

		if withinOneIndel(refBase, otherBase) || withinOneIndel(refClass, otherClass) {
			fuzzy = true
			continue
		}

		return false, false
	}
	return true, fuzzy
}

// withinOneIndel reports whether a and b are equal or differ by exactly one
// inserted or deleted element. Substitutions do not count.
//
// Symbols are interned to runes so the Levenshtein distance can be taken on
// strings: when the lengths differ by one, a distance of one can only be a
// single insertion or deletion.
func withinOneIndel[S ~string](a, b []S) bool {
	if slices.Equal(a, b) {
		return true
	}
	if d := len(a) - len(b); d != 1 && d != -1 {
		return false
	}
	ra, rb := internSymbols(a, b)
	return matchr.Levenshtein(ra, rb) == 1
}

// internSymbols maps each distinct symbol of a and b onto a private-use rune
// and returns both sequences as strings of those runes.
func internSymbols[S ~string](a, b []S) (string, string) {
	table := make(map[S]rune)
	encode := func(seq []S) string {
		rs := make([]rune, len(seq))
		for i, s := range seq {
			r, ok := table[s]
			if !ok {
				r = rune(0xE000 + len(table))
				table[s] = r
			}
			rs[i] = r
		}
		return string(rs)
	}
	return encode(a), encode(b)
}
