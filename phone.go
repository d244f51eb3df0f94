package rhyme

import "strings"

// Phone is a single ARPAbet symbol, e.g. "AE1" or "T".
// Vowels carry a trailing stress digit; consonants carry none.
type Phone string

// Stress is the lexical stress level of a vowel phone.
type Stress uint8

const (
	StressNone Stress = iota
	StressSecondary
	StressPrimary
)

// String returns the ARPAbet stress digit for s.
func (s Stress) String() string {
	switch s {
	case StressPrimary:
		return "1"
	case StressSecondary:
		return "2"
	default:
		return "0"
	}
}

// Class is a soundex-like equivalence class used for fuzzy comparison.
// Symbols outside the known tables form a singleton class named after
// their base phone.
type Class string

// vowels is the ARPAbet vowel inventory (base forms).
var vowels = map[Phone]bool{
	"AA": true, "AE": true, "AH": true, "AO": true, "AW": true,
	"AY": true, "EH": true, "ER": true, "EY": true, "IH": true,
	"IY": true, "OW": true, "OY": true, "UH": true, "UW": true,
}

// consonantClass groups consonants by place and manner; voicing pairs
// share a class.
var consonantClass = map[Phone]Class{
	"P": "LB_STOP", "B": "LB_STOP",
	"T": "AL_STOP", "D": "AL_STOP",
	"K": "VL_STOP", "G": "VL_STOP",
	"F": "LD_FRIC", "V": "LD_FRIC",
	"TH": "DN_FRIC", "DH": "DN_FRIC",
	"S": "AL_FRIC", "Z": "AL_FRIC",
	"SH": "PA_FRIC", "ZH": "PA_FRIC",
	"CH": "AFFR", "JH": "AFFR",
	"M": "LB_NAS", "N": "AL_NAS", "NG": "VL_NAS",
	"L": "LAT", "R": "RHOT",
	"HH": "GLOT", "W": "LB_GLI", "Y": "PL_GLI",
}

// vowelClass groups vowels by height and backness; diphthongs stand alone.
var vowelClass = map[Phone]Class{
	"IY": "FRONT_HI", "IH": "FRONT_HI",
	"EY": "FRONT_MD", "EH": "FRONT_MD",
	"AE": "FRONT_LO",
	"AH": "CENTRAL", "ER": "CENTRAL",
	"UW": "BACK_HI", "UH": "BACK_HI",
	"OW": "BACK_MD", "AO": "BACK_MD",
	"AA": "BACK_LO",
	"AY": "DIPH_AY", "AW": "DIPH_AW", "OY": "DIPH_OY",
}

// Base returns p with any trailing stress digit removed.
func (p Phone) Base() Phone {
	return Phone(strings.TrimRight(string(p), "012"))
}

// IsVowel reports whether p is one of the ARPAbet vowels.
func (p Phone) IsVowel() bool {
	return vowels[p.Base()]
}

// Stress returns the stress level carried by p. Consonants and vowels
// without a digit report StressNone.
func (p Phone) Stress() Stress {
	if !p.IsVowel() {
		return StressNone
	}
	switch string(p)[len(p.Base()):] {
	case "1":
		return StressPrimary
	case "2":
		return StressSecondary
	default:
		return StressNone
	}
}

// Class returns the equivalence class of p.
func (p Phone) Class() Class {
	b := p.Base()
	if c, ok := vowelClass[b]; ok {
		return c
	}
	if c, ok := consonantClass[b]; ok {
		return c
	}
	return Class(b)
}

// ParsePhones splits a space-separated ARPAbet string into phones.
func ParsePhones(s string) []Phone {
	fields := strings.Fields(s)
	out := make([]Phone, len(fields))
	for i, f := range fields {
		out[i] = Phone(f)
	}
	return out
}

// JoinPhones renders phones as a space-separated ARPAbet string.
func JoinPhones(phones []Phone) string {
	parts := make([]string, len(phones))
	for i, p := range phones {
		parts[i] = string(p)
	}
	return strings.Join(parts, " ")
}

func bases(phones []Phone) []Phone {
	out := make([]Phone, len(phones))
	for i, p := range phones {
		out[i] = p.Base()
	}
	return out
}

func classes(phones []Phone) []Class {
	out := make([]Class, len(phones))
	for i, p := range phones {
		out[i] = p.Class()
	}
	return out
}
