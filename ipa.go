package rhyme

import "strings"

// arpaToIPA maps ARPAbet base phones to IPA.
var arpaToIPA = map[Phone]string{
	"AA": "ɑ", "AE": "æ", "AH": "ʌ", "AO": "ɔ",
	"AW": "aʊ", "AY": "aɪ",
	"B": "b", "CH": "tʃ", "D": "d", "DH": "ð",
	"EH": "ɛ", "ER": "ɝ", "EY": "eɪ",
	"F": "f", "G": "ɡ", "HH": "h",
	"IH": "ɪ", "IY": "i",
	"JH": "dʒ", "K": "k", "L": "l", "M": "m", "N": "n", "NG": "ŋ",
	"OW": "oʊ", "OY": "ɔɪ",
	"P": "p", "R": "ɹ", "S": "s", "SH": "ʃ", "T": "t", "TH": "θ",
	"UH": "ʊ", "UW": "u",
	"V": "v", "W": "w", "Y": "j", "Z": "z", "ZH": "ʒ",
}

// validOnsets lists the English consonant clusters that may open a
// syllable, keyed by their space-joined base phones.
var validOnsets = func() map[string]bool {
	onsets := []string{
		"B", "CH", "D", "DH", "F", "G", "HH", "JH", "K", "L", "M", "N", "P",
		"R", "S", "SH", "T", "TH", "V", "W", "Y", "Z", "ZH",
		"P L", "P R", "B L", "B R", "T R", "D R", "K L", "K R", "G L", "G R",
		"F L", "F R", "TH R", "SH R",
		"S L", "S M", "S N", "S P", "S T", "S K", "S W", "S F",
		"T W", "K W", "D W", "G W",
		"P Y", "B Y", "T Y", "D Y", "K Y", "G Y", "F Y", "V Y", "TH Y",
		"M Y", "N Y", "HH Y",
		"S P L", "S P R", "S T R", "S K R", "S K W", "S K Y", "S T Y", "S P Y",
	}
	m := make(map[string]bool, len(onsets))
	for _, o := range onsets {
		m[o] = true
	}
	return m
}()

// PhoneIPA converts one phone to IPA. Unstressed AH and ER render as the
// reduced vowels ə and ɚ.
func PhoneIPA(p Phone) string {
	b := p.Base()
	if p.IsVowel() && p.Stress() == StressNone {
		switch b {
		case "AH":
			return "ə"
		case "ER":
			return "ɚ"
		}
	}
	if s, ok := arpaToIPA[b]; ok {
		return s
	}
	return string(b)
}

// ToIPA converts phones to an IPA string without stress marks.
func ToIPA(phones []Phone) string {
	var sb strings.Builder
	for _, p := range phones {
		sb.WriteString(PhoneIPA(p))
	}
	return sb.String()
}

// ToIPAStressed converts phones to IPA and places stress marks at the start
// of each stressed syllable. The onset of a stressed syllable is the longest
// run of preceding consonants that forms a valid English onset; word-initial
// consonants always belong to it.
func ToIPAStressed(phones []Phone) string {
	marks := make(map[int]string)
	for i, p := range phones {
		var mark string
		switch p.Stress() {
		case StressPrimary:
			mark = "ˈ"
		case StressSecondary:
			mark = "ˌ"
		default:
			continue
		}

		j := i - 1
		for j >= 0 && !phones[j].IsVowel() {
			j--
		}
		start := i
		if j < 0 {
			start = 0
		} else {
			cluster := bases(phones[j+1 : i])
			for k := range cluster {
				if validOnsets[JoinPhones(cluster[k:])] {
					start = j + 1 + k
					break
				}
			}
		}
		marks[start] = mark
	}

	var sb strings.Builder
	for i, p := range phones {
		sb.WriteString(marks[i])
		sb.WriteString(PhoneIPA(p))
	}
	return sb.String()
}
