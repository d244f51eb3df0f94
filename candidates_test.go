package rhyme

import (
	"slices"
	"testing"
)

func TestRimeCandidates(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want []string
	}{
		{"primary", "lady=L EY1 D IY0", []string{"EY1 D IY0"}},
		{"secondary_after_primary", "blackbird=B L AE1 K B ER2 D", []string{"ER2 D", "AE1 K B ER2 D"}},
		{"unstressed_only", "the=DH AH0", []string{"AH0"}},
		{"no_vowel", "hmm=HH M", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range RimeCandidates(mkTail(tt.desc)) {
				got = append(got, JoinPhones(c.Phones()))
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("RimeCandidates(%s) = %q, want %q", tt.desc, got, tt.want)
			}
		})
	}
}

func TestFormatRimeCandidates(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"lady=L EY1 D IY0", "rime(1°): /eɪdi/"},
		{"blackbird=B L AE1 K B ER2 D", "rime(2°): /ɝd/  alt(1°): /ækbɝd/"},
		{"the=DH AH0", "rime(0): /ə/"},
		{"hmm=HH M", ""},
	}
	for _, tt := range tests {
		if got := FormatRimeCandidates(RimeCandidates(mkTail(tt.desc))); got != tt.want {
			t.Errorf("FormatRimeCandidates(%s) = %q, want %q", tt.desc, got, tt.want)
		}
	}
}
