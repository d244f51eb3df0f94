package rhyme

import (
	"slices"
	"testing"
)

func TestPhoneBase(t *testing.T) {
	tests := []struct {
		in   Phone
		want Phone
	}{
		{"AE1", "AE"},
		{"AH0", "AH"},
		{"EY2", "EY"},
		{"T", "T"},
		{"NG", "NG"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := tt.in.Base(); got != tt.want {
			t.Errorf("Phone(%q).Base() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPhoneStress(t *testing.T) {
	tests := []struct {
		in   Phone
		want Stress
	}{
		{"AE1", StressPrimary},
		{"EY2", StressSecondary},
		{"AH0", StressNone},
		{"AH", StressNone},
		{"T", StressNone},
		{"Z", StressNone},
	}
	for _, tt := range tests {
		if got := tt.in.Stress(); got != tt.want {
			t.Errorf("Phone(%q).Stress() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPhoneIsVowel(t *testing.T) {
	for _, p := range []Phone{"AA1", "AE0", "ER2", "OY1", "UW0", "IY"} {
		if !p.IsVowel() {
			t.Errorf("Phone(%q).IsVowel() = false, want true", p)
		}
	}
	for _, p := range []Phone{"T", "HH", "NG", "Y", "W", "XX1"} {
		if p.IsVowel() {
			t.Errorf("Phone(%q).IsVowel() = true, want false", p)
		}
	}
}

func TestPhoneClass(t *testing.T) {
	tests := []struct {
		a, b Phone
		same bool
	}{
		{"P", "B", true},
		{"T", "D", true},
		{"K", "G", true},
		{"S", "Z", true},
		{"CH", "JH", true},
		{"IY1", "IH0", true},
		{"EY1", "EH2", true},
		{"AH0", "ER1", true},
		{"OW1", "AO1", true},
		{"T", "S", false},
		{"M", "N", false},
		{"AE1", "AA1", false},
		{"AY1", "AW1", false},
	}
	for _, tt := range tests {
		if got := tt.a.Class() == tt.b.Class(); got != tt.same {
			t.Errorf("Class(%q) == Class(%q) is %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}

	if got := Phone("QQ2").Class(); got != "QQ" {
		t.Errorf("Phone(QQ2).Class() = %q, want singleton %q", got, "QQ")
	}
}

func TestParseJoinPhones(t *testing.T) {
	got := ParsePhones("  K AE1   T ")
	want := []Phone{"K", "AE1", "T"}
	if !slices.Equal(got, want) {
		t.Fatalf("ParsePhones = %v, want %v", got, want)
	}
	if s := JoinPhones(got); s != "K AE1 T" {
		t.Errorf("JoinPhones = %q, want %q", s, "K AE1 T")
	}
}
