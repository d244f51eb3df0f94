package rhyme

import "strings"

// Scheme is the rhyme scheme of a poem: one letter per line.
type Scheme struct {
	// Letters holds the scheme letter of each line, in line order.
	Letters []string
	// Lines holds the trimmed text of each line.
	Lines []string
}

// NumberedLine is a poem line with its 1-based position.
type NumberedLine struct {
	Number int
	Text   string
}

// Group is the set of lines sharing one scheme letter.
type Group struct {
	Letter string
	Lines  []NumberedLine
}

// String returns the scheme as a compact pattern such as "ABAB".
func (s *Scheme) String() string {
	return strings.Join(s.Letters, "")
}

// Groups returns the lines of each scheme letter, ordered by the first
// appearance of the letter.
func (s *Scheme) Groups() []Group {
	var groups []Group
	index := make(map[string]int)
	for i, letter := range s.Letters {
		g, ok := index[letter]
		if !ok {
			g = len(groups)
			index[letter] = g
			groups = append(groups, Group{Letter: letter})
		}
		var text string
		if i < len(s.Lines) {
			text = s.Lines[i]
		}
		groups[g].Lines = append(groups[g].Lines, NumberedLine{Number: i + 1, Text: text})
	}
	return groups
}

// AssignScheme assigns scheme letters to tails in a single left-to-right
// pass. Each unassigned tail opens a new group, and every later unassigned
// tail whose two-tail alignment with the group's first tail is non-empty
// joins it. Members are never compared with each other, so a group may hold
// two lines that would not rhyme on their own.
func AssignScheme(tails []Tail) []string {
	scheme := make([]string, len(tails))
	next := 0
	for i := range tails {
		if scheme[i] != "" {
			continue
		}
		scheme[i] = schemeLetter(next)
		next++
		for j := i + 1; j < len(tails); j++ {
			if scheme[j] != "" {
				continue
			}
			if slices, _ := FindCommonRime(tails[i], tails[j]); len(slices[0]) > 0 {
				scheme[j] = scheme[i]
			}
		}
	}
	return scheme
}

// schemeLetter returns the label of the n-th group (0-based):
// A..Z, then AA, AB, and so on.
func schemeLetter(n int) string {
	var b []byte
	for n >= 0 {
		b = append([]byte{byte('A' + n%26)}, b...)
		n = n/26 - 1
	}
	return string(b)
}

// detectScheme implements DetectScheme.
func (a *Analyser) detectScheme(lines []string) (*Scheme, error) {
	texts, parsed, err := a.decomposeAll(lines)
	if err != nil {
		return nil, err
	}
	tails := make([]Tail, len(parsed))
	for i, words := range parsed {
		tails[i] = a.tailOf(words)
	}
	return &Scheme{Letters: AssignScheme(tails), Lines: texts}, nil
}
