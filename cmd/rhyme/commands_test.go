package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const poem = `The sun will rise
I love the night

Before my eyes
A shining light
`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--data", "../../data", "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyseCmd(t *testing.T) {
	out, err := execute(t, "", "analyse", "The cat sat on the mat.", "I wore a hat!")
	require.NoError(t, err)
	assert.Contains(t, out, "Common rime: AE1 T  [æt]  (exact match)")
	assert.Contains(t, out, `── Line 2: "I wore a hat!" ──`)
}

func TestAnalyseCmdNeedsTwoLines(t *testing.T) {
	_, err := execute(t, "", "analyse", "only one")
	require.Error(t, err)
}

func TestSchemeCmd(t *testing.T) {
	out, err := execute(t, poem, "scheme", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Rhyme scheme: ABAB")
	assert.Contains(t, out, "  A    1  The sun will rise  rime(1°): /aɪz/\n")
	assert.Contains(t, out, "  B    4  A shining light  rime(1°): /aɪt/\n")
}

func TestSchemeCmdSecondaryStress(t *testing.T) {
	out, err := execute(t, "the blackbird\na bird\n", "scheme", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Rhyme scheme: AA")
	assert.Contains(t, out, "the blackbird  rime(2°): /ɝd/  alt(1°): /ækbɝd/")
}

func TestSchemeCmdSeveralFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte(poem), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("the cat\nthe dog\na hat\n"), 0o644))

	out, err := execute(t, "", "scheme", first, second)
	require.NoError(t, err)
	assert.Contains(t, out, first+"\nRhyme scheme: ABAB")
	assert.Contains(t, out, second+"\nRhyme scheme: ABA")
}

func TestCoupletsCmd(t *testing.T) {
	input := "The cat sat on the mat.\nI wore a hat!\nstayed he\nlady\nthe dog\nxyzzy\nodd line\n"
	out, err := execute(t, input, "couplets", "-")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header plus three couplets; the odd line is dropped")

	assert.Equal(t, "couplet", records[0][0])
	assert.Equal(t, "line2_morpheme_count", records[0][13])
	assert.Equal(t, []string{
		"1", "1", "2", "The cat sat on the mat.", "I wore a hat!",
		"AE1 T", "æt", "false", "mat", "hat", "ROOT(mat)", "ROOT(hat)", "1", "1",
	}, records[1])
	assert.Equal(t, []string{
		"2", "3", "4", "stayed he", "lady",
		"EY1 D HH IY1", "eɪdhi", "true", "stayed | he", "lady",
		"VERB(stayed) + PAST(stayed) + ROOT(he)", "ROOT(lady)", "3", "1",
	}, records[2])
	assert.Equal(t, []string{"3", "5", "6", "the dog", "xyzzy", "", "", "", "", "", "", "", "", ""}, records[3])
}

func TestPoemCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	_, err := execute(t, poem, "poem", "-", "-o", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 5)
	assert.Equal(t, "scheme_letter", records[0][0])
	assert.Equal(t, []string{"A", "1", "The sun will rise", "AY1 Z", "aɪz", "false", "rise", "ROOT(rise)", "1"}, records[1])
	assert.Equal(t, "B", records[3][0])
}

func TestGlossCmd(t *testing.T) {
	out, err := execute(t, "", "gloss", "cats")
	require.NoError(t, err)
	assert.Equal(t, " cats   \n/ˈkæt-z/\n NOUN-PL\n", out)
}

func TestInvalidLogLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "loud", "gloss", "cats"})
	require.ErrorContains(t, cmd.Execute(), "loud")
}

func TestMissingPoemFile(t *testing.T) {
	_, err := execute(t, "", "scheme", filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
