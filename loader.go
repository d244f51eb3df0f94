package rhyme

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadDictionary reads a pronouncing dictionary in CMU format into
// lx.pronunciations. Format: "WORD  PH1 PH2 ...", ";;;" comments,
// alternative pronunciations marked "WORD(2)". The first pronunciation of
// a word is kept.
func (lx *Lexicon) loadDictionary(dataDir string) error {
	path := filepath.Join(dataDir, lx.dictionaryFile)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", lx.dictionaryFile, err)
	}
	defer f.Close()

	if err := lx.readDictionary(f); err != nil {
		return fmt.Errorf("read %s: %w", lx.dictionaryFile, err)
	}
	return nil
}

// readDictionary parses CMU-format entries from r.
func (lx *Lexicon) readDictionary(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";;;") {
			continue
		}
		word, phones, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		// strip variant markers like "(1)", "(2)"
		if idx := strings.Index(word, "("); idx > 0 {
			word = word[:idx]
		}
		lx.Add(word, ParsePhones(phones))
	}
	return sc.Err()
}

// ruleEntry is the YAML form of an inflection rule.
type ruleEntry struct {
	Label     string            `yaml:"label"`
	POS       string            `yaml:"pos"`
	Endings   []string          `yaml:"endings"`
	Suffixes  [][]string        `yaml:"suffixes"`
	Normalize map[string]string `yaml:"normalize"`
}

// loadRules reads the ordered inflection rules from the rules file.
func (lx *Lexicon) loadRules(dataDir string) error {
	f, err := os.Open(filepath.Join(dataDir, lx.rulesFile))
	if err != nil {
		return fmt.Errorf("open %s: %w", lx.rulesFile, err)
	}
	defer f.Close()

	var raw []ruleEntry
	if err := yaml.NewDecoder(f).Decode(&raw); err != nil && err != io.EOF {
		return fmt.Errorf("decode %s: %w", lx.rulesFile, err)
	}
	for i, e := range raw {
		if e.Label == "" || e.POS == "" {
			return fmt.Errorf("%s: rule %d: label and pos are required", lx.rulesFile, i)
		}
		r := inflectionRule{
			label:     e.Label,
			pos:       e.POS,
			endings:   e.Endings,
			normalize: make(map[Phone]Phone, len(e.Normalize)),
		}
		for _, s := range e.Suffixes {
			r.suffixes = append(r.suffixes, ParsePhones(strings.Join(s, " ")))
		}
		for from, to := range e.Normalize {
			r.normalize[Phone(from)] = Phone(to)
		}
		lx.rules = append(lx.rules, r)
	}
	return nil
}

// irregularEntry is the YAML form of an irregular inflected word.
type irregularEntry struct {
	Lemma string `yaml:"lemma"`
	POS   string `yaml:"pos"`
	Label string `yaml:"label"`
}

// loadIrregulars reads the irregular forms table. A missing file is not an
// error: the lexicon then has no irregular forms.
func (lx *Lexicon) loadIrregulars(dataDir string) error {
	f, err := os.Open(filepath.Join(dataDir, lx.irregularsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", lx.irregularsFile, err)
	}
	defer f.Close()

	raw := make(map[string]irregularEntry)
	if err := yaml.NewDecoder(f).Decode(&raw); err != nil && err != io.EOF {
		return fmt.Errorf("decode %s: %w", lx.irregularsFile, err)
	}
	for word, e := range raw {
		if e.POS == "" || e.Label == "" {
			return fmt.Errorf("%s: %q: pos and label are required", lx.irregularsFile, word)
		}
		lx.irregulars[NormalizeKey(word)] = irregularForm{lemma: e.Lemma, pos: e.POS, label: e.Label}
	}
	return nil
}
