package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/versewright/rhyme"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// ---- JSON request/response types ----------------------------------------

type linesRequest struct {
	Lines []string `json:"lines"`
}

type batchRequest struct {
	Groups [][]string `json:"groups"`
}

type morphemeJSON struct {
	Label  string   `json:"label"`
	Phones []string `json:"phones"`
	IPA    string   `json:"ipa"`
	Lemma  string   `json:"lemma,omitempty"`
}

type wordJSON struct {
	Text      string         `json:"text"`
	Morphemes []morphemeJSON `json:"morphemes"`
}

type phoneJSON struct {
	Phone string `json:"phone"`
	IPA   string `json:"ipa"`
	Label string `json:"label"`
	Word  string `json:"word"`
}

type lineJSON struct {
	Text          string      `json:"text"`
	RhymeWord     string      `json:"rhyme_word"`
	Parse         []wordJSON  `json:"parse"`
	Rime          []phoneJSON `json:"rime"`
	RimeMorphemes []string    `json:"rime_morphemes"`
	MorphemeCount int         `json:"morpheme_count"`
}

type analyseResponse struct {
	Rhymes  bool       `json:"rhymes"`
	Rime    []string   `json:"rime"`
	RimeIPA string     `json:"rime_ipa"`
	Fuzzy   bool       `json:"fuzzy"`
	Lines   []lineJSON `json:"lines"`
}

type batchResponse struct {
	Results []analyseResponse `json:"results"`
}

type numberedLineJSON struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

type groupJSON struct {
	Letter string             `json:"letter"`
	Lines  []numberedLineJSON `json:"lines"`
}

type schemeResponse struct {
	Scheme  string      `json:"scheme"`
	Letters []string    `json:"letters"`
	Groups  []groupJSON `json:"groups"`
}

type rowJSON struct {
	Letter        string   `json:"letter"`
	LineNumber    int      `json:"line_number"`
	Text          string   `json:"text"`
	Analysed      bool     `json:"analysed"`
	RimePhones    string   `json:"rime_phones,omitempty"`
	RimeIPA       string   `json:"rime_ipa,omitempty"`
	Fuzzy         bool     `json:"fuzzy"`
	RhymeWords    []string `json:"rhyme_words,omitempty"`
	RimeMorphemes []string `json:"rime_morphemes,omitempty"`
	MorphemeCount int      `json:"morpheme_count"`
}

type poemResponse struct {
	Scheme string    `json:"scheme"`
	Rows   []rowJSON `json:"rows"`
}

type pronounceResponse struct {
	Word   string   `json:"word"`
	Phones []string `json:"phones"`
	IPA    string   `json:"ipa"`
}

type decomposeResponse struct {
	Line  string     `json:"line"`
	Words []wordJSON `json:"words"`
	Gloss string     `json:"gloss"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func phoneStrings(phones []rhyme.Phone) []string {
	out := make([]string, len(phones))
	for i, p := range phones {
		out[i] = string(p)
	}
	return out
}

func toWordsJSON(words []rhyme.Word) []wordJSON {
	out := make([]wordJSON, 0, len(words))
	for _, w := range words {
		ms := make([]morphemeJSON, 0, len(w.Morphemes))
		for _, m := range w.Morphemes {
			ms = append(ms, morphemeJSON{
				Label:  m.Label.String(),
				Phones: phoneStrings(m.Phones),
				IPA:    rhyme.ToIPA(m.Phones),
				Lemma:  m.Lemma,
			})
		}
		out = append(out, wordJSON{Text: w.Text, Morphemes: ms})
	}
	return out
}

func toAnalyseResponse(res *rhyme.Result) analyseResponse {
	out := analyseResponse{
		Rhymes:  res.Rhymes(),
		Rime:    phoneStrings(res.RimePhones),
		RimeIPA: rhyme.ToIPA(res.RimePhones),
		Fuzzy:   res.Fuzzy,
		Lines:   make([]lineJSON, 0, len(res.Lines)),
	}
	for _, l := range res.Lines {
		lj := lineJSON{
			Text:          l.Text,
			RhymeWord:     l.RhymeWord,
			Parse:         toWordsJSON(l.Parse),
			Rime:          make([]phoneJSON, 0, len(l.Rime)),
			RimeMorphemes: []string{},
			MorphemeCount: l.MorphemeCount,
		}
		for _, ap := range l.Rime {
			lj.Rime = append(lj.Rime, phoneJSON{
				Phone: string(ap.Phone),
				IPA:   rhyme.PhoneIPA(ap.Phone),
				Label: ap.Label.String(),
				Word:  ap.Word,
			})
		}
		for _, m := range l.Rime.Morphemes() {
			lj.RimeMorphemes = append(lj.RimeMorphemes, m.String())
		}
		out.Lines = append(out.Lines, lj)
	}
	return out
}

func toSchemeResponse(s *rhyme.Scheme) schemeResponse {
	out := schemeResponse{Scheme: s.String(), Letters: s.Letters}
	for _, g := range s.Groups() {
		gj := groupJSON{Letter: g.Letter}
		for _, l := range g.Lines {
			gj.Lines = append(gj.Lines, numberedLineJSON{Number: l.Number, Text: l.Text})
		}
		out.Groups = append(out.Groups, gj)
	}
	return out
}

func toPoemResponse(pa *rhyme.PoemAnalysis) poemResponse {
	out := poemResponse{Scheme: pa.Scheme.String()}
	for _, r := range pa.Rows() {
		out.Rows = append(out.Rows, rowJSON{
			Letter:        r.Letter,
			LineNumber:    r.LineNumber,
			Text:          r.Text,
			Analysed:      r.Analysed,
			RimePhones:    r.RimePhones,
			RimeIPA:       r.RimeIPA,
			Fuzzy:         r.Fuzzy,
			RhymeWords:    r.RhymeWords,
			RimeMorphemes: r.RimeMorphemes,
			MorphemeCount: r.MorphemeCount,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeAnalysisError maps engine errors to client or server errors.
func writeAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, rhyme.ErrTooFewLines), errors.Is(err, rhyme.ErrUnknownWord):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("analysis failed", "request_id", requestID(r.Context()), "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// readLines decodes a linesRequest body. When dropBlank is set, blank
// lines are removed. It writes the error response itself and reports
// whether the handler should continue.
func readLines(w http.ResponseWriter, r *http.Request, maxLines int, dropBlank bool) ([]string, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return nil, false
	}
	var body linesRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "body must be JSON with a 'lines' array")
		return nil, false
	}

	lines := body.Lines
	if dropBlank {
		lines = nil
		for _, l := range body.Lines {
			if strings.TrimSpace(l) != "" {
				lines = append(lines, l)
			}
		}
	}
	if len(lines) == 0 {
		writeError(w, http.StatusBadRequest, "'lines' must not be empty")
		return nil, false
	}
	if len(lines) > maxLines {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("at most %d lines are accepted", maxLines))
		return nil, false
	}
	return lines, true
}

// ---- handlers -----------------------------------------------------------

func handleAnalyse(an *rhyme.Analyser, maxLines int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lines, ok := readLines(w, r, maxLines, false)
		if !ok {
			return
		}
		res, err := an.Analyse(lines)
		if err != nil {
			writeAnalysisError(w, r, err)
			return
		}
		observeResult(res)
		writeJSON(w, http.StatusOK, toAnalyseResponse(res))
	}
}

// handleBatch analyses independent groups of lines concurrently. The
// line limit applies to the total across groups.
func handleBatch(an *rhyme.Analyser, maxLines int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body batchRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&body); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "body must be JSON with a 'groups' array")
			return
		}
		if len(body.Groups) == 0 {
			writeError(w, http.StatusBadRequest, "'groups' must not be empty")
			return
		}
		total := 0
		for _, g := range body.Groups {
			total += len(g)
		}
		if total > maxLines {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("at most %d lines are accepted", maxLines))
			return
		}

		results, err := an.AnalyseBatch(r.Context(), body.Groups)
		if err != nil {
			writeAnalysisError(w, r, err)
			return
		}
		out := batchResponse{Results: make([]analyseResponse, 0, len(results))}
		for _, res := range results {
			observeResult(res)
			out.Results = append(out.Results, toAnalyseResponse(res))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleScheme(an *rhyme.Analyser, maxLines int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lines, ok := readLines(w, r, maxLines, true)
		if !ok {
			return
		}
		s, err := an.DetectScheme(lines)
		if err != nil {
			writeAnalysisError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toSchemeResponse(s))
	}
}

func handlePoem(an *rhyme.Analyser, maxLines int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lines, ok := readLines(w, r, maxLines, true)
		if !ok {
			return
		}
		pa, err := an.AnalysePoem(lines)
		if err != nil {
			writeAnalysisError(w, r, err)
			return
		}
		for _, res := range pa.Results {
			observeResult(res)
		}
		writeJSON(w, http.StatusOK, toPoemResponse(pa))
	}
}

func handlePronounce(lx *rhyme.Lexicon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		if word == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		phones, ok := lx.Pronounce(word)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("word %q not found", word))
			return
		}
		writeJSON(w, http.StatusOK, pronounceResponse{
			Word:   word,
			Phones: phoneStrings(phones),
			IPA:    rhyme.ToIPAStressed(phones),
		})
	}
}

func handleDecompose(lx *rhyme.Lexicon) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		line := r.URL.Query().Get("line")
		if strings.TrimSpace(line) == "" {
			writeError(w, http.StatusBadRequest, "missing 'line' query parameter")
			return
		}
		words, err := lx.Decompose(line)
		if err != nil {
			writeAnalysisError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, decomposeResponse{
			Line:  line,
			Words: toWordsJSON(words),
			Gloss: rhyme.FormatGloss(words),
		})
	}
}
