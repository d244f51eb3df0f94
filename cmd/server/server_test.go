package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versewright/rhyme"
	"github.com/versewright/rhyme/internal/config"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.Lexicon.DataDir = "../../data"
	cfg.Server.MaxLines = 4

	lx, err := loadLexicon(cfg)
	require.NoError(t, err)
	return newHandler(cfg, lx, rhyme.New(lx))
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAnalyse(t *testing.T) {
	h := newTestHandler(t)
	rec := post(t, h, "/api/analyse", `{"lines":["stayed he","lady"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp analyseResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Rhymes)
	assert.True(t, resp.Fuzzy)
	assert.Equal(t, []string{"EY1", "D", "HH", "IY1"}, resp.Rime)
	assert.Equal(t, "eɪdhi", resp.RimeIPA)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, "he", resp.Lines[0].RhymeWord)
	assert.Equal(t, []string{"VERB(stayed)", "PAST(stayed)", "ROOT(he)"}, resp.Lines[0].RimeMorphemes)
	assert.Equal(t, 3, resp.Lines[0].MorphemeCount)
}

func TestAnalyseNoRhyme(t *testing.T) {
	h := newTestHandler(t)
	rec := post(t, h, "/api/analyse", `{"lines":["the dog","the cat"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyseResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Rhymes)
	assert.Empty(t, resp.Rime)
}

func TestAnalyseErrors(t *testing.T) {
	h := newTestHandler(t)
	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{"lines":`, http.StatusBadRequest},
		{"empty", `{"lines":[]}`, http.StatusBadRequest},
		{"one_line", `{"lines":["the cat"]}`, http.StatusBadRequest},
		{"unknown_word", `{"lines":["the cat","xyzzy"]}`, http.StatusBadRequest},
		{"too_many_lines", `{"lines":["a","a","a","a","a"]}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, "/api/analyse", tt.body)
			assert.Equal(t, tt.want, rec.Code)

			var resp errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestBatch(t *testing.T) {
	h := newTestHandler(t)
	rec := post(t, h, "/api/batch", `{"groups":[["the cat","a hat"],["the dog","the cat"]]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp batchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, []string{"AE1", "T"}, resp.Results[0].Rime)
	assert.False(t, resp.Results[1].Rhymes)
}

func TestBatchErrors(t *testing.T) {
	h := newTestHandler(t)
	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{"groups":`, http.StatusBadRequest},
		{"empty", `{"groups":[]}`, http.StatusBadRequest},
		{"short_group", `{"groups":[["the cat","a hat"],["the cat"]]}`, http.StatusBadRequest},
		{"too_many_lines", `{"groups":[["the cat","a hat"],["the cat","a hat","the mat"]]}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, post(t, h, "/api/batch", tt.body).Code)
		})
	}
	assert.Equal(t, http.StatusMethodNotAllowed, get(t, h, "/api/batch").Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	assert.Equal(t, http.StatusMethodNotAllowed, get(t, h, "/api/analyse").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, post(t, h, "/api/pronounce?word=cat", "").Code)
}

func TestScheme(t *testing.T) {
	h := newTestHandler(t)
	body := `{"lines":["The sun will rise","I love the night","","Before my eyes","A shining light"]}`
	rec := post(t, h, "/api/scheme", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp schemeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ABAB", resp.Scheme)
	require.Len(t, resp.Groups, 2)
	assert.Equal(t, []numberedLineJSON{{1, "The sun will rise"}, {3, "Before my eyes"}}, resp.Groups[0].Lines)
}

func TestPoem(t *testing.T) {
	h := newTestHandler(t)
	rec := post(t, h, "/api/poem", `{"lines":["The sun will rise","I love the night","Before my eyes"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp poemResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ABA", resp.Scheme)
	require.Len(t, resp.Rows, 3)
	assert.True(t, resp.Rows[0].Analysed)
	assert.Equal(t, "AY1 Z", resp.Rows[0].RimePhones)
	assert.False(t, resp.Rows[2].Analysed)
}

func TestPronounce(t *testing.T) {
	h := newTestHandler(t)
	rec := get(t, h, "/api/pronounce?word=about")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp pronounceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"AH0", "B", "AW1", "T"}, resp.Phones)
	assert.Equal(t, "əˈbaʊt", resp.IPA)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/pronounce?word=xyzzy").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/pronounce").Code)
}

func TestDecompose(t *testing.T) {
	h := newTestHandler(t)
	rec := get(t, h, "/api/decompose?line="+url.QueryEscape("the cats"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp decomposeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Words, 2)
	cats := resp.Words[1]
	require.Len(t, cats.Morphemes, 2)
	assert.Equal(t, "NOUN", cats.Morphemes[0].Label)
	assert.Equal(t, "PL", cats.Morphemes[1].Label)
	assert.Equal(t, []string{"Z"}, cats.Morphemes[1].Phones)
	assert.Contains(t, resp.Gloss, "NOUN-PL")
	assert.Equal(t, "cat", cats.Morphemes[0].Lemma)
	assert.Empty(t, cats.Morphemes[1].Lemma)

	rec = get(t, h, "/api/decompose?line=went")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decomposeResponse{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Words, 1)
	assert.Equal(t, "go", resp.Words[0].Morphemes[0].Lemma)
}

func TestRequestID(t *testing.T) {
	h := newTestHandler(t)
	rec := get(t, h, "/api/pronounce?word=cat")
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/pronounce?word=cat", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/pronounce?word=cat", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	h := newTestHandler(t)
	post(t, h, "/api/analyse", `{"lines":["the cat","a hat"]}`)

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "rhyme_http_requests_total")
	assert.Contains(t, body, `rhyme_rime_matches_total{kind="exact"}`)
}
