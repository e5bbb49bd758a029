/*
Package search implements fuzzy and exact lookup over a CC-CEDICT
dictionary.

The index is built once at startup and shared read-only by all queries.
A query is normalized, scored with a directional greedy overlap measure
against every entry's candidate fields, thresholded, ranked and capped.
Scores never leave the engine.
*/
package search

import (
	"sort"
	"strings"
)

// Defaults carried over from the original deployment. Both are plain
// configuration values with no derived rationale.
const (
	DefaultMinScore   = 0.8
	DefaultMaxResults = 15
)

// DefaultLang selects ScriptMode; every other lang value selects GlossMode.
const DefaultLang = "chinese"

// Mode selects which candidate fields of an entry a query is scored
// against.
type Mode int

const (
	// ScriptMode matches the simplified, traditional and pinyin fields.
	ScriptMode Mode = iota
	// GlossMode matches the split English definitions.
	GlossMode
)

// ModeForLang maps the request lang parameter onto a Mode. An absent
// value defaults to DefaultLang.
func ModeForLang(lang string) Mode {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" || lang == DefaultLang {
		return ScriptMode
	}
	return GlossMode
}

// ResultEntry is one returned dictionary entry. The internal best score
// is intentionally absent.
type ResultEntry struct {
	Traditional string   `json:"traditional"`
	Simplified  string   `json:"simplified"`
	Pinyin      string   `json:"pinyin"`
	Definitions []string `json:"definitions"`
}

// Result is a ranked, capped response to a single query.
type Result struct {
	SearchTerm string        `json:"search_term"`
	Count      int           `json:"count"`
	Results    []ResultEntry `json:"results"`
}

// Engine answers queries against an immutable Index. Every call is a
// pure scan; the only shared mutable state is the normalizer cache, so
// arbitrarily many Search calls may run concurrently.
type Engine struct {
	index      *Index
	norm       *Normalizer
	minScore   float64
	maxResults int
}

// NewEngine wires an engine to a built index. minScore is the strict
// lower bound on kept scores, maxResults caps the response; non-positive
// or out-of-range values fall back to the defaults.
func NewEngine(index *Index, norm *Normalizer, minScore float64, maxResults int) *Engine {
	if minScore <= 0 || minScore >= 1 {
		minScore = DefaultMinScore
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Engine{
		index:      index,
		norm:       norm,
		minScore:   minScore,
		maxResults: maxResults,
	}
}

// Search runs the fuzzy-ranked lookup. Entries whose best score across
// the mode's candidate fields is strictly above the threshold are kept,
// sorted by descending score with dictionary order breaking ties, and
// capped.
func (e *Engine) Search(query, lang string) (*Result, error) {
	term, normQuery, err := e.prepare(query)
	if err != nil {
		return nil, err
	}
	mode := ModeForLang(lang)

	type scored struct {
		ord   int
		score float64
	}
	var kept []scored

	for ord := range e.index.entries {
		entry := &e.index.entries[ord]
		var best float64

		switch mode {
		case ScriptMode:
			best = QuickRatio(normQuery, entry.normSimplified)
			if r := QuickRatio(normQuery, entry.normTraditional); r > best {
				best = r
			}
			if r := QuickRatio(normQuery, entry.normPinyin); r > best {
				best = r
			}
		case GlossMode:
			for _, def := range entry.Definitions {
				if r := QuickRatio(normQuery, e.norm.Normalize(def)); r > best {
					best = r
				}
			}
		}

		if best > e.minScore {
			kept = append(kept, scored{ord: ord, score: best})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})
	if len(kept) > e.maxResults {
		kept = kept[:e.maxResults]
	}

	results := make([]ResultEntry, len(kept))
	for i, s := range kept {
		results[i] = e.resultAt(s.ord)
	}
	return &Result{SearchTerm: term, Count: len(results), Results: results}, nil
}

// SearchExact runs the exact-match variant: only entries with a
// normalized field equal to the normalized query are returned, in
// dictionary order, capped. It is a distinct mode and is never merged
// with the fuzzy ranking.
func (e *Engine) SearchExact(query, lang string) (*Result, error) {
	term, normQuery, err := e.prepare(query)
	if err != nil {
		return nil, err
	}

	ords := e.index.exactMatches(ModeForLang(lang), normQuery)
	if len(ords) > e.maxResults {
		ords = ords[:e.maxResults]
	}

	results := make([]ResultEntry, len(ords))
	for i, ord := range ords {
		results[i] = e.resultAt(ord)
	}
	return &Result{SearchTerm: term, Count: len(results), Results: results}, nil
}

// prepare validates the raw query and returns the trimmed term and its
// normalized form. No index scan happens on failure.
func (e *Engine) prepare(query string) (term, normQuery string, err error) {
	term = strings.TrimSpace(query)
	if term == "" {
		return "", "", ErrEmptyQuery
	}
	normQuery = e.norm.Normalize(term)
	if normQuery == "" {
		return "", "", ErrInvalidQuery
	}
	return term, normQuery, nil
}

func (e *Engine) resultAt(ord int) ResultEntry {
	entry := &e.index.entries[ord]
	return ResultEntry{
		Traditional: entry.Traditional,
		Simplified:  entry.Simplified,
		Pinyin:      entry.Pinyin,
		Definitions: entry.Definitions,
	}
}
