package search

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/GabrieleMelucci/cedictserve/pkg/cedict"
)

// IndexedEntry is a dictionary entry prepared for scoring: definitions
// split out of the raw English field and the script fields normalized
// once. The original strings are kept for output.
type IndexedEntry struct {
	Traditional string
	Simplified  string
	Pinyin      string
	Definitions []string

	normTraditional string
	normSimplified  string
	normPinyin      string
}

// Index is the precomputed search index. It is built once at startup,
// never mutated afterwards, and safe for concurrent readers. Entries
// keep the dictionary file order, which is the tie-break order for
// equally scored results.
//
// Two patricia tries keyed by normalized strings back the exact-match
// mode: one over the script fields, one over the definitions. Trie items
// are ordinal lists into entries, kept in dictionary order.
type Index struct {
	entries []IndexedEntry
	script  *patricia.Trie
	gloss   *patricia.Trie
}

// BuildIndex derives the index from raw dictionary entries, in input
// order, 1:1 and without mutating the input. norm is the shared
// normalizer; the same instance should be handed to the engine so query
// traffic reuses its cache.
func BuildIndex(raw []cedict.Entry, norm *Normalizer) *Index {
	idx := &Index{
		entries: make([]IndexedEntry, 0, len(raw)),
		script:  patricia.NewTrie(),
		gloss:   patricia.NewTrie(),
	}

	for ord, e := range raw {
		entry := IndexedEntry{
			Traditional:     e.Traditional,
			Simplified:      e.Simplified,
			Pinyin:          e.Pinyin,
			Definitions:     splitDefinitions(e.English),
			normTraditional: norm.Normalize(e.Traditional),
			normSimplified:  norm.Normalize(e.Simplified),
			normPinyin:      norm.Normalize(e.Pinyin),
		}
		idx.entries = append(idx.entries, entry)

		addExact(idx.script, entry.normSimplified, ord)
		addExact(idx.script, entry.normTraditional, ord)
		addExact(idx.script, entry.normPinyin, ord)
		for _, def := range entry.Definitions {
			addExact(idx.gloss, norm.Normalize(def), ord)
		}
	}

	log.Debugf("Indexed %d dictionary entries", len(idx.entries))
	return idx
}

// Len reports the number of indexed entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// exactMatches returns the ordinals of entries whose normalized fields
// (script or gloss, per mode) equal key, in dictionary order.
func (ix *Index) exactMatches(mode Mode, key string) []int {
	trie := ix.script
	if mode == GlossMode {
		trie = ix.gloss
	}
	item := trie.Get(patricia.Prefix(key))
	if item == nil {
		return nil
	}
	return item.([]int)
}

// splitDefinitions splits the raw English field on "/" and trims each
// piece. Order is preserved and duplicates are kept.
func splitDefinitions(english string) []string {
	if english == "" {
		return nil
	}
	parts := strings.Split(english, "/")
	defs := make([]string, len(parts))
	for i, p := range parts {
		defs[i] = strings.TrimSpace(p)
	}
	return defs
}

// addExact appends ord to the ordinal list stored under key. Several
// fields of one entry can normalize to the same key; the ordinal is
// recorded once.
func addExact(trie *patricia.Trie, key string, ord int) {
	if key == "" {
		return
	}
	prefix := patricia.Prefix(key)
	item := trie.Get(prefix)
	if item == nil {
		trie.Set(prefix, []int{ord})
		return
	}
	ords := item.([]int)
	if ords[len(ords)-1] == ord {
		return
	}
	trie.Set(prefix, append(ords, ord))
}
