package query

import (
	"github.com/nikbrunner/dm/internal/model"
	"github.com/sahilm/fuzzy"
)

// Match is one fuzzy search hit.
type Match struct {
	Entry
	MatchedIndexes []int
	Score          int
}

// entryNames implements fuzzy.Source over an entry slice.
type entryNames []Entry

func (e entryNames) String(i int) string { return e[i].Name }
func (e entryNames) Len() int            { return len(e) }

// FuzzyMatch searches all bookmark names with fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzyMatch(store *model.Store, q string) []Match {
	if q == "" {
		return nil
	}
	return FuzzyMatchEntries(Filter(store, All), q)
}

// FuzzyMatchEntries fuzzy-matches q against an already-built entry
// slice. An empty query returns every entry in its given order.
func FuzzyMatchEntries(entries []Entry, q string) []Match {
	if q == "" {
		results := make([]Match, len(entries))
		for i, e := range entries {
			results[i] = Match{Entry: e}
		}
		return results
	}

	matches := fuzzy.FindFrom(q, entryNames(entries))

	results := make([]Match, len(matches))
	for i, m := range matches {
		results[i] = Match{
			Entry:          entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
