package resolve

import (
	"sort"

	"proplines/internal/pkg/models"
)

// Index holds the lookup structures built once over the reference dataset:
// an exact-key map and a token-inverted index for partial lookups. Read-only
// after BuildIndex returns, so concurrent Match calls are safe.
type Index struct {
	norm    *Normalizer
	entries []indexEntry
	exact   map[string][]int
	tokens  map[string][]int
}

type indexEntry struct {
	ref  models.ReferenceEntity
	key  Key
	team string
}

// BuildIndex indexes the reference entities under their normalized keys.
// Entities normalizing to an empty key are skipped: they can never match.
// An empty reference set yields an empty index; lookups just return nothing.
func BuildIndex(norm *Normalizer, refs []models.ReferenceEntity) *Index {
	ix := &Index{
		norm:   norm,
		exact:  make(map[string][]int),
		tokens: make(map[string][]int),
	}
	for _, ref := range refs {
		key := norm.Normalize(ref.Player)
		if key.IsEmpty() {
			continue
		}
		id := len(ix.entries)
		ix.entries = append(ix.entries, indexEntry{
			ref:  ref,
			key:  key,
			team: norm.NormalizeTeam(ref.Team),
		})
		ix.exact[key.String()] = append(ix.exact[key.String()], id)
		seen := make(map[string]bool, len(key.Tokens))
		for _, tok := range key.Tokens {
			if seen[tok] {
				continue
			}
			seen[tok] = true
			ix.tokens[tok] = append(ix.tokens[tok], id)
		}
	}
	return ix
}

// Len returns the number of indexed reference entities.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// exactLookup returns the ids of entities sharing the exact normalized key,
// in insertion order.
func (ix *Index) exactLookup(key Key) []int {
	return ix.exact[key.String()]
}

// tokenLookup returns the ids of entities sharing at least one token with the
// key, deduplicated and sorted ascending so downstream scoring iterates in a
// stable order.
func (ix *Index) tokenLookup(key Key) []int {
	set := make(map[int]bool)
	for _, tok := range key.Tokens {
		for _, id := range ix.tokens[tok] {
			set[id] = true
		}
	}
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
