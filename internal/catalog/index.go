package catalog

import (
	"cmp"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	// fuzzyThreshold bounds what the fuzzy structure reports at all.
	fuzzyThreshold = 0.55
	// minFuzzyLen is the shortest query the fuzzy structure answers.
	minFuzzyLen = 2
)

// Collision records a normalized label claimed by more than one item.
// The first item keeps the label.
type Collision struct {
	Label string
	Kept  string
	Lost  string
}

// Index is the searchable form of one catalog. It is never mutated after
// NewIndex returns and is safe for concurrent readers.
type Index struct {
	name       string
	items      []Item
	byName     map[string]int
	byID       map[string]int
	fuzzy      []fuzzyDoc
	collisions []Collision
}

type fuzzyDoc struct {
	item   int
	fields []string
}

// FuzzyResult is one hit from Index.Fuzzy. Score is 0 for a perfect match and
// grows towards 1 as the query diverges.
type FuzzyResult struct {
	Item  Item
	Score float64
}

// NewIndex builds an index over entries in the given order. Name and alias
// collisions are resolved first-writer-wins and logged at debug level.
func NewIndex(name string, entries []Entry, logger *slog.Logger) *Index {
	idx := &Index{
		name:   name,
		items:  make([]Item, 0, len(entries)),
		byName: make(map[string]int),
		byID:   make(map[string]int),
	}

	for _, e := range entries {
		idx.items = append(idx.items, newItem(name, e))
	}

	for i := range idx.items {
		id := idx.uniqueID(idx.items[i].ID, i)
		idx.items[i].ID = id
		idx.byID[id] = i
	}

	for i, it := range idx.items {
		for _, label := range it.Norms() {
			if label == "" {
				continue
			}
			if prev, ok := idx.byName[label]; ok {
				if prev != i {
					idx.collisions = append(idx.collisions, Collision{
						Label: label,
						Kept:  idx.items[prev].ID,
						Lost:  it.ID,
					})
				}
				continue
			}
			idx.byName[label] = i
		}
		idx.fuzzy = append(idx.fuzzy, fuzzyDoc{item: i, fields: fuzzyFields(it)})
	}

	if logger != nil && len(idx.collisions) > 0 {
		logger.Debug("catalog label collisions", "catalog", name, "count", len(idx.collisions))
	}
	return idx
}

// uniqueID returns id, or a numbered variant of it when the slug is empty or
// already taken by an earlier item.
func (idx *Index) uniqueID(id string, pos int) string {
	if strings.HasSuffix(id, ":") {
		id += "item-" + strconv.Itoa(pos+1)
	}
	if _, taken := idx.byID[id]; !taken {
		return id
	}
	for n := 2; ; n++ {
		cand := id + "-" + strconv.Itoa(n)
		if _, taken := idx.byID[cand]; !taken {
			return cand
		}
	}
}

// fuzzyFields lists the whole normalized labels and their words so a query can
// match anywhere in a multi-word name.
func fuzzyFields(it Item) []string {
	var out []string
	for _, n := range it.Norms() {
		if n == "" {
			continue
		}
		out = append(out, n)
		if words := strings.Fields(n); len(words) > 1 {
			out = append(out, words...)
		}
	}
	return out
}

// Name returns the catalog name.
func (idx *Index) Name() string { return idx.name }

// Len returns the number of items.
func (idx *Index) Len() int { return len(idx.items) }

// Items returns the items in catalog order.
func (idx *Index) Items() []Item { return slices.Clone(idx.items) }

// Collisions returns the labels that were claimed by more than one item.
func (idx *Index) Collisions() []Collision { return slices.Clone(idx.collisions) }

// Lookup finds the item owning an already-normalized name or alias.
func (idx *Index) Lookup(normalized string) (Item, bool) {
	i, ok := idx.byName[normalized]
	if !ok {
		return Item{}, false
	}
	return idx.items[i], true
}

// ByID finds an item by its catalog-qualified id.
func (idx *Index) ByID(id string) (Item, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return Item{}, false
	}
	return idx.items[i], true
}

// Fuzzy scores every item against an already-normalized query by edit
// distance and returns at most limit results with a score at or below the
// index threshold, best first. Ties keep catalog order.
func (idx *Index) Fuzzy(query string, limit int) []FuzzyResult {
	if utf8.RuneCountInString(query) < minFuzzyLen || limit <= 0 {
		return nil
	}

	var out []FuzzyResult
	for _, doc := range idx.fuzzy {
		best := 1.0
		for _, f := range doc.fields {
			if s := distanceScore(query, f); s < best {
				best = s
			}
		}
		if best <= fuzzyThreshold {
			out = append(out, FuzzyResult{Item: idx.items[doc.item], Score: best})
		}
	}

	slices.SortStableFunc(out, func(a, b FuzzyResult) int {
		return cmp.Compare(a.Score, b.Score)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func distanceScore(a, b string) float64 {
	n := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if n == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(n)
}
