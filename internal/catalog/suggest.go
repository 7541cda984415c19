package catalog

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/onlyfootballfans/quiz/internal/textnorm"
)

const (
	// MaxSuggestions caps the length of a suggestion list.
	MaxSuggestions = 10

	minQueryLen    = 2
	prefixOnlyLen  = 2
	minFallbackLen = 3
	fallbackLimit  = 20
	acceptFuzzy    = 0.2
	fuzzyRank      = 0.5
	rankPrefix     = 3
	rankWordPrefix = 2
	rankSubstring  = 1
	rankNoMatch    = 0
)

type ranked struct {
	item Item
	rank float64
}

// Rank scores one item against a normalized query: 3 when a label starts with
// it, 2 when a word of a label does, 1 when a label contains it, else 0.
func Rank(it Item, query string) int {
	labels := it.Norms()
	for _, l := range labels {
		if strings.HasPrefix(l, query) {
			return rankPrefix
		}
	}
	for _, l := range labels {
		for _, w := range strings.Fields(l) {
			if strings.HasPrefix(w, query) {
				return rankWordPrefix
			}
		}
	}
	for _, l := range labels {
		if strings.Contains(l, query) {
			return rankSubstring
		}
	}
	return rankNoMatch
}

// Suggest ranks the items of idx against a raw query and returns at most
// MaxSuggestions items, best rank first and then by display name.
func Suggest(idx *Index, raw string) []Item {
	q := textnorm.Normalize(raw)
	qlen := utf8.RuneCountInString(q)
	if idx == nil || qlen < minQueryLen {
		return []Item{}
	}

	var kept []ranked
	for _, it := range idx.items {
		r := Rank(it, q)
		if qlen <= prefixOnlyLen {
			if r != rankPrefix {
				continue
			}
		} else if r <= rankNoMatch {
			continue
		}
		kept = append(kept, ranked{item: it, rank: float64(r)})
	}

	if len(kept) == 0 && qlen >= minFallbackLen {
		seen := make(map[string]bool)
		for _, fr := range idx.Fuzzy(q, fallbackLimit) {
			if fr.Score > acceptFuzzy || seen[fr.Item.ID] {
				continue
			}
			seen[fr.Item.ID] = true
			kept = append(kept, ranked{item: fr.Item, rank: fuzzyRank})
			if len(kept) >= MaxSuggestions {
				break
			}
		}
	}

	coll := collate.New(language.Und)
	slices.SortStableFunc(kept, func(a, b ranked) int {
		if c := cmp.Compare(b.rank, a.rank); c != 0 {
			return c
		}
		return coll.CompareString(a.item.Name, b.item.Name)
	})

	if len(kept) > MaxSuggestions {
		kept = kept[:MaxSuggestions]
	}
	out := make([]Item, len(kept))
	for i, r := range kept {
		out[i] = r.item
	}
	return out
}

// Suggest loads the named catalog if needed and ranks it against raw.
func (r *Registry) Suggest(ctx context.Context, name, raw string) []Item {
	if utf8.RuneCountInString(textnorm.Normalize(raw)) < minQueryLen {
		return []Item{}
	}
	return Suggest(r.Get(ctx, name), raw)
}
