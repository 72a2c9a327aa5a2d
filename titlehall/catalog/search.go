package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// unlockSearchItems implements fuzzy.Source for shop title searching.
type unlockSearchItems struct {
	unlocks []Unlock
}

func (items unlockSearchItems) Len() int {
	return len(items.unlocks)
}

// String returns the searchable string at index i.
func (items unlockSearchItems) String(i int) string {
	u := items.unlocks[i]
	return strings.ToLower(u.DisplayName + " " + u.Description)
}

// SearchUnlocks performs fuzzy matching over unlock names and
// descriptions, returning matches in relevance order. An empty query
// returns the full catalog in catalog order.
func (c *Catalog) SearchUnlocks(query string) []Unlock {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.unlocks
	}

	items := unlockSearchItems{unlocks: c.unlocks}
	matches := fuzzy.FindFrom(query, items)

	results := make([]Unlock, 0, len(matches))
	for _, m := range matches {
		results = append(results, c.unlocks[m.Index])
	}
	return results
}
