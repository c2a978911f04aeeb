package catalog

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"pizzeria/internal/models"
)

// Search returns items whose name matches query, best matches first.
// Substring matches rank ahead of fuzzy ones; an empty query returns every
// item in catalog order.
func (c *Catalog) Search(query string) []models.MenuItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Items()
	}

	type hit struct {
		item  models.MenuItem
		score int
		pos   int
	}
	var hits []hit
	maxDist := utf8.RuneCountInString(q) / 3
	for i, item := range c.items {
		name := strings.ToLower(item.Name)
		if idx := strings.Index(name, q); idx >= 0 {
			hits = append(hits, hit{item: item, score: idx, pos: i})
			continue
		}
		if d := bestWordDistance(name, q); d <= maxDist {
			hits = append(hits, hit{item: item, score: 100 + d, pos: i})
		}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].score != hits[b].score {
			return hits[a].score < hits[b].score
		}
		return hits[a].pos < hits[b].pos
	})
	out := make([]models.MenuItem, len(hits))
	for i, h := range hits {
		out[i] = h.item
	}
	return out
}

func bestWordDistance(name, q string) int {
	best := levenshtein.ComputeDistance(name, q)
	for _, word := range strings.Fields(name) {
		if d := levenshtein.ComputeDistance(word, q); d < best {
			best = d
		}
	}
	return best
}
