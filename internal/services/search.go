package services

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"poi-map-service/internal/domain"
)

type itemTitles []domain.Item

func (t itemTitles) String(i int) string { return t[i].Title }
func (t itemTitles) Len() int            { return len(t) }

// RankItems orders items by how well their titles fuzzy-match term.
// Items that only matched on another field keep their relative order after
// the title matches. An empty term returns items unchanged.
func RankItems(items []domain.Item, term string) []domain.Item {
	term = strings.TrimSpace(term)
	if term == "" || len(items) < 2 {
		return items
	}

	matches := fuzzy.FindFrom(term, itemTitles(items))

	out := make([]domain.Item, 0, len(items))
	used := make([]bool, len(items))
	for _, m := range matches {
		out = append(out, items[m.Index])
		used[m.Index] = true
	}
	for i, it := range items {
		if !used[i] {
			out = append(out, it)
		}
	}
	return out
}
