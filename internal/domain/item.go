package domain

import "strings"

// ItemID identifies a point of interest. Identity of an Item is its ID only.
type ItemID int64

// A single point of interest shown on the map and in the list.
// Items are immutable snapshots: a refresh produces new values rather than
// mutating the ones already rendered.
type Item struct {
	ID          ItemID
	Title       string
	Address     string
	Category    string
	Coordinates Coordinates
	AvgRating   float64
	RatingCount int
	URL         string
}

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Query is the (category, search term) pair a list was fetched for.
type Query struct {
	Category string
	Search   string
}

// Normalize trims whitespace and maps an empty category to CategoryAll.
func (q Query) Normalize() Query {
	c := strings.TrimSpace(q.Category)
	if c == "" {
		c = CategoryAll
	}
	return Query{Category: c, Search: strings.TrimSpace(q.Search)}
}

// FiltersCategory reports whether the query restricts results by category.
func (q Query) FiltersCategory() bool {
	c := strings.TrimSpace(q.Category)
	return c != "" && c != CategoryAll
}

// ItemList is an ordered fetch result tagged with the query and the
// request sequence number that produced it.
type ItemList struct {
	Query Query
	Seq   uint64
	Items []Item
}

// Find returns the item with the given id.
func (l ItemList) Find(id ItemID) (Item, bool) {
	for _, it := range l.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Contains reports whether an item with the given id is present.
func (l ItemList) Contains(id ItemID) bool {
	_, ok := l.Find(id)
	return ok
}

// IndexOf returns the position of the item with the given id, or -1.
func (l ItemList) IndexOf(id ItemID) int {
	for i, it := range l.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (l ItemList) Len() int { return len(l.Items) }
