package model

import (
	"sort"
	"time"
)

// DisplayOrdered is implemented by entities that carry a display order.
// The store itself guarantees no ordering; callers sort after reading.
type DisplayOrdered interface {
	Order() int
	OrderTieBreak() (createdAt time.Time, id string)
}

// SortByDisplayOrder sorts entities by display order ascending. Ties break
// by creation time, then by ID, so the order is total and stable across
// reads.
func SortByDisplayOrder[E DisplayOrdered](entities []E) {
	sort.SliceStable(entities, func(i, j int) bool {
		if entities[i].Order() != entities[j].Order() {
			return entities[i].Order() < entities[j].Order()
		}
		ci, idi := entities[i].OrderTieBreak()
		cj, idj := entities[j].OrderTieBreak()
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return idi < idj
	})
}
