package model

import (
	"sort"
)

// SortByCreation orders primary tags by (CreatedAt, ID) ascending
func SortByCreation(tags []*PrimaryTag) {
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].CreatedAt.Equal(tags[j].CreatedAt) {
			return tags[i].ID < tags[j].ID
		}
		return tags[i].CreatedAt.Before(tags[j].CreatedAt)
	})
}

// AssignInstanceIndexes numbers same-named primary tags within each master tag
// 1..N in creation order and fills DisplayName. The slice is reordered by creation.
func AssignInstanceIndexes(tags []*PrimaryTag) {
	SortByCreation(tags)

	type key struct{ master, name string }
	counters := make(map[key]int)
	for _, tag := range tags {
		k := key{tag.MasterTagID, tag.Name}
		counters[k]++
		tag.InstanceIndex = counters[k]
		tag.DisplayName = DisplayName(tag.Name, tag.InstanceIndex)
	}
}
