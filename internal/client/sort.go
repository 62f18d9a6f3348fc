package client

import (
	"sort"
	"strings"
)

// SortOption selects the view-only projection applied to the latest
// snapshot. Sorting never touches the store.
type SortOption string

const (
	SortDefault        SortOption = "default"
	SortUncheckedFirst SortOption = "unchecked-first"
	SortAlphabetical   SortOption = "alphabetical"
)

// SortItems returns a sorted copy of items. "unchecked-first" is a stable
// partition, unchecked before checked with relative order preserved;
// "alphabetical" compares names case-insensitively, falling back to the
// raw string so casing still orders ties deterministically.
func SortItems(items []Item, opt SortOption) []Item {
	out := make([]Item, len(items))
	copy(out, items)

	switch opt {
	case SortUncheckedFirst:
		sort.SliceStable(out, func(i, j int) bool {
			return !out[i].Checked && out[j].Checked
		})
	case SortAlphabetical:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
			if a != b {
				return a < b
			}
			return out[i].Name < out[j].Name
		})
	}

	return out
}
