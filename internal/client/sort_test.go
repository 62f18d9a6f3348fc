package client

import (
	"testing"
)

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestSortItems(t *testing.T) {
	base := []Item{
		{ID: "1", Name: "B", Checked: false},
		{ID: "2", Name: "A", Checked: true},
		{ID: "3", Name: "C", Checked: false},
	}

	tests := []struct {
		name string
		opt  SortOption
		want []string
	}{
		{name: "default keeps store order", opt: SortDefault, want: []string{"B", "A", "C"}},
		{name: "unchecked first is a stable partition", opt: SortUncheckedFirst, want: []string{"B", "C", "A"}},
		{name: "alphabetical by name", opt: SortAlphabetical, want: []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(SortItems(base, tt.opt))
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("SortItems(%s) = %v, want %v", tt.opt, got, tt.want)
				}
			}
		})
	}
}

func TestSortItems_DoesNotMutateInput(t *testing.T) {
	base := []Item{
		{ID: "1", Name: "Zucchini"},
		{ID: "2", Name: "Apples"},
	}

	SortItems(base, SortAlphabetical)

	if base[0].Name != "Zucchini" {
		t.Error("SortItems must sort a copy, not the snapshot itself")
	}
}

func TestSortItems_AlphabeticalIsCaseAware(t *testing.T) {
	base := []Item{
		{ID: "1", Name: "banana"},
		{ID: "2", Name: "Apple"},
		{ID: "3", Name: "apple"},
	}

	got := names(SortItems(base, SortAlphabetical))
	want := []string{"Apple", "apple", "banana"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("alphabetical sort = %v, want %v", got, want)
		}
	}
}

func TestSortItems_UncheckedFirstPreservesRelativeOrder(t *testing.T) {
	base := []Item{
		{ID: "1", Name: "d", Checked: true},
		{ID: "2", Name: "c", Checked: false},
		{ID: "3", Name: "b", Checked: true},
		{ID: "4", Name: "a", Checked: false},
	}

	got := names(SortItems(base, SortUncheckedFirst))
	want := []string{"c", "a", "d", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unchecked-first sort = %v, want %v", got, want)
		}
	}
}
