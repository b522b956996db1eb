package models

import (
	"reflect"
	"testing"
)

// ids are newest-first, matching the ORDER BY id DESC read in TrimHistory.
func TestEvictBeyond(t *testing.T) {
	newestFirst := func(n int) []uint {
		ids := make([]uint, n)
		for i := range ids {
			ids[i] = uint(n - i)
		}
		return ids
	}

	tests := []struct {
		name  string
		ids   []uint
		limit int
		want  []uint
	}{
		{"empty", nil, HistoryLimit, nil},
		{"under limit", newestFirst(49), HistoryLimit, nil},
		{"at limit", newestFirst(50), HistoryLimit, nil},
		{"one over evicts oldest", newestFirst(51), HistoryLimit, []uint{1}},
		{"many over evicts all beyond cap", newestFirst(53), HistoryLimit, []uint{3, 2, 1}},
		{"zero limit evicts everything", []uint{3, 2, 1}, 0, []uint{3, 2, 1}},
		{"negative limit treated as zero", []uint{2, 1}, -1, []uint{2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvictBeyond(tt.ids, tt.limit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("EvictBeyond(%v, %d) = %v, want %v", tt.ids, tt.limit, got, tt.want)
			}
		})
	}
}

func TestEvictBeyond_KeepsNewestEntries(t *testing.T) {
	ids := make([]uint, HistoryLimit+10)
	for i := range ids {
		ids[i] = uint(len(ids) - i)
	}
	evict := EvictBeyond(ids, HistoryLimit)
	if len(evict) != 10 {
		t.Fatalf("evicted %d entries, want 10", len(evict))
	}
	for _, id := range evict {
		if id > 10 {
			t.Fatalf("evicted id %d is not among the oldest entries", id)
		}
	}
}
