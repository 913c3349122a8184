package internal

import "sort"

// DefaultListLimit is how many recent transcripts are offered for selection
const DefaultListLimit = 10

// SortByRecency orders records newest first by their raw timestamp string.
// Records without a timestamp sort last; ties keep discovery order.
func SortByRecency(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SortKey() > records[j].SortKey()
	})
}

// Latest returns the n most recent records, sorting a copy of records
func Latest(records []*Record, n int) []*Record {
	sorted := make([]*Record, len(records))
	copy(sorted, records)
	SortByRecency(sorted)

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
