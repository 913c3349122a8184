package internal

import (
	"strconv"
	"strings"
)

// Selection is a parsed answer to the selection prompt
type Selection struct {
	Quit    bool
	Indices []int // zero-based positions into the listed records
}

// ParseSelection parses "1 3", "1,3", "all" or "q" against a list of n items.
// Indices in the input are one-based; out-of-range numbers are ignored and
// duplicates are dropped.
func ParseSelection(input string, n int) (Selection, error) {
	answer := strings.ToLower(strings.TrimSpace(input))

	switch answer {
	case "q":
		return Selection{Quit: true}, nil
	case "all":
		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}
		return Selection{Indices: indices}, nil
	}

	fields := strings.Fields(strings.ReplaceAll(answer, ",", " "))
	seen := make(map[int]bool)
	var indices []int
	for _, field := range fields {
		num, err := strconv.Atoi(field)
		if err != nil {
			return Selection{}, &SelectionError{Input: input, Reason: "invalid input, enter numbers, 'all', or 'q'"}
		}
		if num < 1 || num > n || seen[num] {
			continue
		}
		seen[num] = true
		indices = append(indices, num-1)
	}

	if len(indices) == 0 {
		return Selection{}, &SelectionError{Input: input, Reason: "no valid numbers selected"}
	}
	return Selection{Indices: indices}, nil
}

// Pick returns the records at the selected positions
func (s Selection) Pick(records []*Record) []*Record {
	picked := make([]*Record, 0, len(s.Indices))
	for _, i := range s.Indices {
		if i >= 0 && i < len(records) {
			picked = append(picked, records[i])
		}
	}
	return picked
}
