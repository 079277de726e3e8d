package status

import (
	"cmp"
	"slices"
)

// Severity rank tables: lower sorts first. States missing from a table fall
// into the catch-all bucket after every listed state.
var (
	hostSeverity = map[int]int{
		HostDown:        0,
		HostUnreachable: 1,
	}
	serviceSeverity = map[int]int{
		ServiceCritical: 0,
		ServiceUnknown:  1,
		ServiceWarning:  2,
	}
)

// Severity returns the display priority bucket for an item within its kind.
func Severity(i Item) int {
	table := serviceSeverity
	if i.Kind == Host {
		table = hostSeverity
	}
	if rank, ok := table[i.State]; ok {
		return rank
	}
	return len(table)
}

// Compare orders two items: hosts before services, then by severity bucket,
// then most recent hard state change first.
func Compare(a, b Item) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	if c := cmp.Compare(Severity(a), Severity(b)); c != 0 {
		return c
	}
	return cmp.Compare(b.LastHardStateChange, a.LastHardStateChange)
}

// Less reports whether a sorts strictly before b.
func Less(a, b Item) bool {
	return Compare(a, b) < 0
}

// Rank returns a sorted copy of items. Items with equal keys keep their
// input order.
func Rank(items []Item) []Item {
	ranked := slices.Clone(items)
	slices.SortStableFunc(ranked, Compare)
	return ranked
}
