package models

import "sort"

// Tally maps a lower-cased panel type code to the cumulative quantity
// configured for it. Values never go below zero.
type Tally map[string]int

// Adjust adds delta to the entry for code, creating it at 0 first and
// clamping the result at 0.
func (t Tally) Adjust(code string, delta int) {
	key := TallyKey(code)
	next := t[key] + delta
	if next < 0 {
		next = 0
	}
	t[key] = next
}

// Get returns the count for code.
func (t Tally) Get(code string) int {
	return t[TallyKey(code)]
}

// Keys returns the tally keys in sorted order
func (t Tally) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy.
func (t Tally) Clone() Tally {
	out := make(Tally, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
