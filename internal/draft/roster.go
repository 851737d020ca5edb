package draft

import (
	"math/rand"
	"slices"
	"sort"
)

// Roster ops are pure: they take the current draft order and return the next
// one without touching the input. Callers persist the result as a single full
// overwrite so concurrent readers never see a half-updated order.

// AppendIfAbsent adds name at the end unless it is already present.
func AppendIfAbsent(order []string, name string) []string {
	if slices.Contains(order, name) {
		return slices.Clone(order)
	}
	return append(slices.Clone(order), name)
}

// RenameInPlace replaces every occurrence of oldName with newName,
// preserving positions. Used when a player rejoins under a new display name.
func RenameInPlace(order []string, oldName, newName string) []string {
	out := slices.Clone(order)
	for i, n := range out {
		if n == oldName {
			out[i] = newName
		}
	}
	return out
}

// MoveBy swaps the entry at index with its neighbor at index+dir.
// Out-of-bounds moves are ignored.
func MoveBy(order []string, index, dir int) []string {
	out := slices.Clone(order)
	ni := index + dir
	if index < 0 || index >= len(out) || ni < 0 || ni >= len(out) {
		return out
	}
	out[index], out[ni] = out[ni], out[index]
	return out
}

// PromoteToFirst moves the entry at index to the front, shifting the rest back.
func PromoteToFirst(order []string, index int) []string {
	out := slices.Clone(order)
	if index < 0 || index >= len(out) {
		return out
	}
	name := out[index]
	out = append(out[:index], out[index+1:]...)
	return append([]string{name}, out...)
}

// ResetAlphabetical returns the same names in lexicographic order.
func ResetAlphabetical(order []string) []string {
	out := slices.Clone(order)
	sort.Strings(out)
	return out
}

// Shuffle returns a uniformly random permutation (Fisher-Yates via rand.Shuffle).
func Shuffle(order []string, rng *rand.Rand) []string {
	out := slices.Clone(order)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
