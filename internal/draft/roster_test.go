package draft

import (
	"math/rand"
	"slices"
	"sort"
	"testing"
)

func TestAppendIfAbsent_Idempotent(t *testing.T) {
	order := []string{"Bob"}

	once := AppendIfAbsent(order, "Alice")
	twice := AppendIfAbsent(once, "Alice")

	want := []string{"Bob", "Alice"}
	if !slices.Equal(once, want) {
		t.Fatalf("after first append: got %v, want %v", once, want)
	}
	if !slices.Equal(twice, want) {
		t.Fatalf("after second append: got %v, want %v", twice, want)
	}
}

func TestRenameInPlace_PreservesPosition(t *testing.T) {
	order := []string{"Bob", "Alice"}

	got := RenameInPlace(order, "Alice", "Ally")

	if !slices.Equal(got, []string{"Bob", "Ally"}) {
		t.Fatalf("got %v, want [Bob Ally]", got)
	}
	if !slices.Equal(order, []string{"Bob", "Alice"}) {
		t.Fatalf("input mutated: %v", order)
	}
}

func TestMoveBy(t *testing.T) {
	cases := []struct {
		name  string
		index int
		dir   int
		want  []string
	}{
		{name: "swap down", index: 0, dir: 1, want: []string{"B", "A", "C"}},
		{name: "swap up", index: 2, dir: -1, want: []string{"A", "C", "B"}},
		{name: "top cannot move up", index: 0, dir: -1, want: []string{"A", "B", "C"}},
		{name: "bottom cannot move down", index: 2, dir: 1, want: []string{"A", "B", "C"}},
		{name: "index out of range", index: 5, dir: 1, want: []string{"A", "B", "C"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MoveBy([]string{"A", "B", "C"}, tc.index, tc.dir)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPromoteToFirst(t *testing.T) {
	got := PromoteToFirst([]string{"A", "B", "C"}, 2)
	if !slices.Equal(got, []string{"C", "A", "B"}) {
		t.Fatalf("got %v, want [C A B]", got)
	}

	same := PromoteToFirst([]string{"A", "B"}, 9)
	if !slices.Equal(same, []string{"A", "B"}) {
		t.Fatalf("out-of-range promote should be a no-op, got %v", same)
	}
}

func TestShuffleThenResetAlphabetical_RoundTrip(t *testing.T) {
	order := []string{"Dana", "Alice", "Carol", "Bob"}
	rng := rand.New(rand.NewSource(42))

	shuffled := Shuffle(order, rng)
	got := ResetAlphabetical(shuffled)

	want := slices.Clone(order)
	sort.Strings(want)
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestShuffle_KeepsMultiset(t *testing.T) {
	order := []string{"A", "B", "C", "D", "E"}
	rng := rand.New(rand.NewSource(7))

	got := Shuffle(order, rng)

	a := slices.Clone(order)
	b := slices.Clone(got)
	sort.Strings(a)
	sort.Strings(b)
	if !slices.Equal(a, b) {
		t.Fatalf("shuffle changed membership: %v vs %v", order, got)
	}
}
