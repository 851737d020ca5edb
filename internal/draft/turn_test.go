package draft

import "testing"

func TestActiveIndex_LinearOrderIsPlainModulo(t *testing.T) {
	for turn := 0; turn < 30; turn++ {
		for size := 1; size <= 5; size++ {
			idx, ok := ActiveIndex(turn, size, false)
			if !ok {
				t.Fatalf("turn=%d size=%d: want ok", turn, size)
			}
			if idx != turn%size {
				t.Fatalf("turn=%d size=%d: got %d, want %d", turn, size, idx, turn%size)
			}
		}
	}
}

func TestActiveIndex_SnakeReversesOddRounds(t *testing.T) {
	cases := []struct {
		name string
		turn int
		size int
		want int
	}{
		{name: "round 0 start", turn: 0, size: 3, want: 0},
		{name: "round 0 middle", turn: 1, size: 3, want: 1},
		{name: "round 0 end", turn: 2, size: 3, want: 2},
		{name: "round 1 repeats last", turn: 3, size: 3, want: 2},
		{name: "round 1 walks back", turn: 4, size: 3, want: 1},
		{name: "round 1 end", turn: 5, size: 3, want: 0},
		{name: "round 2 forward again", turn: 6, size: 3, want: 0},
		{name: "round 3 reversed", turn: 10, size: 3, want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			idx, ok := ActiveIndex(tc.turn, tc.size, true)
			if !ok {
				t.Fatalf("want ok")
			}
			if idx != tc.want {
				t.Fatalf("got %d, want %d", idx, tc.want)
			}
		})
	}
}

func TestActiveIndex_EmptyRosterHasNoActive(t *testing.T) {
	if _, ok := ActiveIndex(7, 0, true); ok {
		t.Fatalf("expected no active index for empty roster")
	}
	if _, ok := ActiveName(nil, 7, false); ok {
		t.Fatalf("expected no active name for empty roster")
	}
}

// Turn may have grown against a larger roster; the index must stay in range
// after the roster shrinks.
func TestActiveIndex_StaysInRangeAfterRosterShrinks(t *testing.T) {
	for turn := 0; turn < 100; turn++ {
		for size := 1; size <= 4; size++ {
			for _, snake := range []bool{false, true} {
				idx, ok := ActiveIndex(turn, size, snake)
				if !ok || idx < 0 || idx >= size {
					t.Fatalf("turn=%d size=%d snake=%v: index %d out of range", turn, size, snake, idx)
				}
			}
		}
	}
}

func TestActiveName_SnakeScenario(t *testing.T) {
	order := []string{"A", "B", "C"}

	// A, B, C draft in order; round 1 reverses so C goes again, then B.
	want := []string{"A", "B", "C", "C", "B"}
	for turn, expected := range want {
		name, ok := ActiveName(order, turn, true)
		if !ok {
			t.Fatalf("turn=%d: want ok", turn)
		}
		if name != expected {
			t.Fatalf("turn=%d: got %q, want %q", turn, name, expected)
		}
	}
}
