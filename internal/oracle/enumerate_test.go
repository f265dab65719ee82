package oracle

import (
	"errors"
	"math/big"
	"testing"

	"github.com/eugenenazirov/fragment-bingo/internal/puzzle"
)

func TestEnumerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		q    puzzle.Query
		want Result
	}{
		{
			name: "TwoPicturesTwoFragmentsDrawTwo",
			q:    puzzle.Query{Pictures: 2, Fragments: 2, Drawn: 2},
			want: Result{Bingo: 2, Total: 6},
		},
		{
			name: "ThreeByThreeDrawFive",
			q:    puzzle.Query{Pictures: 3, Fragments: 3, Drawn: 5},
			want: Result{Bingo: 45, Total: 126},
		},
		{
			name: "ThreeByThreeDrawSix",
			q:    puzzle.Query{Pictures: 3, Fragments: 3, Drawn: 6},
			want: Result{Bingo: 57, Total: 84},
		},
		{
			name: "DrawEverything",
			q:    puzzle.Query{Pictures: 3, Fragments: 2, Drawn: 6},
			want: Result{Bingo: 1, Total: 1},
		},
		{
			name: "FewerThanOnePicture",
			q:    puzzle.Query{Pictures: 3, Fragments: 3, Drawn: 2},
			want: Result{Bingo: 0, Total: 36},
		},
		{
			name: "SingleFragmentPictures",
			q:    puzzle.Query{Pictures: 4, Fragments: 1, Drawn: 2},
			want: Result{Bingo: 6, Total: 6},
		},
		{
			name: "DrawNothing",
			q:    puzzle.Query{Pictures: 2, Fragments: 2, Drawn: 0},
			want: Result{Bingo: 0, Total: 1},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := New().Enumerate(tc.q)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected result: got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestEnumerateTotalMatchesBinomial(t *testing.T) {
	t.Parallel()

	for a := 1; a < 4; a++ {
		for b := 1; b < 4; b++ {
			for k := 0; k <= a*b; k++ {
				q := puzzle.Query{Pictures: a, Fragments: b, Drawn: k}
				got, err := New().Enumerate(q)
				if err != nil {
					t.Fatalf("%s: unexpected error: %v", q, err)
				}
				want := new(big.Int).Binomial(int64(a*b), int64(k)).Uint64()
				if got.Total != want {
					t.Fatalf("%s: expected %d subsets, got %d", q, want, got.Total)
				}
			}
		}
	}
}

func TestEnumerateRejectsInvalidQuery(t *testing.T) {
	t.Parallel()

	invalid := []puzzle.Query{
		{Pictures: 0, Fragments: 2, Drawn: 1},
		{Pictures: 2, Fragments: 0, Drawn: 1},
		{Pictures: 2, Fragments: 2, Drawn: -1},
		{Pictures: 2, Fragments: 2, Drawn: 5},
	}
	for _, q := range invalid {
		if _, err := New().Enumerate(q); !errors.Is(err, puzzle.ErrInvalidParameter) {
			t.Fatalf("%s: expected ErrInvalidParameter, got %v", q, err)
		}
	}
}

func TestEnumerateRejectsHugePools(t *testing.T) {
	t.Parallel()

	q := puzzle.Query{Pictures: 10, Fragments: 9, Drawn: 45}
	if _, err := New().Enumerate(q); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestHasCompletePicture(t *testing.T) {
	t.Parallel()

	q := puzzle.Query{Pictures: 3, Fragments: 3, Drawn: 4}
	cases := []struct {
		subset []int
		want   bool
	}{
		{[]int{0, 1, 2, 3}, true},
		{[]int{2, 3, 4, 5}, true},
		{[]int{5, 6, 7, 8}, true},
		{[]int{1, 2, 3, 4}, false},
		{[]int{0, 1, 3, 4}, false},
		{[]int{2, 5, 6, 7}, false},
	}
	for _, tc := range cases {
		if got := hasCompletePicture(q, tc.subset); got != tc.want {
			t.Fatalf("subset %v: expected %v, got %v", tc.subset, tc.want, got)
		}
	}
}

func TestResultRatios(t *testing.T) {
	t.Parallel()

	res := Result{Bingo: 2, Total: 6}
	if got := res.Probability(); got != 1.0/3.0 {
		t.Fatalf("expected 1/3, got %v", got)
	}
	if got := res.Rat(); got.Cmp(big.NewRat(1, 3)) != 0 {
		t.Fatalf("expected 1/3, got %s", got)
	}

	var empty Result
	if empty.Probability() != 0 || empty.Rat().Sign() != 0 {
		t.Fatalf("expected zero ratios for an empty result")
	}
}

func TestProbabilityHelper(t *testing.T) {
	t.Parallel()

	p, err := Probability(New(), puzzle.Query{Pictures: 3, Fragments: 3, Drawn: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := 45.0 / 126.0; p != want {
		t.Fatalf("expected %v, got %v", want, p)
	}

	if _, err := Probability(New(), puzzle.Query{}); !errors.Is(err, puzzle.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func BenchmarkEnumerateFourByFour(b *testing.B) {
	e := New()
	q := puzzle.Query{Pictures: 4, Fragments: 4, Drawn: 8}
	for i := 0; i < b.N; i++ {
		if _, err := e.Enumerate(q); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
