package binpack

import (
	"math/rand"
	"reflect"
	"testing"
)

func placed(pairs ...[2]int) []Placement {
	out := make([]Placement, len(pairs))
	for i, p := range pairs {
		out[i] = Placement{Bin: p[0], Offset: p[1], Placed: true}
	}
	return out
}

func fit(sizes []int, bins, capacity int, s Strategy) ([]Placement, error) {
	p, err := New(bins, capacity)
	if err != nil {
		return nil, err
	}
	return p.Fit(sizes, s)
}

func TestFit_Strategies(t *testing.T) {
	sizes := []int{7, 2, 6, 5, 2, 6, 9, 3}

	tests := []struct {
		strategy Strategy
		want     []Placement
	}{
		{First, placed([2]int{0, 0}, [2]int{0, 7}, [2]int{0, 9}, [2]int{0, 15}, [2]int{1, 0}, [2]int{1, 2}, [2]int{1, 8}, [2]int{1, 17})},
		{Best, placed([2]int{0, 0}, [2]int{0, 7}, [2]int{0, 9}, [2]int{0, 15}, [2]int{1, 0}, [2]int{1, 2}, [2]int{1, 8}, [2]int{1, 17})},
		{Worst, placed([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{1, 2}, [2]int{1, 4}, [2]int{3, 5}, [2]int{2, 6})},
	}

	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			got, err := fit(sizes, 4, 20, tt.strategy)
			if err != nil {
				t.Fatalf("Fit failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Fit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFit_BestPrefersTightestBin(t *testing.T) {
	sizes := []int{5, 6, 4}

	tests := []struct {
		strategy Strategy
		want     []Placement
	}{
		{First, placed([2]int{0, 0}, [2]int{1, 0}, [2]int{0, 5})},
		{Best, placed([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 6})},
		{Worst, placed([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})},
	}

	for _, tt := range tests {
		got, err := fit(sizes, 3, 10, tt.strategy)
		if err != nil {
			t.Fatalf("%s: Fit failed: %v", tt.strategy, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: Fit = %v, want %v", tt.strategy, got, tt.want)
		}
	}
}

func TestFit_Unplaceable(t *testing.T) {
	for _, s := range Strategies() {
		got, err := fit([]int{3, 3, 3, 1}, 2, 4, s)
		if err != nil {
			t.Fatalf("%s: Fit failed: %v", s, err)
		}
		if got[2].Placed {
			t.Errorf("%s: third block placed at %+v, want unplaced", s, got[2])
		}
		if !got[3].Placed {
			t.Errorf("%s: block after an unplaceable one should still be placed", s)
		}
	}

	got, err := fit([]int{5}, 3, 4, First)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if got[0].Placed {
		t.Error("block larger than the bin capacity should not be placed")
	}
}

func TestPacker_FreshSlackPerFit(t *testing.T) {
	p, err := New(2, 8)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first, _ := p.Fit([]int{4, 4, 8}, First)
	second, _ := p.Fit([]int{4, 4, 8}, First)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Fit differs: %v vs %v", first, second)
	}
	if got := p.Slack(); !reflect.DeepEqual(got, []int{0, 0}) {
		t.Errorf("Slack() = %v, want [0 0]", got)
	}
}

func TestPacker_LargeBinCount(t *testing.T) {
	p, err := New(1<<31, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, s := range Strategies() {
		got, err := p.Fit([]int{4, 4, 2, 1}, s)
		if err != nil {
			t.Fatalf("%s: Fit failed: %v", s, err)
		}
		for i, pl := range got {
			if !pl.Placed {
				t.Errorf("%s: block %d not placed", s, i)
			}
		}
		if n := len(p.Slack()); n > 4 {
			t.Errorf("%s: %d bins materialised, want at most 4", s, n)
		}
	}
}

func TestPlacement_Position(t *testing.T) {
	if got := (Placement{Bin: 3, Offset: 5, Placed: true}).Position(8); got != 29 {
		t.Errorf("Position = %d, want 29", got)
	}
}

func TestNew_Invalid(t *testing.T) {
	for _, tc := range [][2]int{{0, 1}, {1, 0}, {-1, 4}, {4, -1}} {
		if _, err := New(tc[0], tc[1]); err == nil {
			t.Errorf("New(%d, %d) should fail", tc[0], tc[1])
		}
	}
}

func TestFit_InvalidInput(t *testing.T) {
	if _, err := fit([]int{1, 0}, 2, 2, First); err == nil {
		t.Error("zero size should be rejected")
	}
	if _, err := fit([]int{-3}, 2, 2, First); err == nil {
		t.Error("negative size should be rejected")
	}
	if _, err := fit([]int{1}, 2, 2, Strategy(9)); err == nil {
		t.Error("unknown strategy should be rejected")
	}
}

// eagerFit is the straightforward formulation with every bin materialised.
func eagerFit(sizes []int, bins, capacity int, s Strategy) []Placement {
	slack := make([]int, bins)
	for i := range slack {
		slack[i] = capacity
	}
	out := make([]Placement, len(sizes))
	for i, r := range sizes {
		bin := -1
		for b := 0; b < bins; b++ {
			if r > slack[b] {
				continue
			}
			if bin < 0 {
				bin = b
				if s == First {
					break
				}
				continue
			}
			if (s == Best && slack[b] < slack[bin]) || (s == Worst && slack[b] > slack[bin]) {
				bin = b
			}
		}
		if bin < 0 {
			continue
		}
		out[i] = Placement{Bin: bin, Offset: capacity - slack[bin], Placed: true}
		slack[bin] -= r
	}
	return out
}

func TestFit_MatchesEagerPacking(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 500; iter++ {
		bins := 1 + rng.Intn(6)
		capacity := 1 + rng.Intn(16)
		sizes := make([]int, 1+rng.Intn(12))
		for i := range sizes {
			sizes[i] = 1 + rng.Intn(capacity+2)
		}

		for _, s := range Strategies() {
			got, err := fit(sizes, bins, capacity, s)
			if err != nil {
				t.Fatalf("Fit failed: %v", err)
			}
			want := eagerFit(sizes, bins, capacity, s)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("%s sizes=%v bins=%d cap=%d:\n got  %v\n want %v", s, sizes, bins, capacity, got, want)
			}
		}
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"first", First, false},
		{"FIRST", First, false},
		{"Best", Best, false},
		{" worst ", Worst, false},
		{"", First, false},
		{"next", First, true},
	}

	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStrategy_Text(t *testing.T) {
	for _, s := range Strategies() {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", s, err)
		}
		var back Strategy
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if back != s {
			t.Errorf("text round trip of %v gave %v", s, back)
		}
	}

	if _, err := Strategy(7).MarshalText(); err == nil {
		t.Error("MarshalText of an unknown strategy should fail")
	}
	if got := Strategy(7).String(); got != "Strategy(7)" {
		t.Errorf("String() = %q", got)
	}
}
