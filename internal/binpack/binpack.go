package binpack

import "fmt"

// Placement is where one block landed. Position flattens it into a unit
// index across all bins.
type Placement struct {
	Bin    int
	Offset int
	Placed bool
}

// Position returns Bin*capacity + Offset.
func (p Placement) Position(capacity int) int {
	return p.Bin*capacity + p.Offset
}

// Packer places blocks into a fixed number of equal bins.
//
// It is a greedy single pass: each block is placed when it is seen, with no
// look-ahead and no backtracking, so there is no optimality guarantee. The
// bin count and capacity never change after New.
//
// Only bins that have received a block are materialised. Every other bin
// has full slack, and because all three strategies prefer the lowest index
// among equally empty bins, the touched bins are always a prefix of the
// index range.
type Packer struct {
	bins     int
	capacity int
	slack    []int
}

// New returns a packer with bins bins of capacity units each.
func New(bins, capacity int) (*Packer, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("bin count must be positive (got %d)", bins)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("bin capacity must be positive (got %d)", capacity)
	}
	return &Packer{bins: bins, capacity: capacity}, nil
}

// Bins returns the fixed bin count.
func (p *Packer) Bins() int { return p.bins }

// Capacity returns the fixed bin capacity.
func (p *Packer) Capacity() int { return p.capacity }

// Fit packs sizes in order with the given strategy, starting from empty
// bins. It returns one placement per size, in input order. A block that
// fits nowhere gets a placement with Placed == false; the remaining blocks
// are still attempted.
func (p *Packer) Fit(sizes []int, s Strategy) ([]Placement, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown packing strategy %d", int(s))
	}
	for i, r := range sizes {
		if r <= 0 {
			return nil, fmt.Errorf("block %d: size must be positive (got %d)", i, r)
		}
	}

	p.slack = p.slack[:0]
	placements := make([]Placement, len(sizes))
	for i, r := range sizes {
		var bin int
		switch s {
		case Best:
			bin = p.bestBin(r)
		case Worst:
			bin = p.worstBin(r)
		default:
			bin = p.firstBin(r)
		}
		if bin < 0 {
			continue
		}
		placements[i] = p.take(bin, r)
	}
	return placements, nil
}

// Slack returns the remaining capacity of every bin touched by the last
// Fit, indexed by bin. Bins beyond the returned slice are empty.
func (p *Packer) Slack() []int {
	out := make([]int, len(p.slack))
	copy(out, p.slack)
	return out
}

// untouched returns the index of the first empty bin if r fits in it.
func (p *Packer) untouched(r int) int {
	if len(p.slack) < p.bins && r <= p.capacity {
		return len(p.slack)
	}
	return -1
}

func (p *Packer) firstBin(r int) int {
	for i, slack := range p.slack {
		if r <= slack {
			return i
		}
	}
	return p.untouched(r)
}

func (p *Packer) bestBin(r int) int {
	best := -1
	for i, slack := range p.slack {
		if r <= slack && (best < 0 || slack < p.slack[best]) {
			best = i
		}
	}
	if best >= 0 {
		return best
	}
	// An empty bin has the most slack of all, so it is only the tightest
	// fit when no touched bin qualifies.
	return p.untouched(r)
}

func (p *Packer) worstBin(r int) int {
	// A touched bin always has less slack than an empty one.
	if bin := p.untouched(r); bin >= 0 {
		return bin
	}
	worst := -1
	for i, slack := range p.slack {
		if r <= slack && (worst < 0 || slack > p.slack[worst]) {
			worst = i
		}
	}
	return worst
}

func (p *Packer) take(bin, r int) Placement {
	if bin == len(p.slack) {
		p.slack = append(p.slack, p.capacity)
	}
	start := p.capacity - p.slack[bin]
	p.slack[bin] -= r
	return Placement{Bin: bin, Offset: start, Placed: true}
}
