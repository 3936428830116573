package vlsm

import (
	"fmt"
	"strings"

	"github.com/firefly-engineering/vlsmctl/internal/addr"
	"github.com/firefly-engineering/vlsmctl/internal/binpack"
)

// Layout is the retained state of a successful plan: everything needed to
// draw the occupancy map or print the summary counters. All per-subnet
// slices follow the order of the returned subnets.
type Layout struct {
	Parent         addr.Prefix      `json:"parent" yaml:"parent"`
	Strategy       binpack.Strategy `json:"strategy" yaml:"strategy"`
	Scale          float64          `json:"scale" yaml:"scale"`
	TotalAddresses uint64           `json:"totalAddresses" yaml:"totalAddresses"`
	BlockSize      uint64           `json:"blockSize" yaml:"blockSize"`
	Bins           int              `json:"bins" yaml:"bins"`
	BinCapacity    int              `json:"binCapacity" yaml:"binCapacity"`
	Labels         []string         `json:"labels" yaml:"labels"`
	Blocks         []int            `json:"blocks" yaml:"blocks"`
	Offsets        []int            `json:"offsets" yaml:"offsets"`
	Utilization    float64          `json:"utilization" yaml:"utilization"`
}

// Units returns how many blocks of BlockSize addresses tile the parent.
func (l *Layout) Units() int {
	return int(l.TotalAddresses / l.BlockSize)
}

// AllocatedUnits returns the number of blocks handed out.
func (l *Layout) AllocatedUnits() int {
	n := 0
	for _, b := range l.Blocks {
		n += b
	}
	return n
}

// Tiles returns one character per block across the parent network:
// '#' for allocated, '-' for free.
func (l *Layout) Tiles() string {
	tiles := []byte(strings.Repeat("-", l.Units()))
	for i, off := range l.Offsets {
		for u := off; u < off+l.Blocks[i] && u < len(tiles); u++ {
			tiles[u] = '#'
		}
	}
	return string(tiles)
}

// Map renders the occupancy map with its summary header.
func (l *Layout) Map() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total available addresses: %d\n", l.TotalAddresses)
	fmt.Fprintf(&b, "Allocated blocks: %s\n", intList(l.Blocks))
	fmt.Fprintf(&b, "Block size: %d\n", l.BlockSize)
	fmt.Fprintf(&b, "Offset: %s\n", intList(l.Offsets))
	b.WriteString("Legend: (#) Allocated block, (-) Free block\n")
	b.WriteString(l.Tiles())
	return b.String()
}

func intList(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprint(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
