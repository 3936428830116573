// Package binpack packs a sequence of positive integer sizes into a fixed
// number of fixed-capacity bins.
//
// # Strategies
//
//	First  lowest-index bin with slack >= size
//	Best   bin with the smallest slack >= size, ties to the lowest index
//	Worst  bin with the largest slack >= size, ties to the lowest index
//
// On placement the block starts at capacity-slack within its bin and the
// bin's slack shrinks by the block size.
//
// # Usage
//
//	p, err := binpack.New(4, 20)
//	placements, err := p.Fit([]int{7, 2, 6}, binpack.Best)
//	slack := p.Slack()
//
// The packer is a greedy heuristic. It knows nothing about addresses; the
// planner turns placements into prefixes.
package binpack
