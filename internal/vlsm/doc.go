// Package vlsm plans Variable-Length Subnet Mask allocations.
//
// Given a parent IPv4 prefix and a list of labelled host-count
// requirements, Plan sizes each subnet to the smallest power of two with
// enough usable addresses, checks that the subnets fit, and places them
// with the greedy packer from package binpack:
//
//	p := vlsm.New()
//	subnets, err := p.Plan("10.10.0.0/21", vlsm.Requirements{
//	    {Label: "A", Hosts: 177},
//	    {Label: "B", Hosts: 160},
//	}, vlsm.Options{Strategy: binpack.Best})
//
// # Sizing
//
// A requirement of h hosts with growth scale s gets b address bits, the
// smallest b with 2^b - 2 >= h*s. The parent /n leaves 32-n host bits, so
// the subnet is a /(n + ext) with ext = 32 - n - b.
//
// # Packing
//
// Sizes are normalised to units of the smallest subnet. The parent is cut
// into one bin per largest subnet, each holding that subnet's worth of
// units. Because every size is a power of two and requirements are packed
// largest first, each block lands on a boundary aligned to its own size.
//
// # Errors
//
// Malformed prefixes and invalid requirement sets match
// errors.ErrMalformedPrefix; requirements that do not fit match
// errors.ErrInfeasible. A failed Plan leaves no layout behind.
//
// # Output
//
// The planner never prints. OccupancyMap and Layout expose the retained
// state; Index maps addresses back to subnets.
package vlsm
