package vlsm

import (
	"fmt"
	"log/slog"
	"math"
	"net"

	"github.com/apparentlymart/go-cidr/cidr"

	"github.com/firefly-engineering/vlsmctl/internal/addr"
	"github.com/firefly-engineering/vlsmctl/internal/binpack"
	"github.com/firefly-engineering/vlsmctl/internal/errors"
	"github.com/firefly-engineering/vlsmctl/internal/logging"
)

// Subnet is one allocated subnet. Subnets are created by Plan and never
// modified afterwards.
type Subnet struct {
	Label     string      `json:"label" yaml:"label"`
	Hosts     int         `json:"hosts" yaml:"hosts"`
	Available int         `json:"available" yaml:"available"`
	Prefix    string      `json:"prefix" yaml:"prefix"`
	Network   addr.Prefix `json:"-" yaml:"-"`
}

// Free returns the usable addresses left over after the request.
func (s Subnet) Free() int {
	return s.Available - s.Hosts
}

// Options tunes a plan. The zero value plans with scale 1.0 and first fit.
type Options struct {
	// Scale multiplies every host count before sizing. Zero means 1.0.
	Scale float64
	// Strategy selects the packing heuristic.
	Strategy binpack.Strategy
}

func (o Options) normalized() (Options, error) {
	if o.Scale == 0 {
		o.Scale = 1.0
	}
	if math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) || o.Scale < 1.0 {
		return o, errors.InvalidRequirement("scale must be a finite number >= 1.0 (got %v)", o.Scale)
	}
	if !o.Strategy.Valid() {
		return o, errors.InvalidRequirement("unknown packing strategy %d", int(o.Strategy))
	}
	return o, nil
}

// Planner computes VLSM plans. A Planner keeps the layout of its last
// successful plan for OccupancyMap and Layout; it is not safe for
// concurrent use, but separate Planners share nothing.
type Planner struct {
	logger *slog.Logger
	layout *Layout
}

// Option configures a Planner
type Option func(*Planner)

// WithLogger sets the logger used for debug traces of each plan.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Planner. Without WithLogger it logs nothing.
func New(opts ...Option) *Planner {
	p := &Planner{logger: logging.Discard()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan allocates one subnet per requirement inside parent.
//
// Requirements are ordered by descending host count (stable) before
// packing and the result keeps that order. Plan is all-or-nothing: on any
// error it returns no subnets and forgets the previous layout.
func (p *Planner) Plan(parent string, reqs Requirements, opts Options) ([]Subnet, error) {
	p.layout = nil

	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}
	if err := reqs.Validate(); err != nil {
		return nil, err
	}

	sorted := reqs.Sorted()
	bits := make([]int, len(sorted))
	minBits, maxBits := math.MaxInt, 0
	for i, r := range sorted {
		bits[i] = BitWidth(r.Hosts, opts.Scale)
		minBits = min(minBits, bits[i])
		maxBits = max(maxBits, bits[i])
	}

	network, err := addr.Parse(parent)
	if err != nil {
		return nil, err
	}
	if network.HostBitsSet() {
		return nil, errors.MalformedPrefix(parent, fmt.Sprintf("host bits set (network is %s)", network.Masked()))
	}

	hostBits := addr.MaxBits - network.Bits
	ext := make([]int, len(sorted))
	for i := range sorted {
		ext[i] = hostBits - bits[i]
		if ext[i] < 0 {
			return nil, errors.Infeasible("%s needs %d hosts (%d address bits) but %s has only %d host bits",
				sorted[i].Label, sorted[i].Hosts, bits[i], network, hostBits)
		}
	}
	p.logger.Debug("derived bit widths", "parent", network.String(), "bits", bits, "ext", ext)

	// Units are blocks of the smallest subnet size. The requirement with
	// the fewest bits needs one unit; every other needs 2^(bits-minBits).
	// The parent holds 2^(hostBits-minBits) units in total, so the exact
	// form of sum(1/2^ext) <= 1 is sum(blocks) <= totalUnits.
	totalUnits := 1 << (hostBits - minBits)
	blocks := make([]int, len(sorted))
	used := 0
	for i := range sorted {
		blocks[i] = 1 << (bits[i] - minBits)
		used += blocks[i]
	}
	utilization := float64(used) / float64(totalUnits)
	if used > totalUnits {
		return nil, errors.Infeasible("requirements need %.1f%% of %s", utilization*100, network)
	}

	// One bin per largest subnet; each bin holds one largest subnet's worth
	// of units.
	bins := 1 << (hostBits - maxBits)
	capacity := 1 << (maxBits - minBits)
	packer, err := binpack.New(bins, capacity)
	if err != nil {
		return nil, errors.Infeasible("sizing bins: %v", err)
	}
	placements, err := packer.Fit(blocks, opts.Strategy)
	if err != nil {
		return nil, errors.Infeasible("packing blocks: %v", err)
	}
	p.logger.Debug("packed blocks", "strategy", opts.Strategy.String(), "bins", bins, "capacity", capacity, "blocks", blocks, "slack", packer.Slack())

	blockSize := uint64(1) << minBits
	offsets := make([]int, len(sorted))
	subnets := make([]Subnet, len(sorted))
	nets := make([]*net.IPNet, len(sorted))
	for i, pl := range placements {
		if !pl.Placed {
			// The utilization check above guarantees room, so this is a
			// bug in bin sizing, not a property of the input.
			p.logger.Error("block not placed after feasibility check passed",
				"label", sorted[i].Label, "blocks", blocks, "bins", bins, "capacity", capacity)
			return nil, errors.Infeasible("internal error: no room for %s (%d units) in %d bins of %d",
				sorted[i].Label, blocks[i], bins, capacity)
		}
		offsets[i] = pl.Position(capacity)
		sub := addr.Prefix{
			Addr: network.Addr + uint32(uint64(offsets[i])*blockSize),
			Bits: network.Bits + ext[i],
		}
		subnets[i] = Subnet{
			Label:     sorted[i].Label,
			Hosts:     sorted[i].Hosts,
			Available: 1<<bits[i] - 2,
			Prefix:    addr.Format(sub.Addr, sub.Bits),
			Network:   sub,
		}
		nets[i] = sub.IPNet()
	}

	if err := cidr.VerifyNoOverlap(nets, network.IPNet()); err != nil {
		p.logger.Error("plan produced overlapping subnets", "error", err)
		return nil, errors.Infeasible("internal error: %v", err)
	}

	p.layout = &Layout{
		Parent:         network,
		Strategy:       opts.Strategy,
		Scale:          opts.Scale,
		TotalAddresses: cidr.AddressCount(network.IPNet()),
		BlockSize:      blockSize,
		Bins:           bins,
		BinCapacity:    capacity,
		Labels:         labels(sorted),
		Blocks:         blocks,
		Offsets:        offsets,
		Utilization:    utilization,
	}
	p.logger.Debug("plan complete", "parent", network.String(), "subnets", len(subnets), "utilization", utilization)

	return subnets, nil
}

// Layout returns the state of the last successful plan.
func (p *Planner) Layout() (*Layout, error) {
	if p.layout == nil {
		return nil, errors.NoPlan("layout")
	}
	return p.layout, nil
}

// OccupancyMap renders the last successful plan as a '#'/'-' map with its
// summary header.
func (p *Planner) OccupancyMap() (string, error) {
	if p.layout == nil {
		return "", errors.NoPlan("occupancy map")
	}
	return p.layout.Map(), nil
}

func labels(reqs Requirements) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Label
	}
	return out
}
