package vlsm

import (
	"fmt"

	"github.com/gaissmai/bart"

	"github.com/firefly-engineering/vlsmctl/internal/addr"
	"github.com/firefly-engineering/vlsmctl/internal/errors"
)

// Index answers which allocated subnet an address belongs to.
type Index struct {
	table   *bart.Table[int]
	subnets []Subnet
}

// NewIndex builds an index over the subnets of a plan. Overlapping subnets
// are rejected.
func NewIndex(subnets []Subnet) (*Index, error) {
	x := &Index{
		table:   new(bart.Table[int]),
		subnets: subnets,
	}
	for i, s := range subnets {
		pfx := s.Network.Netip()
		if x.table.OverlapsPrefix(pfx) {
			return nil, errors.Infeasible("subnet %s (%s) overlaps another subnet", s.Label, s.Prefix)
		}
		x.table.Insert(pfx, i)
	}
	return x, nil
}

// Lookup returns the subnet containing the dotted-decimal address ip.
// ok is false when the address lies in unallocated space.
func (x *Index) Lookup(ip string) (sub Subnet, ok bool, err error) {
	a, err := addr.ParseAddr(ip)
	if err != nil {
		return Subnet{}, false, err
	}
	i, ok := x.table.Lookup(addr.Prefix{Addr: a, Bits: addr.MaxBits}.Netip().Addr())
	if !ok {
		return Subnet{}, false, nil
	}
	return x.subnets[i], true, nil
}

// Overlaps reports whether p shares any address with an allocated subnet.
func (x *Index) Overlaps(p addr.Prefix) bool {
	return x.table.OverlapsPrefix(p.Netip())
}

// Address roles returned by Role.
const (
	RoleNetwork   = "network"
	RoleBroadcast = "broadcast"
	RoleHost      = "host"
)

// Role describes an address's position within its subnet.
func Role(s Subnet, ip string) (string, error) {
	a, err := addr.ParseAddr(ip)
	if err != nil {
		return "", err
	}
	if !s.Network.Contains(addr.Prefix{Addr: a, Bits: addr.MaxBits}) {
		return "", fmt.Errorf("%s is not in %s", ip, s.Prefix)
	}
	switch a {
	case s.Network.Addr:
		return RoleNetwork, nil
	case s.Network.Last():
		return RoleBroadcast, nil
	default:
		return RoleHost, nil
	}
}
