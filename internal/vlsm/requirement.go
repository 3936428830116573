package vlsm

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/firefly-engineering/vlsmctl/internal/errors"
)

// Requirement asks for a subnet with room for Hosts usable addresses.
type Requirement struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	Hosts int    `json:"hosts" yaml:"hosts" toml:"hosts"`
}

// Requirements is an ordered label → host count mapping. Order only
// matters as the tie-break between equal host counts.
type Requirements []Requirement

// Validate rejects empty sets, blank or duplicate labels and negative host
// counts.
func (r Requirements) Validate() error {
	if len(r) == 0 {
		return errors.InvalidRequirement("no subnet requirements given")
	}

	seen := make(map[string]int, len(r))
	for i, req := range r {
		if strings.TrimSpace(req.Label) == "" {
			return errors.InvalidRequirement("requirement %d: label is empty", i+1)
		}
		if prev, ok := seen[req.Label]; ok {
			return errors.InvalidRequirement("duplicate label %q (requirements %d and %d)", req.Label, prev+1, i+1)
		}
		seen[req.Label] = i
		if req.Hosts < 0 {
			return errors.InvalidRequirement("requirement %q: host count must not be negative (got %d)", req.Label, req.Hosts)
		}
	}
	return nil
}

// Sorted returns a copy ordered by descending host count. Equal counts keep
// their input order.
func (r Requirements) Sorted() Requirements {
	out := slices.Clone(r)
	slices.SortStableFunc(out, func(a, b Requirement) int {
		return cmp.Compare(b.Hosts, a.Hosts)
	})
	return out
}

// ParseRequirement parses "label=hosts". The last '=' separates the count,
// so labels may themselves contain '='.
func ParseRequirement(s string) (Requirement, error) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return Requirement{}, errors.InvalidRequirement("requirement %q: expected label=hosts", s)
	}
	label, count := strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
	hosts, err := strconv.Atoi(count)
	if err != nil {
		return Requirement{}, errors.InvalidRequirement("requirement %q: host count %q is not an integer", s, count)
	}
	return Requirement{Label: label, Hosts: hosts}, nil
}

// ParseRequirements parses each argument with ParseRequirement and
// validates the result.
func ParseRequirements(args []string) (Requirements, error) {
	reqs := make(Requirements, 0, len(args))
	for _, a := range args {
		req, err := ParseRequirement(a)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	if err := reqs.Validate(); err != nil {
		return nil, err
	}
	return reqs, nil
}

// BitWidth returns the number of address bits b needed so that 2^b - 2
// usable addresses cover hosts*scale. It is ceil(log2(hosts*scale + 2)),
// computed against exact powers of two.
func BitWidth(hosts int, scale float64) int {
	need := float64(hosts)*scale + 2
	b := 0
	for b < 63 && math.Ldexp(1, b) < need {
		b++
	}
	return b
}

func (r Requirement) String() string {
	return fmt.Sprintf("%s=%d", r.Label, r.Hosts)
}
