package binpack

import (
	"fmt"
	"strings"
)

// Strategy selects the bin a block goes into.
type Strategy int

const (
	// First picks the lowest-index bin with enough slack.
	First Strategy = iota
	// Best picks the bin with the least slack that still fits.
	Best
	// Worst picks the bin with the most slack.
	Worst
)

var strategyNames = map[Strategy]string{
	First: "FIRST",
	Best:  "BEST",
	Worst: "WORST",
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{First, Best, Worst}
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Valid reports whether s is one of the defined strategies.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// ParseStrategy parses "first", "best" or "worst" in any case.
// The empty string means First.
func ParseStrategy(name string) (Strategy, error) {
	if strings.TrimSpace(name) == "" {
		return First, nil
	}
	for s, n := range strategyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return First, fmt.Errorf("unknown packing strategy %q (use first, best or worst)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown packing strategy %d", int(s))
	}
	return []byte(strings.ToLower(s.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
