package addr

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"

	"github.com/firefly-engineering/vlsmctl/internal/errors"
)

// MaxBits is the length of an IPv4 address in bits.
const MaxBits = 32

// Prefix is an IPv4 network: a 32-bit base address and a prefix length.
type Prefix struct {
	Addr uint32
	Bits int
}

// Parse parses "A.B.C.D/n". It accepts exactly four decimal octets in
// [0,255] followed by a prefix length in [0,32]; anything else fails with
// a malformed prefix error.
func Parse(text string) (Prefix, error) {
	addrPart, bitsPart, ok := strings.Cut(text, "/")
	if !ok {
		return Prefix{}, errors.MalformedPrefix(text, "missing '/' prefix length")
	}
	if strings.Contains(bitsPart, "/") {
		return Prefix{}, errors.MalformedPrefix(text, "more than one '/'")
	}

	a, reason := parseAddr(addrPart)
	if reason != "" {
		return Prefix{}, errors.MalformedPrefix(text, reason)
	}

	bits, ok := parseDecimal(bitsPart, 2)
	if !ok {
		return Prefix{}, errors.MalformedPrefix(text, fmt.Sprintf("prefix length %q is not a decimal integer", bitsPart))
	}
	if bits > MaxBits {
		return Prefix{}, errors.MalformedPrefix(text, fmt.Sprintf("prefix length %d out of range 0-32", bits))
	}

	return Prefix{Addr: a, Bits: bits}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// literal tables.
func MustParse(text string) Prefix {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseAddr parses a bare dotted-decimal address with the same octet rules
// as Parse.
func ParseAddr(text string) (uint32, error) {
	a, reason := parseAddr(text)
	if reason != "" {
		return 0, errors.New(errors.ExitMalformedPrefix, fmt.Sprintf("malformed address %q: %s", text, reason))
	}
	return a, nil
}

func parseAddr(text string) (uint32, string) {
	octets := strings.Split(text, ".")
	if len(octets) != 4 {
		return 0, fmt.Sprintf("expected four octets, got %d", len(octets))
	}

	var a uint32
	for i, o := range octets {
		v, ok := parseDecimal(o, 3)
		if !ok {
			return 0, fmt.Sprintf("octet %d (%q) is not a decimal number", i+1, o)
		}
		if v > 255 {
			return 0, fmt.Sprintf("octet %d (%d) out of range 0-255", i+1, v)
		}
		a = a<<8 | uint32(v)
	}
	return a, ""
}

// parseDecimal accepts 1..maxDigits ASCII digits and nothing else, so
// signs, spaces and hex are rejected before strconv sees them.
func parseDecimal(s string, maxDigits int) (int, bool) {
	if s == "" || len(s) > maxDigits {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Format renders an address and prefix length as "A.B.C.D/n". It always
// writes four octets and does not validate bits.
func Format(address uint32, bits int) string {
	return fmt.Sprintf("%s/%d", FormatAddr(address), bits)
}

// FormatAddr renders an address as "A.B.C.D".
func FormatAddr(address uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", address>>24, address>>16&0xff, address>>8&0xff, address&0xff)
}

func (p Prefix) String() string {
	return Format(p.Addr, p.Bits)
}

// Mask returns the network mask for the prefix length.
func (p Prefix) Mask() uint32 {
	return uint32(^uint64(0) << (MaxBits - p.Bits))
}

// Size returns the number of addresses covered by the prefix.
func (p Prefix) Size() uint64 {
	return uint64(1) << (MaxBits - p.Bits)
}

// Last returns the highest address in the prefix.
func (p Prefix) Last() uint32 {
	return p.Addr | ^p.Mask()
}

// Masked returns the prefix with host bits cleared.
func (p Prefix) Masked() Prefix {
	return Prefix{Addr: p.Addr & p.Mask(), Bits: p.Bits}
}

// HostBitsSet reports whether the base address has bits set beyond the
// prefix length.
func (p Prefix) HostBitsSet() bool {
	return p.Addr&^p.Mask() != 0
}

// Contains reports whether o lies entirely within p.
func (p Prefix) Contains(o Prefix) bool {
	return o.Bits >= p.Bits && o.Addr&p.Mask() == p.Addr&p.Mask()
}

// Netip converts the prefix to a netip.Prefix.
func (p Prefix) Netip() netip.Prefix {
	return netip.PrefixFrom(netip.AddrFrom4(toBytes(p.Addr)), p.Bits)
}

// IPNet converts the prefix to a *net.IPNet.
func (p Prefix) IPNet() *net.IPNet {
	b := toBytes(p.Addr)
	return &net.IPNet{
		IP:   net.IPv4(b[0], b[1], b[2], b[3]).To4(),
		Mask: net.CIDRMask(p.Bits, MaxBits),
	}
}

func toBytes(a uint32) [4]byte {
	return [4]byte{byte(a >> 24), byte(a >> 16), byte(a >> 8), byte(a)}
}

// MarshalText implements encoding.TextMarshaler.
func (p Prefix) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (p *Prefix) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
