// Package addr is the IPv4 address codec used by the planner.
//
// It converts between a 32-bit address plus prefix length and the
// dotted-decimal CIDR form "A.B.C.D/n":
//
//	p, err := addr.Parse("10.10.0.0/21") // Prefix{Addr: 0x0a0a0000, Bits: 21}
//	s := addr.Format(p.Addr+512, 24)     // "10.10.2.0/24"
//
// Parse is strict: four decimal octets, one slash, a length in 0-32.
// Format never validates; callers derive prefix lengths they have already
// range-checked.
//
// Prefix also bridges to net/netip and net.IPNet for the libraries the
// planner hands subnets to.
package addr
