// Package config provides settings and requirement profiles for vlsmctl.
//
// # Files
//
// Everything lives under the config directory ($VLSMCTL_CONFIG_DIR, else
// $XDG_CONFIG_HOME/vlsmctl):
//
//   - config.toml: user defaults (Settings)
//   - profiles/*.toml: saved requirement sets (Profile)
//
// # Settings
//
//	strategy    = "best"   # first, best or worst
//	scale       = 1.0      # growth multiplier, >= 1.0
//	output      = "table"  # table, json or yaml
//	color       = "auto"   # auto, always or never
//	profilesDir = "profiles"
//
// # Profiles
//
// Subnets are an array of tables so their order survives decoding:
//
//	network = "192.168.2.0/24"
//
//	[[subnet]]
//	label = "Sales"
//	hosts = 56
//
// # Validation
//
// Unknown keys are rejected, and loading validates after parsing. Profile
// names are checked against a strict pattern and joined to the profiles
// directory with filepath-securejoin.
package config
