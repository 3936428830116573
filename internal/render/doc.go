// Package render formats plans for the terminal and for machines.
//
// Human output goes through a Renderer: lipgloss tables for subnets and
// profiles, the occupancy map with optional colour, and one-line strategy
// comparisons. Colour is decided once by ColorEnabled from the configured
// mode and whether the writer is a terminal.
//
// Machine output (JSON, YAML) marshals a Report. The tile map is only
// drawn for layouts of at most MaxMapUnits blocks.
package render
