package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/vlsmctl/internal/config"
	"github.com/firefly-engineering/vlsmctl/internal/vlsm"
)

// MaxMapUnits is the largest map drawn tile by tile. Bigger layouts only
// get the summary header.
const MaxMapUnits = 1 << 16

// Report is the machine-readable result of a plan.
type Report struct {
	Network  string        `json:"network" yaml:"network"`
	Strategy string        `json:"strategy" yaml:"strategy"`
	Scale    float64       `json:"scale" yaml:"scale"`
	Subnets  []vlsm.Subnet `json:"subnets" yaml:"subnets"`
	Layout   *vlsm.Layout  `json:"layout,omitempty" yaml:"layout,omitempty"`
	Map      string        `json:"map,omitempty" yaml:"map,omitempty"`
}

// NewReport builds a Report from a plan. The tile map is included when
// withMap is set and the layout is small enough to draw.
func NewReport(subnets []vlsm.Subnet, layout *vlsm.Layout, withMap bool) *Report {
	r := &Report{
		Network:  layout.Parent.String(),
		Strategy: strings.ToLower(layout.Strategy.String()),
		Scale:    layout.Scale,
		Subnets:  subnets,
	}
	if withMap {
		r.Layout = layout
		if layout.Units() <= MaxMapUnits {
			r.Map = layout.Tiles()
		}
	}
	return r
}

// ColorEnabled resolves a color mode (auto, always, never) for w. Auto
// colours only terminals and honours NO_COLOR.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Renderer writes human-readable output.
type Renderer struct {
	w     io.Writer
	color bool

	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
	used   lipgloss.Style
	free   lipgloss.Style
	title  lipgloss.Style
	errSty lipgloss.Style
}

// New returns a Renderer writing to w.
func New(w io.Writer, color bool) *Renderer {
	lg := lipgloss.NewRenderer(w)
	if color {
		lg.SetColorProfile(termenv.ANSI256)
	} else {
		lg.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		w:      w,
		color:  color,
		header: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1),
		cell:   lg.NewStyle().Padding(0, 1),
		border: lg.NewStyle().Foreground(lipgloss.Color("241")),
		used:   lg.NewStyle().Foreground(lipgloss.Color("42")),
		free:   lg.NewStyle().Foreground(lipgloss.Color("241")),
		title:  lg.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		errSty: lg.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

func (r *Renderer) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return r.cell
		})
}

// Subnets writes the result table followed by a utilization line.
func (r *Renderer) Subnets(subnets []vlsm.Subnet, layout *vlsm.Layout) error {
	t := r.newTable("Label", "Required", "Free", "Available", "Assigned")
	for _, s := range subnets {
		t.Row(s.Label, strconv.Itoa(s.Hosts), strconv.Itoa(s.Free()), strconv.Itoa(s.Available), s.Prefix)
	}

	if _, err := fmt.Fprintln(r.w, t.String()); err != nil {
		return err
	}
	if layout == nil {
		return nil
	}
	_, err := fmt.Fprintf(r.w, "%s %s, %d of %d blocks (%.1f%%)\n",
		layout.Parent, layout.Strategy, layout.AllocatedUnits(), layout.Units(), layout.Utilization*100)
	return err
}

// Map writes the occupancy map. Without colour the output is exactly
// Layout.Map.
func (r *Renderer) Map(layout *vlsm.Layout) error {
	if !r.color && layout.Units() <= MaxMapUnits {
		_, err := fmt.Fprintln(r.w, layout.Map())
		return err
	}

	fmt.Fprintf(r.w, "Total available addresses: %d\n", layout.TotalAddresses)
	fmt.Fprintf(r.w, "Allocated blocks: %s\n", joinInts(layout.Blocks))
	fmt.Fprintf(r.w, "Block size: %d\n", layout.BlockSize)
	fmt.Fprintf(r.w, "Offset: %s\n", joinInts(layout.Offsets))
	fmt.Fprintf(r.w, "Legend: (%s) Allocated block, (%s) Free block\n", r.used.Render("#"), r.free.Render("-"))

	if layout.Units() > MaxMapUnits {
		_, err := fmt.Fprintf(r.w, "(map omitted: %d blocks)\n", layout.Units())
		return err
	}
	_, err := fmt.Fprintln(r.w, r.tiles(layout.Tiles()))
	return err
}

// tiles colours runs of equal characters.
func (r *Renderer) tiles(s string) string {
	var b strings.Builder
	for len(s) > 0 {
		n := 1
		for n < len(s) && s[n] == s[0] {
			n++
		}
		if s[0] == '#' {
			b.WriteString(r.used.Render(s[:n]))
		} else {
			b.WriteString(r.free.Render(s[:n]))
		}
		s = s[n:]
	}
	return b.String()
}

// StrategyResult is one row of a strategy comparison.
type StrategyResult struct {
	Strategy string
	Layout   *vlsm.Layout
	Err      error
}

// Compare writes one tile line per strategy.
func (r *Renderer) Compare(results []StrategyResult) error {
	width := 0
	for _, res := range results {
		width = max(width, len(res.Strategy))
	}

	for _, res := range results {
		name := r.title.Render(fmt.Sprintf("%-*s", width, res.Strategy))
		var line string
		switch {
		case res.Err != nil:
			line = r.errSty.Render(res.Err.Error())
		case res.Layout.Units() > MaxMapUnits:
			line = fmt.Sprintf("(map omitted: %d blocks)", res.Layout.Units())
		default:
			line = r.tiles(res.Layout.Tiles()) + " " + joinInts(res.Layout.Offsets)
		}
		if _, err := fmt.Fprintf(r.w, "%s  %s\n", name, line); err != nil {
			return err
		}
	}
	return nil
}

// Profiles writes a table of saved profiles.
func (r *Renderer) Profiles(profiles []*config.Profile) error {
	t := r.newTable("Name", "Network", "Subnets", "Hosts", "Strategy")
	for _, p := range profiles {
		hosts := 0
		for _, s := range p.Subnets {
			hosts += s.Hosts
		}
		strategy := p.Strategy
		if strategy == "" {
			strategy = "first"
		}
		t.Row(p.Name, p.Network, strconv.Itoa(len(p.Subnets)), strconv.Itoa(hosts), strategy)
	}
	_, err := fmt.Fprintln(r.w, t.String())
	return err
}

// Lookup describes where ip falls in a plan.
func (r *Renderer) Lookup(ip string, sub vlsm.Subnet, found bool, role string) error {
	if !found {
		_, err := fmt.Fprintf(r.w, "%s is not assigned to any subnet\n", ip)
		return err
	}
	article := "the"
	if role == vlsm.RoleHost {
		article = "a"
	}
	_, err := fmt.Fprintf(r.w, "%s is %s %s address in %s (%s)\n", ip, article, role, r.title.Render(sub.Label), sub.Prefix)
	return err
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Structured writes v in a machine-readable format (json or yaml).
func Structured(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputJSON:
		return JSON(w, v)
	case config.OutputYAML:
		return YAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
