package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/vlsmctl/internal/binpack"
	"github.com/firefly-engineering/vlsmctl/internal/config"
	"github.com/firefly-engineering/vlsmctl/internal/vlsm"
)

func officePlan(t *testing.T, strategy binpack.Strategy) ([]vlsm.Subnet, *vlsm.Layout) {
	t.Helper()
	reqs := vlsm.Requirements{
		{Label: "A", Hosts: 56},
		{Label: "B", Hosts: 15},
		{Label: "C", Hosts: 15},
		{Label: "D", Hosts: 4},
		{Label: "E", Hosts: 4},
		{Label: "F", Hosts: 4},
	}
	p := vlsm.New()
	subnets, err := p.Plan("192.168.2.0/24", reqs, vlsm.Options{Strategy: strategy})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	layout, err := p.Layout()
	if err != nil {
		t.Fatalf("Layout failed: %v", err)
	}
	return subnets, layout
}

func TestSubnets(t *testing.T) {
	subnets, layout := officePlan(t, binpack.First)

	var buf bytes.Buffer
	if err := New(&buf, false).Subnets(subnets, layout); err != nil {
		t.Fatalf("Subnets failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Label", "Required", "Free", "Available", "Assigned", "192.168.2.0/26", "192.168.2.144/29"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("uncoloured output contains escape codes:\n%s", out)
	}
	if !strings.Contains(out, "192.168.2.0/24 FIRST, 19 of 32 blocks (59.4%)") {
		t.Errorf("output missing utilization line:\n%s", out)
	}

	// Top border, header, separator, six rows, bottom border, utilization.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 11 {
		t.Errorf("got %d lines, want 11:\n%s", len(lines), out)
	}
}

func TestSubnets_NoLayout(t *testing.T) {
	subnets, _ := officePlan(t, binpack.First)

	var buf bytes.Buffer
	if err := New(&buf, false).Subnets(subnets, nil); err != nil {
		t.Fatalf("Subnets failed: %v", err)
	}
	if strings.Contains(buf.String(), "blocks") {
		t.Errorf("unexpected utilization line:\n%s", buf.String())
	}
}

func TestMap_Plain(t *testing.T) {
	_, layout := officePlan(t, binpack.First)

	var buf bytes.Buffer
	if err := New(&buf, false).Map(layout); err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	want := layout.Map() + "\n"
	if buf.String() != want {
		t.Errorf("Map output = %q, want %q", buf.String(), want)
	}
}

func TestMap_Color(t *testing.T) {
	_, layout := officePlan(t, binpack.First)

	var buf bytes.Buffer
	if err := New(&buf, true).Map(layout); err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "\x1b[") {
		t.Errorf("coloured output has no escape codes:\n%q", out)
	}
	if !strings.Contains(out, "Offset: [0, 8, 12, 16, 17, 18]") {
		t.Errorf("output missing offsets:\n%s", out)
	}
	if got := strings.Count(out, "#"); got < 19 {
		t.Errorf("found %d '#' tiles, want at least 19", got)
	}
}

func TestMap_TooLarge(t *testing.T) {
	layout := &vlsm.Layout{
		TotalAddresses: 1 << 32,
		BlockSize:      2,
		Blocks:         []int{1},
		Offsets:        []int{0},
	}

	var buf bytes.Buffer
	if err := New(&buf, false).Map(layout); err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if !strings.Contains(buf.String(), "(map omitted: 2147483648 blocks)") {
		t.Errorf("large map not omitted:\n%s", buf.String())
	}
}

func TestCompare(t *testing.T) {
	_, first := officePlan(t, binpack.First)
	_, worst := officePlan(t, binpack.Worst)

	results := []StrategyResult{
		{Strategy: "FIRST", Layout: first},
		{Strategy: "WORST", Layout: worst},
		{Strategy: "BEST", Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	if err := New(&buf, false).Compare(results); err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	want := "FIRST  ###################------------- [0, 8, 12, 16, 17, 18]\n" +
		"WORST  ############----####----###----- [0, 8, 16, 24, 25, 26]\n" +
		"BEST   boom\n"
	if buf.String() != want {
		t.Errorf("Compare output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestProfiles(t *testing.T) {
	profiles := []*config.Profile{
		{Name: "campus", Network: "10.10.0.0/21", Strategy: "best", Subnets: []vlsm.Requirement{{Label: "A", Hosts: 177}, {Label: "B", Hosts: 193}}},
		{Name: "office", Network: "192.168.2.0/24", Subnets: []vlsm.Requirement{{Label: "A", Hosts: 56}}},
	}

	var buf bytes.Buffer
	if err := New(&buf, false).Profiles(profiles); err != nil {
		t.Fatalf("Profiles failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Name", "campus", "10.10.0.0/21", "370", "best", "office", "first"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLookup(t *testing.T) {
	sub := vlsm.Subnet{Label: "F", Prefix: "10.10.2.128/25"}

	tests := []struct {
		name  string
		found bool
		role  string
		want  string
	}{
		{"host", true, vlsm.RoleHost, "10.10.2.130 is a host address in F (10.10.2.128/25)\n"},
		{"network", true, vlsm.RoleNetwork, "10.10.2.130 is the network address in F (10.10.2.128/25)\n"},
		{"unassigned", false, "", "10.10.2.130 is not assigned to any subnet\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := New(&buf, false).Lookup("10.10.2.130", sub, tt.found, tt.role); err != nil {
				t.Fatalf("Lookup failed: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Lookup output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestNewReport(t *testing.T) {
	subnets, layout := officePlan(t, binpack.Best)

	r := NewReport(subnets, layout, false)
	if r.Network != "192.168.2.0/24" || r.Strategy != "best" || r.Scale != 1.0 {
		t.Errorf("report header = %q %q %v", r.Network, r.Strategy, r.Scale)
	}
	if r.Layout != nil || r.Map != "" {
		t.Error("report without map should omit layout and map")
	}

	r = NewReport(subnets, layout, true)
	if r.Layout == nil {
		t.Fatal("report with map should carry the layout")
	}
	if r.Map != "###################-------------" {
		t.Errorf("Map = %q", r.Map)
	}
}

func TestStructured_JSON(t *testing.T) {
	subnets, layout := officePlan(t, binpack.First)

	var buf bytes.Buffer
	if err := Structured(&buf, config.OutputJSON, NewReport(subnets, layout, true)); err != nil {
		t.Fatalf("Structured failed: %v", err)
	}

	var decoded struct {
		Network string `json:"network"`
		Subnets []struct {
			Label     string `json:"label"`
			Hosts     int    `json:"hosts"`
			Available int    `json:"available"`
			Prefix    string `json:"prefix"`
		} `json:"subnets"`
		Layout struct {
			Parent   string `json:"parent"`
			Strategy string `json:"strategy"`
			Offsets  []int  `json:"offsets"`
		} `json:"layout"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if decoded.Network != "192.168.2.0/24" {
		t.Errorf("network = %q", decoded.Network)
	}
	if len(decoded.Subnets) != 6 || decoded.Subnets[0].Prefix != "192.168.2.0/26" || decoded.Subnets[0].Available != 62 {
		t.Errorf("subnets = %+v", decoded.Subnets)
	}
	if decoded.Layout.Parent != "192.168.2.0/24" || decoded.Layout.Strategy != "first" {
		t.Errorf("layout = %+v", decoded.Layout)
	}
	if len(decoded.Layout.Offsets) != 6 || decoded.Layout.Offsets[5] != 18 {
		t.Errorf("offsets = %v", decoded.Layout.Offsets)
	}
}

func TestStructured_YAML(t *testing.T) {
	subnets, layout := officePlan(t, binpack.First)

	var buf bytes.Buffer
	if err := Structured(&buf, config.OutputYAML, NewReport(subnets, layout, false)); err != nil {
		t.Fatalf("Structured failed: %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if decoded["network"] != "192.168.2.0/24" {
		t.Errorf("network = %v", decoded["network"])
	}
	if _, ok := decoded["layout"]; ok {
		t.Error("layout should be omitted")
	}
	if !strings.Contains(buf.String(), "prefix: 192.168.2.64/27") {
		t.Errorf("YAML missing subnet prefix:\n%s", buf.String())
	}
}

func TestStructured_Unsupported(t *testing.T) {
	if err := Structured(&bytes.Buffer{}, "xml", nil); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	if !ColorEnabled(config.ColorAlways, &buf) {
		t.Error("always should enable colour")
	}
	if ColorEnabled(config.ColorNever, os.Stdout) {
		t.Error("never should disable colour")
	}
	if ColorEnabled(config.ColorAuto, &buf) {
		t.Error("auto should disable colour for non-file writers")
	}

	t.Setenv("NO_COLOR", "1")
	if ColorEnabled(config.ColorAuto, os.Stdout) {
		t.Error("auto should honour NO_COLOR")
	}
}
