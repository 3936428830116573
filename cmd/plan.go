package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/vlsmctl/internal/app"
	"github.com/firefly-engineering/vlsmctl/internal/config"
	"github.com/firefly-engineering/vlsmctl/internal/logging"
	"github.com/firefly-engineering/vlsmctl/internal/render"
)

var (
	planFlags  requestFlags
	planMap    bool
	planOutput string
)

var planCmd = &cobra.Command{
	Use:   "plan [prefix] [label=hosts ...]",
	Short: "Plan subnets for a network",
	Long: `Plan allocates one subnet per label=hosts requirement inside prefix.

Examples:
  vlsmctl plan 192.168.2.0/24 Sales=56 Eng=15 Ops=15
  vlsmctl plan 10.10.0.0/21 --reqs "A=177 B=160 'Lab 2=50'" --strategy best --map
  vlsmctl plan --profile campus -o json`,
	RunE: runPlan,
}

func init() {
	planFlags.register(planCmd, true)
	planCmd.Flags().BoolVar(&planMap, "map", false, "Print the occupancy map")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "Output format: table, json or yaml (default from config, table)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	network, reqArgs, err := splitNetworkArgs(args, planFlags.usesProfile())
	if err != nil {
		return err
	}
	req, err := planFlags.resolve(network, reqArgs)
	if err != nil {
		return err
	}
	format, err := outputFormat(planOutput)
	if err != nil {
		return err
	}
	return planAndRender(req, format, planMap)
}

// planAndRender plans req and writes the result in format, with the
// occupancy map when withMap is set.
func planAndRender(req *planRequest, format string, withMap bool) error {
	logging.Debug("planning", "network", req.network, "subnets", len(req.reqs), "scale", req.opts.Scale, "strategy", req.opts.Strategy.String())

	planner := app.Default.Planner()
	subnets, err := planner.Plan(req.network, req.reqs, req.opts)
	if err != nil {
		return err
	}
	layout, err := planner.Layout()
	if err != nil {
		return err
	}

	if format != config.OutputTable {
		return render.Structured(app.Default.Stdout, format, render.NewReport(subnets, layout, withMap))
	}

	r := app.Default.Renderer()
	if err := r.Subnets(subnets, layout); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	if !withMap {
		return nil
	}
	if layout.Units() > render.MaxMapUnits {
		logWarning("Occupancy map has %d blocks; showing the summary only", layout.Units())
	}
	fmt.Fprintln(app.Default.Stdout)
	return r.Map(layout)
}
