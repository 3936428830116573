package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/vlsmctl/internal/app"
	"github.com/firefly-engineering/vlsmctl/internal/binpack"
	"github.com/firefly-engineering/vlsmctl/internal/logging"
	"github.com/firefly-engineering/vlsmctl/internal/render"
)

var compareFlags requestFlags

var compareCmd = &cobra.Command{
	Use:   "compare [prefix] [label=hosts ...]",
	Short: "Compare the layouts of every packing strategy",
	Long: `Compare plans the same requirements with the first, best and worst fit
strategies and prints one occupancy line per strategy.`,
	RunE: runCompare,
}

func init() {
	compareFlags.register(compareCmd, false)
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	network, reqArgs, err := splitNetworkArgs(args, compareFlags.usesProfile())
	if err != nil {
		return err
	}
	req, err := compareFlags.resolve(network, reqArgs)
	if err != nil {
		return err
	}

	var results []render.StrategyResult
	var firstErr error
	failed := 0
	for _, s := range binpack.Strategies() {
		opts := req.opts
		opts.Strategy = s

		planner := app.Default.Planner()
		res := render.StrategyResult{Strategy: s.String()}
		if _, err := planner.Plan(req.network, req.reqs, opts); err != nil {
			logging.Debug("strategy failed", "strategy", s.String(), "error", err)
			res.Err = err
			failed++
			if firstErr == nil {
				firstErr = err
			}
		} else {
			res.Layout, _ = planner.Layout()
		}
		results = append(results, res)
	}

	if failed == len(results) {
		return firstErr
	}
	return app.Default.Renderer().Compare(results)
}
