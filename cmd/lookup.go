package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/vlsmctl/internal/app"
	"github.com/firefly-engineering/vlsmctl/internal/errors"
	"github.com/firefly-engineering/vlsmctl/internal/vlsm"
)

var lookupFlags requestFlags

var lookupCmd = &cobra.Command{
	Use:   "lookup [prefix] <address> [label=hosts ...]",
	Short: "Find the planned subnet containing an address",
	Long: `Lookup plans the requirements, then reports which subnet holds address
and whether it is the network, broadcast or a host address.

With --profile or --file the prefix comes from the profile:
  vlsmctl lookup --profile campus 10.10.2.130`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupFlags.register(lookupCmd, true)
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	var network, ip string
	rest := args
	if lookupFlags.usesProfile() && (len(args) == 1 || isRequirement(args[1])) {
		ip, rest = args[0], args[1:]
	} else {
		if len(args) < 2 {
			return errors.InvalidRequirement("lookup needs a prefix and an address")
		}
		network, ip, rest = args[0], args[1], args[2:]
	}

	req, err := lookupFlags.resolve(network, rest)
	if err != nil {
		return err
	}

	subnets, err := app.Default.Planner().Plan(req.network, req.reqs, req.opts)
	if err != nil {
		return err
	}
	index, err := vlsm.NewIndex(subnets)
	if err != nil {
		return err
	}

	sub, found, err := index.Lookup(ip)
	if err != nil {
		return err
	}

	role := ""
	if found {
		if role, err = vlsm.Role(sub, ip); err != nil {
			return err
		}
	}
	return app.Default.Renderer().Lookup(ip, sub, found, role)
}

func isRequirement(arg string) bool {
	_, err := vlsm.ParseRequirement(arg)
	return err == nil
}
