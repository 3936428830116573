package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/vlsmctl/internal/app"
	"github.com/firefly-engineering/vlsmctl/internal/config"
	"github.com/firefly-engineering/vlsmctl/internal/errors"
	"github.com/firefly-engineering/vlsmctl/internal/vlsm"
)

var (
	saveScale    float64
	saveStrategy string
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List saved requirement profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfiles,
}

var profilesSaveCmd = &cobra.Command{
	Use:   "save <name> <prefix> <label=hosts> [label=hosts ...]",
	Short: "Save requirements as a named profile",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runProfilesSave,
}

func init() {
	profilesSaveCmd.Flags().Float64Var(&saveScale, "scale", 0, "Growth multiplier stored with the profile")
	profilesSaveCmd.Flags().StringVar(&saveStrategy, "strategy", "", "Packing strategy stored with the profile")
	profilesCmd.AddCommand(profilesSaveCmd)
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	profiles, err := app.Default.Profiles()
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		logInfo("No profiles found in %s. Create one with: vlsmctl profiles save <name> <prefix> label=hosts ...", paths().ProfilesDir)
		return nil
	}

	return app.Default.Renderer().Profiles(profiles)
}

func runProfilesSave(cmd *cobra.Command, args []string) error {
	name, network := args[0], args[1]

	reqs, err := vlsm.ParseRequirements(args[2:])
	if err != nil {
		return err
	}

	profile := &config.Profile{
		Name:     name,
		Network:  network,
		Scale:    saveScale,
		Strategy: saveStrategy,
		Subnets:  reqs,
	}

	// Refuse to store a profile that cannot be planned.
	opts, err := profile.Options()
	if err != nil {
		return errors.Wrap(errors.ExitMalformedPrefix, "invalid strategy", err)
	}
	if _, err := app.Default.Planner().Plan(network, reqs, opts); err != nil {
		return err
	}

	if err := config.SaveProfile(paths().ProfilesDir, profile); err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to save profile %s", name), err)
	}

	logSuccess("Saved profile %s (%d subnets in %s)", name, len(reqs), network)
	return nil
}
