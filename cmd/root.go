package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/vlsmctl/internal/app"
	"github.com/firefly-engineering/vlsmctl/internal/config"
	"github.com/firefly-engineering/vlsmctl/internal/errors"
	"github.com/firefly-engineering/vlsmctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	configDir  string
)

var rootCmd = &cobra.Command{
	Use:   "vlsmctl",
	Short: "Variable-length subnet planner",
	Long: `vlsmctl carves an IPv4 network into subnets sized for the hosts each
one must hold.

Requests are sorted by host count, sized to the smallest power of two that
fits hosts plus network and broadcast addresses, then packed into the
parent with a first, best or worst fit strategy:
  - plan      print the subnet table and occupancy map
  - compare   show the layout every strategy produces
  - lookup    find the subnet an address falls into
  - profiles  list, save and pick requirement profiles`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, os.Stderr)

		a, err := app.Load(configDir, app.WithStdout(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		app.SetDefault(a)
		return nil
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
	}
	return err
}

// reportError prints a failed command's error for the user.
func reportError(err error) {
	logging.Debug("command failed", "exitCode", errors.GetExitCode(err))
	logging.UserError("%v", err)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default $"+config.ConfigDirEnv+" or $XDG_CONFIG_HOME/vlsmctl)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
