package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/vlsmctl/internal/app"
	"github.com/firefly-engineering/vlsmctl/internal/errors"
	"github.com/firefly-engineering/vlsmctl/internal/logging"
	"github.com/firefly-engineering/vlsmctl/internal/tui"
)

var (
	pickMap    bool
	pickOutput string
)

// Replaced in tests.
var (
	runPicker   = tui.RunPicker
	interactive = func() bool {
		fd := os.Stdin.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
)

var profilesPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive profile picker",
	Long: `Opens an interactive TUI for choosing a saved profile to plan.

Use arrow keys or j/k to navigate, / to filter, Enter to plan.

Actions:
  Enter  - Plan the selected profile, as plan --profile <name>
  q/Esc  - Quit`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	profilesPickCmd.Flags().BoolVar(&pickMap, "map", false, "Print the occupancy map")
	profilesPickCmd.Flags().StringVarP(&pickOutput, "output", "o", "", "Output format: table, json or yaml (default from config, table)")
	profilesCmd.AddCommand(profilesPickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	logging.Debug("picker mode started")

	profiles, err := app.Default.Profiles()
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		logInfo("No profiles found in %s. Create one with: vlsmctl profiles save <name> <prefix> label=hosts ...", paths().ProfilesDir)
		return nil
	}

	if !interactive() {
		return errors.New(errors.ExitGeneralError, "profiles pick needs an interactive terminal; use: vlsmctl plan --profile <name>")
	}

	// Validate the format before taking over the terminal.
	format, err := outputFormat(pickOutput)
	if err != nil {
		return err
	}

	result, err := runPicker(profiles)
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}

	logging.Debug("picker result", "action", result.Action)

	if result.Action != tui.ActionPlan || result.Profile == nil {
		return nil
	}

	flags := requestFlags{profile: result.Profile.Name}
	req, err := flags.resolve("", nil)
	if err != nil {
		return err
	}
	return planAndRender(req, format, pickMap)
}
