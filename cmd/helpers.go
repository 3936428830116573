package cmd

import (
	"strings"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/vlsmctl/internal/app"
	"github.com/firefly-engineering/vlsmctl/internal/binpack"
	"github.com/firefly-engineering/vlsmctl/internal/config"
	"github.com/firefly-engineering/vlsmctl/internal/errors"
	"github.com/firefly-engineering/vlsmctl/internal/logging"
	"github.com/firefly-engineering/vlsmctl/internal/vlsm"
)

// paths returns the configured paths.
// This is a helper to reduce repetition in commands.
func paths() *config.Paths {
	return app.Default.Paths
}

// settings returns the loaded user defaults.
func settings() *config.Settings {
	return app.Default.Settings
}

// requestFlags are the inputs shared by every planning command. Zero values
// mean "not given" so profiles and settings can fill them in.
type requestFlags struct {
	scale    float64
	strategy string
	profile  string
	file     string
	reqs     string
}

func (f *requestFlags) register(cmd *cobra.Command, withStrategy bool) {
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "Growth multiplier applied to host counts (default from config, 1.0)")
	if withStrategy {
		cmd.Flags().StringVar(&f.strategy, "strategy", "", "Packing strategy: first, best or worst (default from config, first)")
	}
	cmd.Flags().StringVar(&f.profile, "profile", "", "Load network and subnets from a saved profile")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Load network and subnets from a profile file")
	cmd.Flags().StringVar(&f.reqs, "reqs", "", `Extra requirements as one shell-quoted string, e.g. "web=120 'lab 2=30'"`)
}

// planRequest is a fully resolved planning input.
type planRequest struct {
	network string
	reqs    vlsm.Requirements
	opts    vlsm.Options
}

// usesProfile reports whether the network comes from a profile.
func (f *requestFlags) usesProfile() bool {
	return f.profile != "" || f.file != ""
}

// loadProfile loads the profile named by --profile or --file, if any.
func (f *requestFlags) loadProfile() (*config.Profile, error) {
	switch {
	case f.profile != "" && f.file != "":
		return nil, errors.New(errors.ExitGeneralError, "--profile and --file are mutually exclusive")
	case f.profile != "":
		return app.Default.Profile(f.profile)
	case f.file != "":
		return app.Default.ProfileFile(f.file)
	}
	return nil, nil
}

// resolve merges, in increasing precedence: settings, the profile, then
// flags and positional arguments. network may be empty when a profile
// supplies it.
func (f *requestFlags) resolve(network string, reqArgs []string) (*planRequest, error) {
	s := settings()
	req := &planRequest{
		network: network,
		opts:    vlsm.Options{Scale: s.Scale},
	}
	strategy := s.Strategy

	profile, err := f.loadProfile()
	if err != nil {
		return nil, err
	}
	if profile != nil {
		logging.Debug("using profile", "name", profile.Name, "network", profile.Network, "subnets", len(profile.Subnets))
		if req.network == "" {
			req.network = profile.Network
		}
		req.reqs = append(req.reqs, profile.Requirements()...)
		if profile.Scale != 0 {
			req.opts.Scale = profile.Scale
		}
		if profile.Strategy != "" {
			strategy = profile.Strategy
		}
	}

	if f.reqs != "" {
		words, err := shellquote.Split(f.reqs)
		if err != nil {
			return nil, errors.InvalidRequirement("invalid --reqs: %v", err)
		}
		reqArgs = append(reqArgs, words...)
	}
	if len(reqArgs) > 0 {
		extra, err := parseRequirementArgs(reqArgs)
		if err != nil {
			return nil, err
		}
		req.reqs = append(req.reqs, extra...)
	}

	if req.network == "" {
		return nil, errors.InvalidRequirement("no network given: pass a prefix or use --profile")
	}
	if f.scale != 0 {
		req.opts.Scale = f.scale
	}
	if f.strategy != "" {
		strategy = f.strategy
	}

	req.opts.Strategy, err = binpack.ParseStrategy(strategy)
	if err != nil {
		return nil, errors.Wrap(errors.ExitMalformedPrefix, "invalid strategy", err)
	}

	return req, nil
}

// parseRequirementArgs parses label=hosts words without validating the
// combined set.
func parseRequirementArgs(args []string) (vlsm.Requirements, error) {
	reqs := make(vlsm.Requirements, 0, len(args))
	for _, arg := range args {
		r, err := vlsm.ParseRequirement(arg)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

// splitNetworkArgs separates an optional leading prefix from label=hosts
// arguments. With a profile the prefix may be omitted.
func splitNetworkArgs(args []string, profile bool) (string, []string, error) {
	if len(args) > 0 && !strings.Contains(args[0], "=") {
		return args[0], args[1:], nil
	}
	if profile {
		return "", args, nil
	}
	return "", nil, errors.InvalidRequirement("no network given: pass a prefix or use --profile")
}

// outputFormat returns the effective -o value.
func outputFormat(flag string) (string, error) {
	format := flag
	if format == "" {
		format = settings().Output
	}
	switch format {
	case config.OutputTable, config.OutputJSON, config.OutputYAML:
		return format, nil
	}
	return "", errors.New(errors.ExitGeneralError, "invalid output format: "+format+" (must be table, json, or yaml)")
}
