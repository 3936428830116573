// Package app provides the application context for vlsmctl.
// It allows dependency injection for testing.
package app

import (
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/firefly-engineering/vlsmctl/internal/config"
	"github.com/firefly-engineering/vlsmctl/internal/errors"
	"github.com/firefly-engineering/vlsmctl/internal/logging"
	"github.com/firefly-engineering/vlsmctl/internal/render"
	"github.com/firefly-engineering/vlsmctl/internal/vlsm"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Settings are the loaded user defaults
	Settings *config.Settings

	// Stdout receives command output
	Stdout io.Writer

	// Logger is handed to planners; nil means the global logger
	Logger *slog.Logger
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithSettings sets custom settings
func WithSettings(s *config.Settings) Option {
	return func(a *App) {
		a.Settings = s
	}
}

// WithStdout sets the output writer
func WithStdout(w io.Writer) Option {
	return func(a *App) {
		a.Stdout = w
	}
}

// WithLogger sets the planner logger
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{
		Paths:    config.DefaultPaths(),
		Settings: config.DefaultSettings(),
		Stdout:   os.Stdout,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// Load creates an App from the config directory, reading config.toml.
// An empty configDir uses the default location.
func Load(configDir string, opts ...Option) (*App, error) {
	paths := config.DefaultPaths()
	if configDir != "" {
		paths = config.NewPaths(configDir)
	}

	settings, err := config.LoadSettings(paths.ConfigDir)
	if err != nil {
		return nil, errors.ConfigError("failed to load settings", err)
	}
	logging.Debug("loaded settings", "configDir", paths.ConfigDir, "strategy", settings.Strategy, "output", settings.Output)

	base := []Option{WithPaths(paths.WithSettings(settings)), WithSettings(settings)}
	return New(append(base, opts...)...), nil
}

// Planner returns a fresh planner logging through the app's logger.
func (a *App) Planner() *vlsm.Planner {
	logger := logging.With("component", "planner")
	if a.Logger != nil {
		logger = a.Logger.With("component", "planner")
	}
	return vlsm.New(vlsm.WithLogger(logger))
}

// Renderer returns a renderer for Stdout honouring the colour setting.
func (a *App) Renderer() *render.Renderer {
	return render.New(a.Stdout, render.ColorEnabled(a.Settings.Color, a.Stdout))
}

// Profile loads a named profile from the profiles directory.
func (a *App) Profile(name string) (*config.Profile, error) {
	profile, err := config.LoadProfile(a.Paths.ProfilesDir, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFound("profile", name)
		}
		return nil, errors.ConfigError("failed to load profile", err)
	}
	return profile, nil
}

// ProfileFile loads a profile from an explicit path.
func (a *App) ProfileFile(path string) (*config.Profile, error) {
	profile, err := config.LoadProfileFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFound("profile file", path)
		}
		return nil, errors.ConfigError("failed to load profile", err)
	}
	return profile, nil
}

// Profiles lists the valid profiles in the profiles directory.
func (a *App) Profiles() ([]*config.Profile, error) {
	profiles, err := config.ListProfiles(a.Paths.ProfilesDir)
	if err != nil {
		return nil, errors.ConfigError("failed to list profiles", err)
	}
	return profiles, nil
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
