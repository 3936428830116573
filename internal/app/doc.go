// Package app provides the application context for vlsmctl.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths    *config.Paths    // Config and profile directories
//	    Settings *config.Settings // Defaults from config.toml
//	    Stdout   io.Writer        // Command output
//	    Logger   *slog.Logger     // Planner logger
//	}
//
// # Creating an App
//
//	// Production usage: read config.toml from the config directory
//	a, err := app.Load(configDir)
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithPaths(config.NewPaths(t.TempDir())),
//	    app.WithStdout(&buf),
//	)
//
// # Available Options
//
//	WithPaths(paths)       // Custom path configuration
//	WithSettings(settings) // Custom settings
//	WithStdout(w)          // Output writer
//	WithLogger(logger)     // Planner logger
package app
