package app

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/firefly-engineering/vlsmctl/internal/config"
	"github.com/firefly-engineering/vlsmctl/internal/errors"
	"github.com/firefly-engineering/vlsmctl/internal/vlsm"
)

const officeProfile = `
network = "192.168.2.0/24"

[[subnet]]
label = "A"
hosts = 56

[[subnet]]
label = "B"
hosts = 15
`

func TestNew(t *testing.T) {
	app := New()

	if app == nil {
		t.Fatal("New() returned nil")
	}
	if app.Paths == nil {
		t.Error("Paths should not be nil")
	}
	if app.Settings == nil {
		t.Error("Settings should not be nil")
	}
	if app.Stdout != os.Stdout {
		t.Error("Stdout should default to os.Stdout")
	}
}

func TestNew_Options(t *testing.T) {
	customPaths := config.NewPaths("/custom")
	customSettings := &config.Settings{Strategy: "worst", Scale: 2, Output: config.OutputJSON, Color: config.ColorNever}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	app := New(
		WithPaths(customPaths),
		WithSettings(customSettings),
		WithStdout(&buf),
		WithLogger(logger),
	)

	if app.Paths != customPaths {
		t.Error("Paths not set correctly")
	}
	if app.Settings != customSettings {
		t.Error("Settings not set correctly")
	}
	if app.Stdout != &buf {
		t.Error("Stdout not set correctly")
	}
	if app.Logger != logger {
		t.Error("Logger not set correctly")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := "strategy = \"best\"\nprofilesDir = \"sets\"\n"
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	app, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if app.Settings.Strategy != "best" {
		t.Errorf("Strategy = %q, want best", app.Settings.Strategy)
	}
	if app.Paths.ProfilesDir != filepath.Join(dir, "sets") {
		t.Errorf("ProfilesDir = %q, want %q", app.Paths.ProfilesDir, filepath.Join(dir, "sets"))
	}
}

func TestLoad_InvalidSettings(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(`color = "rainbow"`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrConfig) {
		t.Errorf("error = %v, want config error", err)
	}
	if errors.GetExitCode(err) != errors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitConfigError)
	}
}

func TestPlanner(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	app := New(WithLogger(logger))

	_, err := app.Planner().Plan("10.0.0.0/24", vlsm.Requirements{{Label: "A", Hosts: 10}}, vlsm.Options{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if !strings.Contains(logs.String(), "component=planner") {
		t.Errorf("planner did not log through the app logger:\n%s", logs.String())
	}
}

func TestRenderer(t *testing.T) {
	var buf bytes.Buffer
	app := New(WithStdout(&buf), WithSettings(&config.Settings{Color: config.ColorNever}))

	if err := app.Renderer().Lookup("10.0.0.1", vlsm.Subnet{}, false, ""); err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !strings.Contains(buf.String(), "not assigned") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestProfile(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	if err := os.MkdirAll(paths.ProfilesDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(paths.ProfilesDir, "office.toml"), []byte(officeProfile), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(paths.ProfilesDir, "broken.toml"), []byte("network = 1"), 0644); err != nil {
		t.Fatal(err)
	}
	app := New(WithPaths(paths))

	profile, err := app.Profile("office")
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if profile.Network != "192.168.2.0/24" || len(profile.Subnets) != 2 {
		t.Errorf("profile = %+v", profile)
	}

	_, err = app.Profile("missing")
	if errors.GetExitCode(err) != errors.ExitNotFound {
		t.Errorf("missing profile exit code = %d, want %d (%v)", errors.GetExitCode(err), errors.ExitNotFound, err)
	}
	if !errors.Is(err, errors.ErrNotFound) || errors.Is(err, errors.ErrNoPlan) {
		t.Errorf("missing profile should be ErrNotFound only, got %v", err)
	}

	_, err = app.Profile("broken")
	if errors.GetExitCode(err) != errors.ExitConfigError {
		t.Errorf("broken profile exit code = %d, want %d (%v)", errors.GetExitCode(err), errors.ExitConfigError, err)
	}

	profiles, err := app.Profiles()
	if err != nil {
		t.Fatalf("Profiles failed: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Name != "office" {
		t.Errorf("profiles = %v", profiles)
	}
}

func TestProfileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.toml")
	if err := os.WriteFile(path, []byte(officeProfile), 0644); err != nil {
		t.Fatal(err)
	}
	app := New()

	profile, err := app.ProfileFile(path)
	if err != nil {
		t.Fatalf("ProfileFile failed: %v", err)
	}
	if profile.Name != "site" {
		t.Errorf("Name = %q, want site", profile.Name)
	}

	_, err = app.ProfileFile(filepath.Join(t.TempDir(), "nope.toml"))
	if errors.GetExitCode(err) != errors.ExitNotFound {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitNotFound)
	}
}

func TestSetDefault(t *testing.T) {
	original := Default
	defer func() { Default = original }()

	custom := New(WithPaths(config.NewPaths("/custom")))
	SetDefault(custom)

	if Default != custom {
		t.Error("SetDefault did not set the default app")
	}

	ResetDefault()
	if Default == custom {
		t.Error("ResetDefault did not reset the default app")
	}
}
