// Package testutil provides test utilities for integration tests
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/firefly-engineering/vlsmctl/internal/addr"
	"github.com/firefly-engineering/vlsmctl/internal/app"
	"github.com/firefly-engineering/vlsmctl/internal/config"
	"github.com/firefly-engineering/vlsmctl/internal/logging"
	"github.com/firefly-engineering/vlsmctl/internal/vlsm"
)

// TestEnv holds the test environment
type TestEnv struct {
	T      *testing.T
	TmpDir string
	Paths  *config.Paths
	Stdout *bytes.Buffer
	Stderr *bytes.Buffer
	App    *app.App

	cleanup func()
}

// NewTestEnv creates a config directory in a temp dir and installs an App
// writing to in-memory buffers as app.Default.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()
	paths := config.NewPaths(filepath.Join(tmpDir, "config"))

	if err := os.MkdirAll(paths.ProfilesDir, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", paths.ProfilesDir, err)
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	testApp := app.New(
		app.WithPaths(paths),
		app.WithSettings(config.DefaultSettings()),
		app.WithStdout(stdout),
		app.WithLogger(logging.Discard()),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)
	logging.SetOutput(stdout, stderr)

	env := &TestEnv{
		T:      t,
		TmpDir: tmpDir,
		Paths:  paths,
		Stdout: stdout,
		Stderr: stderr,
		App:    testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
			logging.SetOutput(nil, nil)
		},
	}
	t.Cleanup(env.Cleanup)

	return env
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// WriteSettings writes config.toml into the config directory.
func (e *TestEnv) WriteSettings(content string) {
	e.T.Helper()

	path := filepath.Join(e.Paths.ConfigDir, config.SettingsFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write settings: %v", err)
	}
}

// AddProfile saves a profile to the profiles directory
func (e *TestEnv) AddProfile(name string, profile *config.Profile) {
	e.T.Helper()

	profile.Name = name
	if err := config.SaveProfile(e.Paths.ProfilesDir, profile); err != nil {
		e.T.Fatalf("Failed to save profile: %v", err)
	}
}

// AddRawProfile writes profile TOML verbatim, valid or not.
func (e *TestEnv) AddRawProfile(name string, data []byte) string {
	e.T.Helper()

	path := filepath.Join(e.Paths.ProfilesDir, name+config.ProfileExt)
	if err := os.WriteFile(path, data, 0644); err != nil {
		e.T.Fatalf("Failed to write profile: %v", err)
	}
	return path
}

// AddFixtureProfiles copies every valid profile fixture into the profiles
// directory.
func (e *TestEnv) AddFixtureProfiles() {
	e.T.Helper()

	for _, name := range ProfileFixtureNames() {
		data, err := LoadFixture("profiles/" + name + config.ProfileExt)
		if err != nil {
			e.T.Fatalf("Failed to load fixture %s: %v", name, err)
		}
		e.AddRawProfile(name, data)
	}
}

// Output returns everything written to stdout so far
func (e *TestEnv) Output() string {
	return e.Stdout.String()
}

// AssertDisjoint fails the test if any two subnets share an address or a
// subnet lies outside parent.
func AssertDisjoint(t *testing.T, parent string, subnets []vlsm.Subnet) {
	t.Helper()

	p, err := addr.Parse(parent)
	if err != nil {
		t.Fatalf("bad parent %q: %v", parent, err)
	}

	for i, a := range subnets {
		if !p.Contains(a.Network) {
			t.Errorf("subnet %s (%s) lies outside %s", a.Label, a.Prefix, parent)
		}
		if a.Network.Addr&^a.Network.Mask() != 0 {
			t.Errorf("subnet %s (%s) is not aligned", a.Label, a.Prefix)
		}
		for _, b := range subnets[i+1:] {
			if a.Network.Contains(b.Network) || b.Network.Contains(a.Network) {
				t.Errorf("subnets %s (%s) and %s (%s) overlap", a.Label, a.Prefix, b.Label, b.Prefix)
			}
		}
	}
}

// AssertCovers fails the test unless every subnet holds at least
// hosts usable addresses.
func AssertCovers(t *testing.T, subnets []vlsm.Subnet) {
	t.Helper()

	for _, s := range subnets {
		if s.Available < s.Hosts {
			t.Errorf("subnet %s (%s) has %d usable addresses for %d hosts", s.Label, s.Prefix, s.Available, s.Hosts)
		}
		if want := int(s.Network.Size()) - 2; s.Available != want {
			t.Errorf("subnet %s (%s) Available = %d, want %d", s.Label, s.Prefix, s.Available, want)
		}
	}
}
