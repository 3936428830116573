// Package testutil provides test fixtures and utilities.
//
// This package contains embedded TOML profile fixtures, an isolated
// command environment and plan assertions for unit and integration tests.
//
// # Fixtures
//
// Profiles are embedded using go:embed:
//
//	fixtures/profiles/*.toml  example networks that plan with every strategy
//	fixtures/invalid/*.toml   infeasible, misaligned and unknown-key profiles
//
// # Loading Fixtures
//
//	p, err := testutil.OfficeProfile()
//	p, err := testutil.LoadProfileFixture("enterprise")
//	all, err := testutil.ProfileFixtures()
//	data, err := testutil.InfeasibleProfile()
//
// # Test Environment
//
// NewTestEnv creates a temporary config directory and installs an App that
// writes to in-memory buffers as app.Default:
//
//	env := testutil.NewTestEnv(t)
//	env.AddFixtureProfiles()
//	env.WriteSettings(`strategy = "best"`)
//	// run a command, then inspect env.Output()
//
// # Assertions
//
//	testutil.AssertDisjoint(t, "10.10.0.0/21", subnets)
//	testutil.AssertCovers(t, subnets)
package testutil
