package testutil

import (
	"embed"
	"io/fs"
	"path"
	"strings"

	"github.com/firefly-engineering/vlsmctl/internal/config"
)

//go:embed fixtures/profiles/*.toml fixtures/invalid/*.toml
var fixturesFS embed.FS

// LoadFixture loads a fixture file by path relative to fixtures/.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadProfileFixture decodes a profile fixture from fixtures/profiles.
func LoadProfileFixture(name string) (*config.Profile, error) {
	data, err := LoadFixture("profiles/" + name + config.ProfileExt)
	if err != nil {
		return nil, err
	}
	return config.DecodeProfile(data, name)
}

// ProfileFixtureNames returns the names of all valid profile fixtures in
// lexical order.
func ProfileFixtureNames() []string {
	matches, err := fs.Glob(fixturesFS, "fixtures/profiles/*.toml")
	if err != nil {
		panic(err)
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = strings.TrimSuffix(path.Base(m), config.ProfileExt)
	}
	return names
}

// ProfileFixtures loads every valid profile fixture.
func ProfileFixtures() ([]*config.Profile, error) {
	var profiles []*config.Profile
	for _, name := range ProfileFixtureNames() {
		p, err := LoadProfileFixture(name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// OfficeProfile returns the six-subnet office example on 192.168.2.0/24.
func OfficeProfile() (*config.Profile, error) {
	return LoadProfileFixture("office")
}

// CampusProfile returns the eight-subnet campus example on 10.10.0.0/21.
func CampusProfile() (*config.Profile, error) {
	return LoadProfileFixture("campus")
}

// InfeasibleProfile returns raw TOML for a profile that decodes but cannot
// be planned.
func InfeasibleProfile() ([]byte, error) {
	return LoadFixture("invalid/infeasible.toml")
}

// MisalignedProfile returns raw TOML for a profile whose network has host
// bits set.
func MisalignedProfile() ([]byte, error) {
	return LoadFixture("invalid/misaligned.toml")
}

// UnknownKeyProfile returns raw TOML with a key profiles do not define.
func UnknownKeyProfile() ([]byte, error) {
	return LoadFixture("invalid/unknown_key.toml")
}
