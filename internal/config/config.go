package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/vlsmctl/internal/binpack"
	"github.com/firefly-engineering/vlsmctl/internal/logging"
	"github.com/firefly-engineering/vlsmctl/internal/vlsm"
)

// profileNameRegex validates profile names.
// Names must start with a letter or digit, followed by letters, digits,
// underscores, dots or hyphens. Maximum length is 63 characters.
var profileNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,62}$`)

// ValidateProfileName checks if a profile name is valid.
func ValidateProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	if !profileNameRegex.MatchString(name) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid profile name %q: must start with a letter or digit, contain only letters, digits, underscores, dots or hyphens, and be at most 63 characters", name)
	}

	return nil
}

const (
	// ConfigDirEnv overrides the configuration directory.
	ConfigDirEnv = "VLSMCTL_CONFIG_DIR"

	SettingsFile    = "config.toml"
	ProfileExt      = ".toml"
	DefaultProfiles = "profiles"
)

// Output formats
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Settings holds user defaults from config.toml. Command-line flags take
// precedence over every field.
type Settings struct {
	Strategy    string  `toml:"strategy"`
	Scale       float64 `toml:"scale"`
	Output      string  `toml:"output"`
	Color       string  `toml:"color"`
	ProfilesDir string  `toml:"profilesDir"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Strategy: "first",
		Scale:    1.0,
		Output:   OutputTable,
		Color:    ColorAuto,
	}
}

// Validate checks that the Settings are valid.
func (s *Settings) Validate() error {
	if _, err := binpack.ParseStrategy(s.Strategy); err != nil {
		return err
	}
	if !validScale(s.Scale) {
		return fmt.Errorf("scale must be a finite number >= 1.0 (got %v)", s.Scale)
	}

	validOutputs := map[string]bool{OutputTable: true, OutputJSON: true, OutputYAML: true}
	if !validOutputs[s.Output] {
		return fmt.Errorf("invalid output format: %s (must be table, json, or yaml)", s.Output)
	}

	validColors := map[string]bool{ColorAuto: true, ColorAlways: true, ColorNever: true}
	if !validColors[s.Color] {
		return fmt.Errorf("invalid color mode: %s (must be auto, always, or never)", s.Color)
	}

	return nil
}

// Profile is a saved requirement set. Its name is the file name without
// the extension and is never stored in the document:
//
//	network  = "10.10.0.0/21"
//	scale    = 1.0
//	strategy = "best"
//
//	[[subnet]]
//	label = "A"
//	hosts = 177
type Profile struct {
	Name     string             `toml:"-"`
	Network  string             `toml:"network"`
	Scale    float64            `toml:"scale"`
	Strategy string             `toml:"strategy"`
	Subnets  []vlsm.Requirement `toml:"subnet"`
}

// validScale reports whether scale is a finite growth factor of at least 1.
func validScale(scale float64) bool {
	return !math.IsNaN(scale) && !math.IsInf(scale, 0) && scale >= 1.0
}

// Validate checks that the Profile is valid.
func (p *Profile) Validate() error {
	if p.Network == "" {
		return fmt.Errorf("network is required")
	}
	if _, err := binpack.ParseStrategy(p.Strategy); err != nil {
		return err
	}
	if p.Scale != 0 && !validScale(p.Scale) {
		return fmt.Errorf("scale must be a finite number >= 1.0 (got %v)", p.Scale)
	}
	if err := vlsm.Requirements(p.Subnets).Validate(); err != nil {
		return err
	}
	return nil
}

// Requirements returns the profile's subnets in file order.
func (p *Profile) Requirements() vlsm.Requirements {
	return vlsm.Requirements(p.Subnets)
}

// Options returns the planner options the profile asks for.
func (p *Profile) Options() (vlsm.Options, error) {
	strategy, err := binpack.ParseStrategy(p.Strategy)
	if err != nil {
		return vlsm.Options{}, err
	}
	return vlsm.Options{Scale: p.Scale, Strategy: strategy}, nil
}

// Paths holds the configured paths
type Paths struct {
	ConfigDir   string
	ProfilesDir string
}

// DefaultPaths returns the default path configuration:
// $VLSMCTL_CONFIG_DIR, else $XDG_CONFIG_HOME/vlsmctl, else
// ~/.config/vlsmctl.
func DefaultPaths() *Paths {
	dir := os.Getenv(ConfigDirEnv)
	if dir == "" {
		if base, err := os.UserConfigDir(); err == nil {
			dir = filepath.Join(base, "vlsmctl")
		} else {
			dir = filepath.Join(".", ".vlsmctl")
		}
	}
	return NewPaths(dir)
}

// NewPaths returns paths rooted at configDir.
func NewPaths(configDir string) *Paths {
	return &Paths{
		ConfigDir:   configDir,
		ProfilesDir: filepath.Join(configDir, DefaultProfiles),
	}
}

// WithSettings applies a profilesDir override from settings. Relative
// directories are taken relative to the config dir.
func (p *Paths) WithSettings(s *Settings) *Paths {
	if s == nil || s.ProfilesDir == "" {
		return p
	}
	dir := s.ProfilesDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.ConfigDir, dir)
	}
	return &Paths{ConfigDir: p.ConfigDir, ProfilesDir: dir}
}

// LoadSettings loads config.toml from configDir. A missing file yields the
// defaults.
func LoadSettings(configDir string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(filepath.Join(configDir, SettingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := decodeStrict(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return settings, nil
}

// DecodeProfile parses profile TOML and names the result name.
func DecodeProfile(data []byte, name string) (*Profile, error) {
	var profile Profile
	if err := decodeStrict(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", name, err)
	}
	profile.Name = name

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", name, err)
	}

	return &profile, nil
}

// LoadProfile loads a named profile from profilesDir.
func LoadProfile(profilesDir, name string) (*Profile, error) {
	if err := ValidateProfileName(name); err != nil {
		return nil, err
	}
	path, err := securejoin.SecureJoin(profilesDir, name+ProfileExt)
	if err != nil {
		return nil, fmt.Errorf("invalid profile path: %w", err)
	}
	return loadProfilePath(path, name)
}

// LoadProfileFile loads a profile from an explicit path.
func LoadProfileFile(path string) (*Profile, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return loadProfilePath(path, name)
}

func loadProfilePath(path, name string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", name, err)
	}
	return DecodeProfile(data, name)
}

// ListProfiles returns all valid profiles in profilesDir sorted by name.
// Files that fail to load are skipped.
func ListProfiles(profilesDir string) ([]*Profile, error) {
	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read profiles directory: %w", err)
	}

	var profiles []*Profile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ProfileExt {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ProfileExt)
		profile, err := LoadProfile(profilesDir, name)
		if err != nil {
			logging.Warn("skipping invalid profile", "file", entry.Name(), "error", err)
			continue
		}
		profiles = append(profiles, profile)
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

// SaveProfile writes a profile as TOML to profilesDir.
func SaveProfile(profilesDir string, profile *Profile) error {
	if err := ValidateProfileName(profile.Name); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid profile %s: %w", profile.Name, err)
	}
	if err := os.MkdirAll(profilesDir, 0755); err != nil {
		return fmt.Errorf("failed to create profiles directory: %w", err)
	}

	path, err := securejoin.SecureJoin(profilesDir, profile.Name+ProfileExt)
	if err != nil {
		return fmt.Errorf("invalid profile path: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(profile); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}

	return nil
}

// decodeStrict decodes TOML and rejects keys that do not map to a field.
func decodeStrict(data []byte, v any) error {
	md, err := toml.Decode(string(data), v)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}
