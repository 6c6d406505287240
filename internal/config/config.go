// Package config provides layered configuration for relnotes using koanf.
// Configuration is loaded with priority: environment variables > project config (.relnotes.yml)
// > user config (~/.config/relnotes/config.yml) > defaults. Command-line flags are applied on
// top by the cli package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/notes"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. RELNOTES_BRANCH.
const EnvPrefix = "RELNOTES_"

// LegacyTokenEnv is the token variable honored for compatibility with older tooling.
const LegacyTokenEnv = "TAPROBANA_GITHUB_TOKEN"

// Configuration represents the relnotes settings
type Configuration struct {
	// Branch is the base branch pull requests must target. "*" means all branches.
	Branch string `koanf:"branch" validate:"required"`
	// TitlePrefix identifies the version-bump pull request used as the default cutoff.
	TitlePrefix string `koanf:"title_prefix" validate:"required"`
	// ReleaseLabel gates which pull requests contribute notes.
	ReleaseLabel string `koanf:"release_label" validate:"required"`
	// SiteURL is stripped from documentation-site links and restored in GitHub output.
	SiteURL string `koanf:"site_url" validate:"required,url"`
	// WrapWidth is the documentation-site column limit. -1 disables wrapping.
	WrapWidth int `koanf:"wrap_width" validate:"min=-1,max=1000"`
	// APIURL points the client at a GitHub Enterprise instance. Empty means github.com.
	APIURL string `koanf:"api_url" validate:"omitempty,url"`
	// Token authenticates API requests. Also read from RELNOTES_TOKEN and TAPROBANA_GITHUB_TOKEN.
	Token    string `koanf:"token"`
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
	// Sections maps conventional-commit scopes to per-dialect headings.
	Sections notes.SectionTable `koanf:"sections"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relnotes.yml, then .relnotes.json)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: <UserConfigDir>/relnotes/config.yml)
	UserConfigPath string
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

func loadUserConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		var err error
		if path, err = UserConfigPath(); err != nil {
			// No resolvable config dir (e.g. $HOME unset): run on defaults.
			return nil
		}
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadConfigFile(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		path = findProjectConfig()
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadConfigFile(k, path, "project"); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadConfigFile loads a YAML or JSON config file, choosing the parser by extension.
func loadConfigFile(k *koanf.Koanf, path, configType string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides. RELNOTES_TOKEN
// wins over the legacy token variable when both are set.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue("TAPROBANA_", ".", legacyEnvValue), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// AllBranches reports whether the configured branch means "every base branch".
func (c *Configuration) AllBranches() bool {
	return c.Branch == AllBranchesWildcard
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: RELNOTES_TITLE_PREFIX -> title_prefix
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// envValue maps a RELNOTES_* variable to its config key. Empty values are
// treated as unset.
func envValue(key, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	return envTransform(key), value
}

// legacyEnvValue maps TAPROBANA_GITHUB_TOKEN to token and ignores every other variable.
func legacyEnvValue(key, value string) (string, interface{}) {
	if key != LegacyTokenEnv || value == "" {
		return "", nil
	}
	return "token", value
}
