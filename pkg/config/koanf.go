package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joeldee/rigup/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for configuration environment overrides, with __
// separating sections, e.g. RIGUP_REPO__NAME.
const EnvPrefix = "RIGUP_"

// Config is the typed view of the merged configuration
type Config struct {
	Repo        RepoConfig        `koanf:"repo" toml:"repo"`
	Preflight   PreflightConfig   `koanf:"preflight" toml:"preflight"`
	Credentials CredentialsConfig `koanf:"credentials" toml:"credentials"`
	Provision   ProvisionConfig   `koanf:"provision" toml:"provision"`
	Delegate    DelegateConfig    `koanf:"delegate" toml:"delegate"`
}

// RepoConfig describes the repository to materialize
type RepoConfig struct {
	Host    string `koanf:"host" toml:"host"`
	Owner   string `koanf:"owner" toml:"owner"`
	Name    string `koanf:"name" toml:"name"`
	URL     string `koanf:"url" toml:"url"`
	WorkDir string `koanf:"workdir" toml:"workdir"`
}

// CloneURL returns the HTTPS clone URL, deriving it from host/owner/name
// unless an explicit url was configured
func (r RepoConfig) CloneURL() string {
	if r.URL != "" {
		return r.URL
	}
	return fmt.Sprintf("https://%s/%s/%s.git", r.Host, r.Owner, r.Name)
}

// PreflightConfig controls the environment checks
type PreflightConfig struct {
	RequireDarwin  bool   `koanf:"require_darwin" toml:"require_darwin"`
	PackageManager string `koanf:"package_manager" toml:"package_manager"`
}

// CredentialsConfig controls secret handling
type CredentialsConfig struct {
	VaultPassFile string `koanf:"vault_pass_file" toml:"vault_pass_file"`
}

// ProvisionConfig controls toolchain installation
type ProvisionConfig struct {
	Package     string   `koanf:"package" toml:"package"`
	Binary      string   `koanf:"binary" toml:"binary"`
	Collections []string `koanf:"collections" toml:"collections"`
	Injections  []string `koanf:"injections" toml:"injections"`
	ProfileFile string   `koanf:"profile_file" toml:"profile_file"`
}

// DelegateConfig controls the hand-off to the repository's entry point
type DelegateConfig struct {
	EntryPoint       string `koanf:"entry_point" toml:"entry_point"`
	LegacyEntryPoint string `koanf:"legacy_entry_point" toml:"legacy_entry_point"`
	StreamOutput     bool   `koanf:"stream_output" toml:"stream_output"`
}

// Load builds the effective configuration: embedded defaults, then the user
// config file if it exists, then RIGUP_ environment overrides.
func Load(configFile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Load user config if it exists
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", configFile)
			}
		}
	}

	// 3. Load environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", envToKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	return &cfg, nil
}

// envToKey maps RIGUP_REPO__NAME to repo.name
func envToKey(s string) string {
	key := strings.TrimPrefix(s, EnvPrefix)
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "__", ".")
}
