// Package config loads the checker's run configuration from a YAML file,
// layered over built-in defaults that match the production wiki.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/wikicheck/internal/wikipath"
)

// DefaultFile is the config filename looked for in the wiki root.
const DefaultFile = ".wikicheck.yaml"

// Config represents the checker configuration
type Config struct {
	// Root is the wiki repository root. Relative paths in the config and
	// on the command line resolve against it.
	Root string `yaml:"root"`

	// RedirectFile is the root-relative path of the redirect table.
	RedirectFile string `yaml:"redirect_file"`

	// CaseSensitive makes in-wiki existence checks byte-exact.
	CaseSensitive bool `yaml:"case_sensitive"`

	// Site describes the URL shapes recognized as the wiki's own.
	Site wikipath.Site `yaml:"site"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Root:         ".",
		RedirectFile: "wiki/redirect.yaml",
		Site:         wikipath.DefaultSite(),
	}
}

// Load reads and parses a configuration file, layering it over the defaults.
// Environment variables in the YAML content are expanded before parsing.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads a configuration file when it exists and silently falls
// back to the defaults when it doesn't. A file that exists but fails to
// parse is still an error.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(configPath)
}

func (c *Config) validate() error {
	if c.Root == "" {
		return fmt.Errorf("root must not be empty")
	}
	if c.RedirectFile == "" {
		return fmt.Errorf("redirect_file must not be empty")
	}
	if c.Site.Host == "" {
		return fmt.Errorf("site.host must not be empty")
	}
	return nil
}
