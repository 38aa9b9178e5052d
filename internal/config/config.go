// Package config loads CrossDB configuration: named connection profiles
// from crossdb.yaml, CROSSDB_* environment overrides, and CLI flags, in
// that precedence order (flags win).
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/crossdb/pkg/db"
	"github.com/spf13/pflag"
)

// Config file names searched in the working directory.
const (
	ConfigFileName    = "crossdb.yaml"
	ConfigFileNameAlt = "crossdb.yml"
)

// envPrefix is stripped from environment variables; CROSSDB_CONNECTION=dev
// sets the active profile.
const envPrefix = "CROSSDB_"

// Profile is one named connection configuration.
type Profile struct {
	URL      string `koanf:"url"`
	ID       string `koanf:"id"`
	Prefix   string `koanf:"prefix"`
	Charset  string `koanf:"charset"`
	Collate  string `koanf:"collate"`
	Timezone string `koanf:"timezone"`
}

// Options converts the profile to connection options.
func (p Profile) Options() db.Options {
	return db.Options{
		ID:        p.ID,
		Prefix:    p.Prefix,
		Charset:   p.Charset,
		Collation: p.Collate,
		Timezone:  p.Timezone,
	}
}

// Config is the loaded configuration.
type Config struct {
	// Connection names the active profile.
	Connection string `koanf:"connection"`

	// Connections maps profile name to its configuration.
	Connections map[string]Profile `koanf:"connections"`

	Verbose bool `koanf:"verbose"`
}

// Profile returns the named profile, or the active one when name is
// empty.
func (c *Config) Profile(name string) (Profile, error) {
	if name == "" {
		name = c.Connection
	}
	p, ok := c.Connections[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown connection profile %q (available: %s)",
			name, strings.Join(c.profileNames(), ", "))
	}
	return p, nil
}

func (c *Config) profileNames() []string {
	names := make([]string, 0, len(c.Connections))
	for name := range c.Connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load builds the configuration. Priority (lowest to highest): defaults,
// config file, environment, flags. An explicit path that does not exist
// is an error; a missing default config file is not.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"connection": "default",
	}, "."), nil); err != nil {
		return nil, err
	}

	configPath := findConfigFile(path)
	if path != "" && configPath == "" {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile resolves the config file path. Priority: explicit path,
// crossdb.yaml, crossdb.yml.
func findConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
