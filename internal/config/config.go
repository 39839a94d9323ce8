// Package config provides configuration loading for linewatch.
//
// Configuration is loaded from multiple sources with the following priority
// (highest to lowest):
//  1. CLI flags
//  2. Environment variables (LINEWATCH_* prefix)
//  3. Config file (closest .linewatch.toml or linewatch.toml)
//  4. Built-in defaults
//
// Config file discovery walks up the filesystem from the scan root until a
// config file is found. The closest config wins (no merging).
//
// No component reads ambient environment state directly: the command layer
// resolves a *Config once and passes it into every component, so unit tests
// can inject configuration deterministically.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigFileNames defines the config file names to search for, in priority order.
var ConfigFileNames = []string{".linewatch.toml", "linewatch.toml"}

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "LINEWATCH_"

// Config represents the complete linewatch configuration.
type Config struct {
	// Width configures the line-width check.
	Width WidthConfig `json:"width" koanf:"width"`

	// Imports configures the multi-line import-block check.
	Imports ImportsConfig `json:"imports" koanf:"imports"`

	// Scope configures change scoping (checking only lines touched by the
	// current revision).
	Scope ScopeConfig `json:"scope" koanf:"scope"`

	// Output configures output format and destination.
	Output OutputConfig `json:"output" koanf:"output"`

	// Walk configures file discovery.
	Walk WalkConfig `json:"walk" koanf:"walk"`

	// ConfigFile is the path to the config file that was loaded (if any).
	// This is metadata, not loaded from config.
	ConfigFile string `json:"-" koanf:"-"`
}

// WidthConfig configures the line-width check.
type WidthConfig struct {
	// Rules is the width rule string: "pattern:width;...;DEFAULT=width".
	// Parsed with ParseWidthRules; malformed entries are dropped silently.
	Rules string `json:"rules,omitempty" koanf:"rules"`
}

// ImportsConfig configures the import-block check.
type ImportsConfig struct {
	// Enabled controls whether the import-block check runs at all.
	Enabled bool `json:"enabled,omitempty" koanf:"enabled"`

	// Extensions lists the source file extensions the check applies to.
	Extensions []string `json:"extensions,omitempty" koanf:"extensions"`
}

// ScopeConfig configures change scoping.
type ScopeConfig struct {
	// ChangedOnly restricts checking to lines changed in the current revision.
	ChangedOnly bool `json:"changed-only,omitempty" koanf:"changed-only"`

	// Event is the CI event type: "pull_request", "push", or empty.
	// Any other value disables scoping (whole-tree scan).
	Event string `json:"event,omitempty" koanf:"event"`

	// Rev is the revision under check (default "HEAD").
	Rev string `json:"rev,omitempty" koanf:"rev"`

	// BaseRef is the pull-request base branch reference, when known.
	BaseRef string `json:"base-ref,omitempty" koanf:"base-ref"`
}

// OutputConfig configures output formatting and behavior.
type OutputConfig struct {
	// Format specifies the output format: text, json, sarif, github-actions.
	Format string `json:"format,omitempty" koanf:"format"`

	// Path specifies where to write output: stdout, stderr, or a file path.
	Path string `json:"path,omitempty" koanf:"path"`

	// NoColor disables colored text output.
	NoColor bool `json:"no-color,omitempty" koanf:"no-color"`
}

// WalkConfig configures file discovery.
type WalkConfig struct {
	// Exclude lists glob patterns for files to skip (doublestar syntax).
	Exclude []string `json:"exclude,omitempty" koanf:"exclude"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Width: WidthConfig{Rules: ""},
		Imports: ImportsConfig{
			Enabled:    true,
			Extensions: []string{".rs"},
		},
		Scope: ScopeConfig{
			ChangedOnly: false,
			Rev:         "HEAD",
		},
		Output: OutputConfig{
			Format: "text",
			Path:   "stdout",
		},
	}
}

// Load loads configuration for a scan root.
// It discovers the closest config file, loads it, and applies
// environment variable overrides.
func Load(root string) (*Config, error) {
	return loadWithConfigPath(Discover(root))
}

// LoadFromFile loads configuration from a specific config file path.
// Unlike Load, it does not perform config discovery.
func LoadFromFile(configPath string) (*Config, error) {
	return loadWithConfigPath(configPath)
}

func loadWithConfigPath(configPath string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, err
	}

	// 2. Load config file if provided
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, err
		}
	}

	// 3. Load environment variables (LINEWATCH_* prefix)
	// LINEWATCH_SCOPE_CHANGED_ONLY -> scope.changed-only
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	cfg.ConfigFile = configPath
	return &cfg, nil
}

// knownHyphenatedKeys maps dot-separated patterns to their hyphenated
// equivalents. Add new entries here when adding hyphenated config keys.
var knownHyphenatedKeys = map[string]string{
	"changed.only": "changed-only",
	"base.ref":     "base-ref",
	"no.color":     "no-color",
}

var allowedEnvTopLevelKeys = map[string]struct{}{
	"width":   {},
	"imports": {},
	"scope":   {},
	"output":  {},
	"walk":    {},
}

// envKeyTransform converts environment variable names to config keys.
// LINEWATCH_WIDTH_RULES -> width.rules
// LINEWATCH_SCOPE_BASE_REF -> scope.base-ref
func envKeyTransform(k, v string) (string, any) {
	s := strings.TrimPrefix(k, EnvPrefix)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", ".")
	for pattern, replacement := range knownHyphenatedKeys {
		s = strings.ReplaceAll(s, pattern, replacement)
	}

	topLevel := s
	if before, _, ok := strings.Cut(s, "."); ok {
		topLevel = before
	}
	if _, ok := allowedEnvTopLevelKeys[topLevel]; !ok {
		return "", nil
	}

	return s, v
}

// Discover finds the closest config file for a scan root.
// It walks up the directory tree starting at root, checking for config
// files at each level. Returns empty string if no config file is found.
func Discover(root string) string {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return ""
	}

	dir := absPath
	if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
		dir = filepath.Dir(absPath)
	}

	for {
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(dir, name)
			if fileExists(configPath) {
				return configPath
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return ""
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
