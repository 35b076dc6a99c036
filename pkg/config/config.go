// Package config loads the small set of runtime settings the core needs:
// where grammars live on disk, the default git clone policy, the math
// cache's memory budget, and the indexer's worker count.
//
// Discovery mirrors markata-go's site config loader: try an explicit path,
// else look for a well-known file name in the current directory, else fall
// back to defaults. Environment variables are applied last so they always
// win over a file.
package config

import (
	"errors"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

// candidateFileNames are tried, in order, when no explicit path is given.
var candidateFileNames = []string{
	"dme.toml",
	".dme.toml",
}

// ErrConfigNotFound is returned by Discover when no candidate file exists.
var ErrConfigNotFound = errors.New("no configuration file found")

// Config holds the core's runtime settings.
type Config struct {
	// GrammarsRoot is the directory grammars are cloned and compiled into.
	// Empty means "use the platform default" (see grammars.DefaultRoot).
	GrammarsRoot string `toml:"grammars_root"`

	// GitCloneDepth is the configured `git clone --depth N` value for
	// grammar installs; zero means a full clone. grammars.Store.Install
	// does not read it: it always clones with --depth 1.
	GitCloneDepth int `toml:"git_clone_depth"`

	// GitSingleBranch is the configured --single-branch setting for
	// grammar installs. grammars.Store.Install does not read it: it always
	// clones with --single-branch.
	GitSingleBranch bool `toml:"git_single_branch"`

	// MathCacheCapacityBytes bounds the math SVG cache's total weight.
	MathCacheCapacityBytes int64 `toml:"math_cache_capacity_bytes"`

	// IndexWorkerCount is the number of workers DiskIndexer spawns.
	// Zero means runtime.NumCPU().
	IndexWorkerCount int `toml:"index_worker_count"`
}

// DefaultMathCacheCapacityBytes is 500 MiB per §4.4.
const DefaultMathCacheCapacityBytes int64 = 500 * 1024 * 1024

// Defaults returns a Config populated with the built-in defaults.
func Defaults() *Config {
	return &Config{
		GitCloneDepth:          1,
		GitSingleBranch:        true,
		MathCacheCapacityBytes: DefaultMathCacheCapacityBytes,
		IndexWorkerCount:       runtime.NumCPU(),
	}
}

// Discover looks for a candidate config file in the current directory and
// returns its path, or ErrConfigNotFound if none exists.
func Discover() (string, error) {
	for _, name := range candidateFileNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", ErrConfigNotFound
}

// Load loads configuration from configPath. An empty configPath triggers
// discovery; a missing optional file is not an error — defaults (plus env
// overrides) are returned instead.
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	if configPath == "" {
		discovered, err := Discover()
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				applyEnvOverrides(cfg)
				return cfg, nil
			}
			return nil, err
		}
		configPath = discovered
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if cfg.IndexWorkerCount <= 0 {
		cfg.IndexWorkerCount = runtime.NumCPU()
	}
	if cfg.MathCacheCapacityBytes <= 0 {
		cfg.MathCacheCapacityBytes = DefaultMathCacheCapacityBytes
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides on top of a
// loaded or default config. $TREESITTER_GRAMMARS_HOME takes precedence
// over both the file value and the platform default (the latter is
// resolved later, by the grammars package, when GrammarsRoot is empty).
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TREESITTER_GRAMMARS_HOME"); v != "" {
		cfg.GrammarsRoot = v
	}
}
