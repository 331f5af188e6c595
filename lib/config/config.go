// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/vlist/lib/infiniteload"
	"github.com/bureau-foundation/vlist/lib/scrollstate"
	"github.com/bureau-foundation/vlist/lib/vlist"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "VLIST_CONFIG"

// Source kinds.
const (
	SourceGenerated = "generated"
	SourcePageFile  = "pagefile"
	SourceSQLite    = "sqlite"
)

// Config is the complete configuration for a vlist binary.
type Config struct {
	// ItemHeight is the constant row height. Zero selects variable
	// heights, estimated by EstimatedItemHeight until measured.
	ItemHeight float64 `yaml:"item_height" json:"item_height"`

	// EstimatedItemHeight is the variable-mode estimate.
	// Default: 3
	EstimatedItemHeight float64 `yaml:"estimated_item_height" json:"estimated_item_height"`

	// ContainerExtent is the viewport height used until the viewer
	// learns the terminal size.
	// Default: 24
	ContainerExtent float64 `yaml:"container_extent" json:"container_extent"`

	// OverscanCount is the number of extra rows materialized above and
	// below the viewport.
	// Default: 5
	OverscanCount int `yaml:"overscan_count" json:"overscan_count"`

	// ThresholdFraction is the scroll fraction that requests the next
	// page.
	// Default: 0.8
	ThresholdFraction float64 `yaml:"threshold_fraction" json:"threshold_fraction"`

	// SettleDelay is the scroll quiet period.
	// Default: 150ms
	SettleDelay Duration `yaml:"settle_delay" json:"settle_delay"`

	// PageSize is the number of records each load requests.
	// Default: 50
	PageSize int `yaml:"page_size" json:"page_size"`

	// Source selects where records come from.
	Source SourceConfig `yaml:"source" json:"source"`

	// Log configures the binary's logger.
	Log LogConfig `yaml:"log" json:"log"`
}

// SourceConfig selects and configures the record source.
type SourceConfig struct {
	// Kind is one of "generated", "pagefile", or "sqlite".
	// Default: generated
	Kind string `yaml:"kind" json:"kind"`

	// Path is the page file or SQLite database. Required unless Kind
	// is generated.
	Path string `yaml:"path" json:"path"`

	// Count is the total number of generated records.
	// Default: 10000
	Count int `yaml:"count" json:"count"`

	// Latency is the simulated per-page delay of the generated source.
	Latency Duration `yaml:"latency" json:"latency"`

	// FailureRate is the probability in [0, 1] that a generated page
	// load fails.
	FailureRate float64 `yaml:"failure_rate" json:"failure_rate"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level" json:"level"`

	// Output is the log file path. Empty means stderr.
	Output string `yaml:"output" json:"output"`
}

// Duration is a time.Duration written as a Go duration string
// ("150ms") in config files.
type Duration time.Duration

// UnmarshalText parses a duration string. Used by encoding/json.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalYAML parses a duration scalar.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	if err := d.UnmarshalText([]byte(value.Value)); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	return nil
}

// Default returns the default configuration. These defaults are the
// base a loaded file is merged into.
func Default() *Config {
	return &Config{
		ItemHeight:          1,
		EstimatedItemHeight: 3,
		ContainerExtent:     24,
		OverscanCount:       vlist.DefaultOverscan,
		ThresholdFraction:   infiniteload.DefaultThreshold,
		SettleDelay:         Duration(scrollstate.DefaultSettleDelay),
		PageSize:            50,
		Source: SourceConfig{
			Kind:  SourceGenerated,
			Count: 10000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the VLIST_CONFIG environment variable.
// There are no fallbacks: if VLIST_CONFIG is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your vlist.yaml config file, or use --config flag",
			EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// Default. The format is chosen by extension.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

// loadFile decodes a single configuration file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config %s: unsupported extension (want .yaml, .yml, .json, or .jsonc)", path)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Source.Path = expandVars(c.Source.Path, vars)
	c.Log.Output = expandVars(c.Log.Output, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. Every problem is
// reported, not just the first.
func (c *Config) Validate() error {
	var errs []error

	if c.ItemHeight < 0 || math.IsNaN(c.ItemHeight) || math.IsInf(c.ItemHeight, 0) {
		errs = append(errs, fmt.Errorf("item_height must be positive, or 0 for variable heights; got %v", c.ItemHeight))
	}
	if c.ItemHeight == 0 && !(c.EstimatedItemHeight > 0) {
		errs = append(errs, fmt.Errorf("estimated_item_height must be positive with variable heights; got %v", c.EstimatedItemHeight))
	}
	if !(c.ContainerExtent > 0) || math.IsInf(c.ContainerExtent, 0) {
		errs = append(errs, fmt.Errorf("container_extent must be positive; got %v", c.ContainerExtent))
	}
	if c.OverscanCount < 0 {
		errs = append(errs, fmt.Errorf("overscan_count must not be negative; got %d", c.OverscanCount))
	}
	if !(c.ThresholdFraction > 0 && c.ThresholdFraction <= 1) {
		errs = append(errs, fmt.Errorf("threshold_fraction must be in (0, 1]; got %v", c.ThresholdFraction))
	}
	if c.SettleDelay <= 0 {
		errs = append(errs, fmt.Errorf("settle_delay must be positive; got %s", time.Duration(c.SettleDelay)))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size must be positive; got %d", c.PageSize))
	}

	switch c.Source.Kind {
	case SourceGenerated:
		if c.Source.Count < 0 {
			errs = append(errs, fmt.Errorf("source.count must not be negative; got %d", c.Source.Count))
		}
		if !(c.Source.FailureRate >= 0 && c.Source.FailureRate <= 1) {
			errs = append(errs, fmt.Errorf("source.failure_rate must be in [0, 1]; got %v", c.Source.FailureRate))
		}
		if c.Source.Latency < 0 {
			errs = append(errs, fmt.Errorf("source.latency must not be negative"))
		}
	case SourcePageFile, SourceSQLite:
		if c.Source.Path == "" {
			errs = append(errs, fmt.Errorf("source.path is required for source kind %q", c.Source.Kind))
		}
	default:
		errs = append(errs, fmt.Errorf("source.kind must be one of: %v", []string{SourceGenerated, SourcePageFile, SourceSQLite}))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// ListOptions converts the list settings to vlist.Options. Loader,
// Clock, Host, OnSettled and Logger are left for the caller to set.
func (c *Config) ListOptions() vlist.Options {
	options := vlist.DefaultOptions()
	options.ItemHeight = c.ItemHeight
	options.EstimatedItemHeight = c.EstimatedItemHeight
	options.ContainerExtent = c.ContainerExtent
	options.OverscanCount = c.OverscanCount
	options.ThresholdFraction = c.ThresholdFraction
	options.SettleDelay = time.Duration(c.SettleDelay)
	return options
}
