// Package config provides configuration types and loading for the interlock.
//
// Configuration is file-based by design: a single interlock.yaml declares
// named guard profiles (ordered rule lists plus an on-failure policy) and the
// optional evaluation-history backend. There is no remote configuration
// source and no network surface.
package config

// Rule type names accepted in profile configuration.
const (
	RuleBatteryMin          = "battery_min"
	RuleMaxTemp             = "max_temp"
	RuleRequireConnectivity = "require_connectivity"
	RuleCEL                 = "cel"
)

// History backend names.
const (
	HistoryBackendMemory = "memory"
	HistoryBackendSQLite = "sqlite"
)

// Config is the top-level configuration for the interlock.
type Config struct {
	// Profiles declares the named guard profiles.
	Profiles []ProfileConfig `yaml:"profiles" mapstructure:"profiles" validate:"required,min=1,dive"`

	// History configures where evaluation records are kept.
	History HistoryConfig `yaml:"history" mapstructure:"history"`

	// DevMode enables development features (verbose logging, etc).
	DevMode bool `yaml:"dev_mode" mapstructure:"dev_mode"`
}

// ProfileConfig declares one guard profile: an ordered rule list and an
// on-failure policy. Rule order matters; evaluation stops at the first
// failing rule.
type ProfileConfig struct {
	// Name identifies the profile. Must be unique.
	Name string `yaml:"name" mapstructure:"name" validate:"required"`
	// OnFail is the on-failure policy: "block" (default) or "raise".
	OnFail string `yaml:"on_fail" mapstructure:"on_fail" validate:"omitempty,oneof=block raise"`
	// Rules is the ordered rule list. An empty list always permits.
	Rules []RuleConfig `yaml:"rules" mapstructure:"rules" validate:"dive"`
}

// RuleConfig declares one rule. Which fields are required depends on Type;
// cross-field checks live in Validate.
type RuleConfig struct {
	// Type selects the rule implementation.
	Type string `yaml:"type" mapstructure:"type" validate:"required,oneof=battery_min max_temp require_connectivity cel"`
	// Threshold is the numeric bound for battery_min (minimum percent) and
	// max_temp (maximum temperature).
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
	// Mode is the required connectivity mode for require_connectivity.
	// Comparison is case-insensitive.
	Mode string `yaml:"mode" mapstructure:"mode"`
	// Expression is the CEL condition for cel rules. It sees the snapshot as
	// the `state` map and must evaluate to a boolean.
	Expression string `yaml:"expression" mapstructure:"expression"`
}

// HistoryConfig configures the evaluation-history store.
type HistoryConfig struct {
	// Backend selects the store: "memory" (default) or "sqlite".
	Backend string `yaml:"backend" mapstructure:"backend" validate:"omitempty,oneof=memory sqlite"`
	// Path is the database file for the sqlite backend.
	Path string `yaml:"path" mapstructure:"path"`
	// Capacity bounds the memory backend's ring buffer.
	Capacity int `yaml:"capacity" mapstructure:"capacity" validate:"omitempty,min=1"`
}

// Default returns a configuration with defaults applied: memory history with
// the default capacity and no profiles. A config without profiles does not
// validate; Default is the base the loader merges files into.
func Default() *Config {
	return &Config{
		History: HistoryConfig{
			Backend:  HistoryBackendMemory,
			Capacity: 1000,
		},
	}
}

// applyDefaults fills zero-valued optional fields.
func (c *Config) applyDefaults() {
	if c.History.Backend == "" {
		c.History.Backend = HistoryBackendMemory
	}
	if c.History.Capacity == 0 {
		c.History.Capacity = 1000
	}
	if c.History.Backend == HistoryBackendSQLite && c.History.Path == "" {
		c.History.Path = "interlock.db"
	}
	for i := range c.Profiles {
		if c.Profiles[i].OnFail == "" {
			c.Profiles[i].OnFail = "block"
		}
	}
}
