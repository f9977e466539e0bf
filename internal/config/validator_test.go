package config

import (
	"strings"
	"testing"
)

func baseConfig() *Config {
	cfg := &Config{
		Profiles: []ProfileConfig{
			{
				Name:   "drive",
				OnFail: "block",
				Rules: []RuleConfig{
					{Type: RuleBatteryMin, Threshold: 20},
				},
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

func TestValidateAccepts(t *testing.T) {
	if err := baseConfig().Validate(); err != nil {
		t.Errorf("Validate failed for valid config: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "no profiles",
			mutate:  func(c *Config) { c.Profiles = nil },
			wantMsg: "Profiles",
		},
		{
			name:    "missing profile name",
			mutate:  func(c *Config) { c.Profiles[0].Name = "" },
			wantMsg: "Name",
		},
		{
			name:    "bad on_fail",
			mutate:  func(c *Config) { c.Profiles[0].OnFail = "ignore" },
			wantMsg: "one of",
		},
		{
			name:    "unknown rule type",
			mutate:  func(c *Config) { c.Profiles[0].Rules[0].Type = "gps_lock" },
			wantMsg: "one of",
		},
		{
			name:    "battery_min without threshold",
			mutate:  func(c *Config) { c.Profiles[0].Rules[0].Threshold = 0 },
			wantMsg: "threshold",
		},
		{
			name: "require_connectivity without mode",
			mutate: func(c *Config) {
				c.Profiles[0].Rules = []RuleConfig{{Type: RuleRequireConnectivity}}
			},
			wantMsg: "mode",
		},
		{
			name: "cel without expression",
			mutate: func(c *Config) {
				c.Profiles[0].Rules = []RuleConfig{{Type: RuleCEL}}
			},
			wantMsg: "expression",
		},
		{
			name: "cel with invalid expression",
			mutate: func(c *Config) {
				c.Profiles[0].Rules = []RuleConfig{{Type: RuleCEL, Expression: "state["}}
			},
			wantMsg: "invalid CEL",
		},
		{
			name: "duplicate profile names",
			mutate: func(c *Config) {
				c.Profiles = append(c.Profiles, c.Profiles[0])
			},
			wantMsg: "duplicate",
		},
		{
			name:    "bad history backend",
			mutate:  func(c *Config) { c.History.Backend = "postgres" },
			wantMsg: "one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateAcceptsCELExpression(t *testing.T) {
	cfg := baseConfig()
	cfg.Profiles[0].Rules = append(cfg.Profiles[0].Rules, RuleConfig{
		Type:       RuleCEL,
		Expression: `state["battery"] >= 20.0`,
	})
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed for valid CEL rule: %v", err)
	}
}
