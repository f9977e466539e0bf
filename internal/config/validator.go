package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	celeval "github.com/silverline-robotics/interlock/internal/adapter/outbound/cel"
)

// Validate validates the Config using struct tags and cross-field rules.
// Returns an error with actionable messages on failure.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	if err := c.validateProfileNames(); err != nil {
		return err
	}
	return c.validateRules()
}

// validateProfileNames rejects duplicate profile names.
func (c *Config) validateProfileNames() error {
	seen := make(map[string]struct{}, len(c.Profiles))
	for _, p := range c.Profiles {
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate profile name %q", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// validateRules applies the per-type cross-field requirements: numeric rules
// need a threshold, connectivity needs a mode, cel needs a valid expression.
func (c *Config) validateRules() error {
	var ev *celeval.Evaluator

	for _, p := range c.Profiles {
		for i, r := range p.Rules {
			switch r.Type {
			case RuleBatteryMin, RuleMaxTemp:
				if r.Threshold <= 0 {
					return fmt.Errorf("profile %q rule %d (%s): threshold must be positive", p.Name, i, r.Type)
				}
			case RuleRequireConnectivity:
				if r.Mode == "" {
					return fmt.Errorf("profile %q rule %d: require_connectivity needs a mode", p.Name, i)
				}
			case RuleCEL:
				if r.Expression == "" {
					return fmt.Errorf("profile %q rule %d: cel rule needs an expression", p.Name, i)
				}
				if ev == nil {
					var err error
					if ev, err = celeval.NewEvaluator(); err != nil {
						return fmt.Errorf("failed to create CEL evaluator: %w", err)
					}
				}
				if err := ev.ValidateExpression(r.Expression); err != nil {
					return fmt.Errorf("profile %q rule %d: %w", p.Name, i, err)
				}
			}
		}
	}
	return nil
}

// formatValidationErrors converts validator errors into actionable messages.
func formatValidationErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "min":
			msgs = append(msgs, fmt.Sprintf("%s is required", fieldPath(fe)))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fieldPath(fe), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fieldPath(fe), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// fieldPath strips the top-level struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
