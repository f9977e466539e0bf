package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silverline-robotics/interlock/internal/config"
)

var validateCmd = &cobra.Command{
	Use:          "validate",
	Short:        "Validate the configuration file",
	Long:         `Load the configuration, check profile and rule declarations, and compile all CEL expressions.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ruleCount := 0
		for _, p := range cfg.Profiles {
			ruleCount += len(p.Rules)
		}
		fmt.Printf("configuration valid: %d profile(s), %d rule(s)\n", len(cfg.Profiles), ruleCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
