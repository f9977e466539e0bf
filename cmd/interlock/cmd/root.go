// Package cmd provides the CLI commands for the interlock.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/silverline-robotics/interlock/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "interlock",
	Short: "Interlock - safety gate for hardware-triggering actions",
	Long: `Interlock evaluates precondition rules against a subject's state snapshot
before a hardware-triggering action is allowed to run. If any rule fails,
the action is suppressed and a structured failure result is produced.

Quick start:
  1. Create a config file: interlock.yaml with one or more guard profiles
  2. Run: interlock check --profile drive --state robot.json

Configuration:
  Config is loaded from interlock.yaml in the current directory,
  $HOME/.interlock/, or /etc/interlock/.

  Environment variables can override config values with the INTERLOCK_ prefix.
  Example: INTERLOCK_HISTORY_BACKEND=sqlite

Commands:
  check       Evaluate a state snapshot against a guard profile
  validate    Validate the configuration file
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./interlock.yaml)")
}

func initConfig() {
	config.InitViper(cfgFile)
}
