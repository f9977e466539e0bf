package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/silverline-robotics/interlock/internal/config"
	"github.com/silverline-robotics/interlock/internal/service"
	"github.com/silverline-robotics/interlock/internal/telemetry"
	"github.com/silverline-robotics/interlock/pkg/interlock"
)

var (
	checkProfile   string
	checkStateFile string
	checkDryRun    bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a state snapshot against a guard profile",
	Long: `Evaluate a state snapshot file (JSON or YAML) against a named guard
profile from the configuration. Exits with code 1 when the action would be
blocked or a violation raised.

The snapshot file is a flat mapping of sensor keys to values:

  {"battery": 80, "temperature": 50, "connection": "WIFI"}`,
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkProfile, "profile", "", "guard profile to evaluate against (required)")
	checkCmd.Flags().StringVar(&checkStateFile, "state", "", "state snapshot file, JSON or YAML (required)")
	checkCmd.Flags().BoolVar(&checkDryRun, "dry-run", false, "evaluate rules but report a simulated result")
	_ = checkCmd.MarkFlagRequired("profile")
	_ = checkCmd.MarkFlagRequired("state")
	rootCmd.AddCommand(checkCmd)
}

// fileSubject adapts a snapshot file to the guard's subject interfaces.
type fileSubject struct {
	state  interlock.State
	dryRun bool
}

func (s fileSubject) StateSnapshot() interlock.State { return s.state }
func (s fileSubject) DryRun() bool                   { return s.dryRun }
func (s fileSubject) Name() string                   { return "cli" }

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.DevMode)

	profiles, err := service.NewProfileService(cfg, logger)
	if err != nil {
		return err
	}
	guard, ok := profiles.Guard(checkProfile)
	if !ok {
		return fmt.Errorf("unknown profile %q (configured: %s)",
			checkProfile, strings.Join(profiles.Profiles(), ", "))
	}

	state, err := loadStateFile(checkStateFile)
	if err != nil {
		return err
	}

	store, err := service.NewHistoryStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	metrics := telemetry.NewMetrics(prometheus.NewRegistry())
	svc := service.NewInterlockService(guard, checkProfile, store, metrics, logger)

	subject := fileSubject{state: state, dryRun: checkDryRun}
	value, err := svc.Invoke(context.Background(), subject, func() (any, error) {
		// The CLI probes the gate; there is no hardware to drive.
		return &interlock.Result{Status: interlock.StatusSuccess, Reason: "checks passed"}, nil
	})

	var verr *interlock.ViolationError
	if errors.As(err, &verr) {
		fmt.Fprintf(os.Stderr, "BLOCKED: %s\n", verr.Message)
		if verr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "Suggestion: %s\n", verr.Suggestion)
		}
		os.Exit(1)
	}
	if err != nil {
		return err
	}

	res, ok := value.(*interlock.Result)
	if !ok {
		return fmt.Errorf("unexpected result type %T", value)
	}
	out, _ := json.Marshal(res)
	fmt.Println(string(out))

	if res.Status == interlock.StatusError {
		os.Exit(1)
	}
	return nil
}

// loadStateFile reads a snapshot mapping from a JSON or YAML file.
func loadStateFile(path string) (interlock.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
		}
	}
	return interlock.State(raw), nil
}

// newLogger builds the CLI logger. DevMode enables debug output.
func newLogger(devMode bool) *slog.Logger {
	level := slog.LevelInfo
	if devMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
