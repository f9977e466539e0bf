package service

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/silverline-robotics/interlock/internal/config"
	"github.com/silverline-robotics/interlock/pkg/interlock"
	"github.com/silverline-robotics/interlock/pkg/interlock/rules"
)

// compiledProfiles is the immutable snapshot stored in atomic.Value.
type compiledProfiles struct {
	guards      map[string]*interlock.Guard
	fingerprint uint64
}

// ProfileService compiles configured guard profiles into ready-to-use guards.
// Supports hot-reload via Reload for runtime profile updates. Uses
// atomic.Value for lock-free reads on the hot path.
type ProfileService struct {
	snapshot atomic.Value // stores *compiledProfiles
	mu       sync.Mutex   // only for Reload writes
	logger   *slog.Logger
}

// NewProfileService compiles all profiles from cfg. Compilation is eager so
// an invalid CEL expression or unknown rule type fails at startup, not at the
// first guarded call.
func NewProfileService(cfg *config.Config, logger *slog.Logger) (*ProfileService, error) {
	s := &ProfileService{logger: logger}

	snap, err := compileProfiles(cfg)
	if err != nil {
		return nil, err
	}
	s.snapshot.Store(snap)

	logger.Info("profiles compiled",
		"profiles", len(snap.guards),
		"fingerprint", strconv.FormatUint(snap.fingerprint, 16),
	)
	return s, nil
}

// Guard returns the compiled guard for the named profile.
func (s *ProfileService) Guard(name string) (*interlock.Guard, bool) {
	snap := s.snapshot.Load().(*compiledProfiles)
	g, ok := snap.guards[name]
	return g, ok
}

// Profiles returns the compiled profile names, sorted.
func (s *ProfileService) Profiles() []string {
	snap := s.snapshot.Load().(*compiledProfiles)
	names := make([]string, 0, len(snap.guards))
	for name := range snap.guards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fingerprint returns the xxhash fingerprint of the compiled profile set.
func (s *ProfileService) Fingerprint() uint64 {
	return s.snapshot.Load().(*compiledProfiles).fingerprint
}

// Reload recompiles profiles from cfg and swaps the snapshot. When the
// fingerprint is unchanged the recompiled set is discarded and the current
// snapshot kept.
func (s *ProfileService) Reload(cfg *config.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := compileProfiles(cfg)
	if err != nil {
		return err
	}

	current := s.snapshot.Load().(*compiledProfiles)
	if current.fingerprint == snap.fingerprint {
		s.logger.Debug("profile reload skipped, fingerprint unchanged",
			"fingerprint", strconv.FormatUint(snap.fingerprint, 16),
		)
		return nil
	}

	s.snapshot.Store(snap)
	s.logger.Info("profiles reloaded",
		"profiles", len(snap.guards),
		"fingerprint", strconv.FormatUint(snap.fingerprint, 16),
	)
	return nil
}

// compileProfiles builds guards for every configured profile.
func compileProfiles(cfg *config.Config) (*compiledProfiles, error) {
	guards := make(map[string]*interlock.Guard, len(cfg.Profiles))

	for _, pc := range cfg.Profiles {
		ruleList := make([]interlock.Rule, 0, len(pc.Rules))
		for i, rc := range pc.Rules {
			r, err := buildRule(rc)
			if err != nil {
				return nil, fmt.Errorf("profile %q rule %d: %w", pc.Name, i, err)
			}
			ruleList = append(ruleList, r)
		}
		guards[pc.Name] = interlock.New(interlock.Config{
			Rules:  ruleList,
			OnFail: interlock.OnFail(pc.OnFail),
		})
	}

	return &compiledProfiles{
		guards:      guards,
		fingerprint: fingerprintProfiles(cfg.Profiles),
	}, nil
}

// buildRule constructs a rule from its configuration.
func buildRule(rc config.RuleConfig) (interlock.Rule, error) {
	switch rc.Type {
	case config.RuleBatteryMin:
		return rules.BatteryMin(rc.Threshold), nil
	case config.RuleMaxTemp:
		return rules.MaxTemp(rc.Threshold), nil
	case config.RuleRequireConnectivity:
		return rules.RequireConnectivity(rc.Mode), nil
	case config.RuleCEL:
		return rules.Expr(rc.Expression)
	default:
		return nil, fmt.Errorf("unknown rule type %q", rc.Type)
	}
}

// fingerprintProfiles hashes the declared profile set. Declaration order is
// significant (rule order is first-failure-wins), so the hash covers fields
// in order with zero-byte separators.
func fingerprintProfiles(profiles []config.ProfileConfig) uint64 {
	h := xxhash.New()
	sep := []byte{0}

	for _, p := range profiles {
		_, _ = h.WriteString(p.Name)
		_, _ = h.Write(sep)
		_, _ = h.WriteString(p.OnFail)
		_, _ = h.Write(sep)
		for _, r := range p.Rules {
			_, _ = h.WriteString(r.Type)
			_, _ = h.Write(sep)
			_, _ = h.WriteString(strconv.FormatFloat(r.Threshold, 'g', -1, 64))
			_, _ = h.Write(sep)
			_, _ = h.WriteString(r.Mode)
			_, _ = h.Write(sep)
			_, _ = h.WriteString(r.Expression)
			_, _ = h.Write(sep)
		}
	}
	return h.Sum64()
}
