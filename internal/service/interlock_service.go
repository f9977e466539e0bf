// Package service contains application services layered on the guard core:
// profile compilation from configuration, and evaluation with request
// tracking, metrics, and history recording.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/silverline-robotics/interlock/internal/domain/history"
	"github.com/silverline-robotics/interlock/internal/telemetry"
	"github.com/silverline-robotics/interlock/pkg/interlock"
)

// Namer is implemented by subjects that can identify themselves in history
// records.
type Namer interface {
	Name() string
}

// InterlockService runs actions behind a guard and records what the gate
// decided: a uuid request ID, latency, outcome counters, and an optional
// history record per call. The outcome semantics are exactly the core's; the
// service only observes.
type InterlockService struct {
	guard   *interlock.Guard
	profile string
	store   history.Store // nil disables recording
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// NewInterlockService creates an InterlockService. store may be nil to
// disable history recording.
func NewInterlockService(
	guard *interlock.Guard,
	profile string,
	store history.Store,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *InterlockService {
	return &InterlockService{
		guard:   guard,
		profile: profile,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Invoke runs action behind the guard for the given subject, recording the
// outcome. The return values are the guard's, unchanged.
func (s *InterlockService) Invoke(ctx context.Context, subject any, action interlock.Action) (any, error) {
	requestID := uuid.New().String()
	start := time.Now()

	value, err := s.guard.Invoke(subject, action)
	latency := time.Since(start)

	rec := history.Record{
		RequestID: requestID,
		Profile:   s.profile,
		Subject:   subjectName(subject),
		LatencyMs: latency.Milliseconds(),
		CreatedAt: time.Now().UTC(),
	}
	rec.Outcome, rec.Reason, rec.DryRun = classify(value, err)

	s.metrics.Evaluations.WithLabelValues(string(rec.Outcome)).Inc()
	s.metrics.EvaluationSeconds.Observe(latency.Seconds())

	if s.store != nil {
		if appendErr := s.store.Append(ctx, rec); appendErr != nil {
			s.metrics.HistoryDrops.Inc()
			s.logger.Warn("failed to record evaluation",
				"request_id", requestID,
				"error", appendErr,
			)
		}
	}

	switch rec.Outcome {
	case history.OutcomeBlocked, history.OutcomeRaised:
		s.logger.Info("action suppressed",
			"request_id", requestID,
			"profile", s.profile,
			"subject", rec.Subject,
			"outcome", rec.Outcome,
			"reason", rec.Reason,
		)
	default:
		s.logger.Debug("action evaluated",
			"request_id", requestID,
			"profile", s.profile,
			"subject", rec.Subject,
			"outcome", rec.Outcome,
			"latency_ms", rec.LatencyMs,
		)
	}

	return value, err
}

// classify maps the guard's return values onto a history outcome.
func classify(value any, err error) (history.Outcome, string, bool) {
	if err != nil {
		var verr *interlock.ViolationError
		if errors.As(err, &verr) {
			return history.OutcomeRaised, verr.Message, false
		}
		// The action itself failed; the gate let it run.
		return history.OutcomeExecuted, err.Error(), false
	}
	if res, ok := value.(*interlock.Result); ok {
		if res.Status == interlock.StatusError {
			return history.OutcomeBlocked, res.Reason, res.DryRun
		}
		if res.DryRun {
			return history.OutcomeSimulated, res.Reason, true
		}
		return history.OutcomeExecuted, res.Reason, false
	}
	return history.OutcomeExecuted, "", false
}

// subjectName derives a stable label for the acting subject.
func subjectName(subject any) string {
	switch s := subject.(type) {
	case nil:
		return ""
	case Namer:
		return s.Name()
	default:
		return fmt.Sprintf("%T", subject)
	}
}
