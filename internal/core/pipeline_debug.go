// Per-stage timing for a single classification pass
package core

import (
	"log/slog"
	"time"
)

// StageTiming records one completed (or failed) stage.
type StageTiming struct {
	Stage    string
	Duration time.Duration
	Success  bool
}

// StageTracker times the stages of one classification run. It is not safe
// for concurrent use; stages run one after another.
type StageTracker struct {
	logger *slog.Logger
	stages []StageTiming
	start  time.Time
}

func NewStageTracker(logger *slog.Logger) *StageTracker {
	return &StageTracker{
		logger: logger,
		stages: make([]StageTiming, 0, 4),
		start:  time.Now(),
	}
}

// Track runs fn as the named stage and records how long it took.
func (st *StageTracker) Track(stage string, fn func() error) error {
	begin := time.Now()
	err := fn()
	duration := time.Since(begin)

	st.stages = append(st.stages, StageTiming{
		Stage:    stage,
		Duration: duration,
		Success:  err == nil,
	})

	if err != nil {
		st.logger.Debug("Stage failed",
			"stage", stage,
			"duration_us", duration.Microseconds(),
			"error", err)
		return err
	}

	st.logger.Debug("Stage complete",
		"stage", stage,
		"duration_us", duration.Microseconds())
	return nil
}

// Stages returns a copy of the recorded timings in execution order.
func (st *StageTracker) Stages() []StageTiming {
	result := make([]StageTiming, len(st.stages))
	copy(result, st.stages)
	return result
}

// Elapsed returns the wall time since the tracker was created.
func (st *StageTracker) Elapsed() time.Duration {
	return time.Since(st.start)
}

func (st *StageTracker) LogSummary() {
	attrs := make([]any, 0, 2*len(st.stages)+2)
	for _, s := range st.stages {
		attrs = append(attrs, s.Stage+"_us", s.Duration.Microseconds())
	}
	attrs = append(attrs, "total_us", st.Elapsed().Microseconds())

	st.logger.Debug("Classification timings", attrs...)
}
