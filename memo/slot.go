package memo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/on-the-ground/trackmemo/shared/helper"
	"github.com/on-the-ground/trackmemo/track"
	"go.uber.org/zap"
)

// slot is the single cache entry of one memoized function.
// It is Empty until the first successful call, then Valid for good.
type slot[R any] struct {
	cfg     config
	logger  *zap.Logger
	metrics *metrics

	mu      sync.Mutex
	valid   bool
	records []*track.Record
	result  R
}

func newSlot[R any](opts []Option) *slot[R] {
	cfg := newConfig(opts)

	fields := []zap.Field{zap.String("memo_id", uuid.NewString())}
	if cfg.name != "" {
		fields = append(fields, zap.String("memo_name", cfg.name))
	}
	logger := cfg.logger.With(fields...)

	m, err := newMetrics(cfg.meterProvider.Meter(meterName), cfg.name)
	if err != nil {
		logger.Warn("failed to create memo metrics, recording nothing", zap.Error(err))
		m = noopMetrics()
	}

	return &slot[R]{cfg: cfg, logger: logger, metrics: m}
}

// begin decides whether args can be served from the slot. On a miss it
// returns fresh records and the tracked values to call the function with.
//
// The slot is only locked to read its state. Hooks and change detection run
// unlocked against that copy, so they may call the memoized function again.
func (s *slot[R]) begin(ctx context.Context, args []any) (records []*track.Record, tracked []any, cached R, hit bool) {
	s.mu.Lock()
	valid, previous, result := s.valid, s.records, s.result
	s.mu.Unlock()

	if valid && !s.changed(previous, args) {
		s.metrics.hit(ctx)
		s.logger.Debug("memo hit", zap.Int("num_args", len(args)))
		return nil, nil, result, true
	}
	if !valid {
		s.logger.Debug("memo recompute", zap.String("cause", "empty"))
	}
	records, tracked = track.NormalizeArgs(args)
	return records, tracked, cached, false
}

// changed compares args against the records of a valid slot.
func (s *slot[R]) changed(previous []*track.Record, args []any) bool {
	switch {
	case s.cfg.isChanged != nil:
		changed := s.cfg.isChanged(args, previous)
		if changed {
			s.logger.Debug("memo recompute", zap.String("cause", "isChanged"))
		}
		return changed
	case s.cfg.shouldCompare != nil && !s.cfg.shouldCompare(args, previous):
		return false
	case len(args) != len(previous):
		s.logger.Debug("memo recompute",
			zap.String("cause", "arity"),
			zap.Int("cached_args", len(previous)),
			zap.Int("num_args", len(args)),
		)
		return true
	}

	for i, r := range previous {
		if reason, changed := track.Diff(r, args[i], s.cfg.track); changed {
			s.logger.Debug("memo recompute",
				zap.String("cause", "argument"),
				zap.Int("arg", i),
				zap.Stringer("reason", reason),
			)
			return true
		}
	}
	return false
}

// commit stores a successful result. Failed results leave the slot as it was.
func (s *slot[R]) commit(ctx context.Context, records []*track.Record, res R, err error, elapsed time.Duration) (R, error) {
	s.metrics.recompute(ctx, elapsed, err)
	if err != nil {
		s.logger.Debug("memo call failed, keeping previous entry", zap.Error(err))
		var zero R
		return zero, err
	}

	out := detrackAs(res)

	s.mu.Lock()
	s.records = records
	s.result = out
	s.valid = true
	s.mu.Unlock()
	return out, nil
}

func detrackAs[R any](res R) R {
	return helper.AsOr(track.Detrack(res), res)
}
