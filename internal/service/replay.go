package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/josh-kwaku/ledger-replay/internal/domain"
)

type recordSource interface {
	Next() (domain.Record, error)
}

type processor interface {
	ProcessRecord(r domain.Record) error
}

// Reporter receives every rejected event. It must not fail the run.
type Reporter interface {
	Rejected(ctx context.Context, rec domain.Record, reason error)
}

type RunStats struct {
	Processed int
	Applied   int
	Rejected  int
}

type ReplayService struct {
	engine   processor
	reporter Reporter
	logger   *slog.Logger
}

func NewReplayService(engine processor, reporter Reporter, logger *slog.Logger) *ReplayService {
	return &ReplayService{engine: engine, reporter: reporter, logger: logger}
}

// Run feeds every record from src into the engine, in order. Per-event
// rejections go to the reporter and never stop the run; a read failure or a
// cancelled context does.
func (s *ReplayService) Run(ctx context.Context, src recordSource) (RunStats, error) {
	var stats RunStats

	for {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("Run: after %d records: %w", stats.Processed, err)
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("Run: after %d records: %w", stats.Processed, err)
		}

		stats.Processed++
		if err := s.engine.ProcessRecord(rec); err != nil {
			reason := domain.RejectionReason(err)
			if reason == nil {
				return stats, fmt.Errorf("Run: %s: %w", rec, err)
			}
			stats.Rejected++
			s.reporter.Rejected(ctx, rec, err)
			continue
		}
		stats.Applied++
	}

	s.logger.Info("replay finished",
		"processed", stats.Processed,
		"applied", stats.Applied,
		"rejected", stats.Rejected,
	)
	return stats, nil
}
