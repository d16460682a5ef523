package verification

import (
	"context"
	"log/slog"
	"time"
)

type sweepStore interface {
	QueryExpired(ctx context.Context, cutoff int64) ([]string, error)
	DeleteBatch(ctx context.Context, codeIDs []string) error
}

// Sweeper periodically removes verification records whose expiry has passed.
// It is a backstop against abandoned records: the verifier already deletes
// expired records it encounters, so the interval can be coarse.
type Sweeper struct {
	records  sweepStore
	interval time.Duration
}

func NewSweeper(records sweepStore, interval time.Duration) *Sweeper {
	return &Sweeper{records: records, interval: interval}
}

// Run sweeps on a fixed interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.SweepOnce(ctx)
			if err != nil {
				slog.Error("sweep failed", "err", err)
				continue
			}
			slog.Info("sweep complete", "deleted", deleted)
		}
	}
}

// SweepOnce deletes all records expired at the time of the call and returns
// how many were matched. Zero matches is a no-op; records deleted
// concurrently by a verifier between query and delete are tolerated because
// deleting a missing key is a no-op.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	ids, err := s.records.QueryExpired(ctx, time.Now().UnixMilli())
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := s.records.DeleteBatch(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}
