package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wellport/wellport-backend/pkg/logger"
)

type fakeSweeper struct {
	expired int64
	err     error
	calls   int
}

func (f *fakeSweeper) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	f.calls++
	return f.expired, f.err
}

func TestMembershipExpiryJobRuns(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	sweeper := &fakeSweeper{expired: 3}
	job, err := NewMembershipExpiryJob(sweeper, logg)
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if sweeper.calls != 1 {
		t.Fatalf("expected one sweep, got %d", sweeper.calls)
	}
}

func TestMembershipExpiryJobPropagatesError(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	job, err := NewMembershipExpiryJob(&fakeSweeper{err: errors.New("db down")}, logg)
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatalf("expected error to propagate")
	}
}
