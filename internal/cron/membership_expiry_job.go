package cron

import (
	"context"
	"errors"
	"time"

	"github.com/wellport/wellport-backend/pkg/logger"
)

type membershipSweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// MembershipExpiryJob flips gym memberships whose validity window has passed.
// The portal also lapses memberships lazily on read; the sweep keeps rows
// honest for members who never come back.
type MembershipExpiryJob struct {
	gyms membershipSweeper
	logg *logger.Logger
}

// NewMembershipExpiryJob builds the expiry sweep job.
func NewMembershipExpiryJob(gyms membershipSweeper, logg *logger.Logger) (*MembershipExpiryJob, error) {
	if gyms == nil {
		return nil, errors.New("gym repository required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	return &MembershipExpiryJob{gyms: gyms, logg: logg}, nil
}

func (j *MembershipExpiryJob) Name() string { return "gym_membership_expiry" }

func (j *MembershipExpiryJob) Run(ctx context.Context) error {
	expired, err := j.gyms.SweepExpired(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	j.logg.Info(j.logg.WithField(ctx, "expired", expired), "membership expiry sweep complete")
	return nil
}
