// Package gym sells membership plans and tracks the resulting validity
// windows.
package gym

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/pkg/db/models"
	"github.com/wellport/wellport-backend/pkg/enums"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/logger"
	"gorm.io/gorm"
)

type repository interface {
	ListActivePlans(ctx context.Context) ([]models.GymPlan, error)
	FindPlan(ctx context.Context, id uuid.UUID) (*models.GymPlan, error)
	CreateMembership(ctx context.Context, membership *models.GymMembership) error
	ListMemberships(ctx context.Context, userID uuid.UUID) ([]models.GymMembership, error)
	MarkExpired(ctx context.Context, ids []uuid.UUID) error
}

// Service is the gym benefits surface.
type Service interface {
	ListPlans(ctx context.Context) ([]models.GymPlan, error)
	Purchase(ctx context.Context, userID, planID uuid.UUID) (*models.GymMembership, error)
	MyMemberships(ctx context.Context, userID uuid.UUID) ([]models.GymMembership, error)
}

type service struct {
	repo repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService wires the gym service.
func NewService(repo repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

func (s *service) ListPlans(ctx context.Context) ([]models.GymPlan, error) {
	plans, err := s.repo.ListActivePlans(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list gym plans")
	}
	return plans, nil
}

// Purchase buys a plan. The validity window opens immediately and runs for the
// plan's configured duration; the price is captured on the membership so later
// plan edits never change what was paid.
func (s *service) Purchase(ctx context.Context, userID, planID uuid.UUID) (*models.GymMembership, error) {
	plan, err := s.repo.FindPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "gym plan not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load gym plan")
	}
	if !plan.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "gym plan is no longer offered")
	}

	starts := s.now().UTC()
	membership := &models.GymMembership{
		UserID:    userID,
		PlanID:    plan.ID,
		Amount:    plan.Price,
		StartsAt:  starts,
		ExpiresAt: starts.AddDate(0, 0, plan.DurationDays),
		Status:    enums.GymMembershipActive,
	}
	if err := s.repo.CreateMembership(ctx, membership); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create membership")
	}
	membership.Plan = plan
	return membership, nil
}

// MyMemberships lists the member's purchases, lazily flipping status on any
// whose window has passed.
func (s *service) MyMemberships(ctx context.Context, userID uuid.UUID) ([]models.GymMembership, error) {
	memberships, err := s.repo.ListMemberships(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list memberships")
	}

	now := s.now().UTC()
	var lapsed []uuid.UUID
	for i := range memberships {
		if memberships[i].Status == enums.GymMembershipActive && memberships[i].ExpiresAt.Before(now) {
			memberships[i].Status = enums.GymMembershipExpired
			lapsed = append(lapsed, memberships[i].ID)
		}
	}
	if len(lapsed) > 0 {
		if err := s.repo.MarkExpired(ctx, lapsed); err != nil {
			s.logg.Warn(s.logg.WithUserID(ctx, userID.String()), "persisting expired membership status failed")
		}
	}
	return memberships, nil
}
