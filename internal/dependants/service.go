// Package dependants manages the family members covered under a member's
// benefits.
package dependants

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/pkg/db/models"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"gorm.io/gorm"
)

var allowedRelations = map[string]bool{
	"spouse": true,
	"child":  true,
	"parent": true,
	"other":  true,
}

// CreateRequest is the payload for a new dependant.
type CreateRequest struct {
	FirstName   string     `json:"first_name" validate:"required"`
	LastName    string     `json:"last_name" validate:"required"`
	Relation    string     `json:"relation" validate:"required"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}

type repository interface {
	Create(ctx context.Context, dependant *models.Dependant) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Dependant, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service is the dependants surface.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Dependant, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*models.Dependant, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService wires the dependants service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.Dependant, error) {
	found, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list dependants")
	}
	return found, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*models.Dependant, error) {
	relation := strings.ToLower(strings.TrimSpace(req.Relation))
	if !allowedRelations[relation] {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown relation %q", req.Relation))
	}
	if req.DateOfBirth != nil && req.DateOfBirth.After(time.Now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date of birth is in the future")
	}

	dependant := &models.Dependant{
		UserID:      userID,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Relation:    relation,
		DateOfBirth: req.DateOfBirth,
	}
	if err := s.repo.Create(ctx, dependant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create dependant")
	}
	return dependant, nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "dependant not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete dependant")
	}
	return nil
}
