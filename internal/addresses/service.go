// Package addresses manages the member's address book. Entries carry a
// relationship label and an address-type label used when picking a delivery
// address at checkout.
package addresses

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/pkg/db/models"
	"github.com/wellport/wellport-backend/pkg/enums"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"gorm.io/gorm"
)

const defaultRelationship = "self"

type repository interface {
	Create(ctx context.Context, address *models.SavedAddress) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SavedAddress, error)
	FindOwned(ctx context.Context, userID, id uuid.UUID) (*models.SavedAddress, error)
	Update(ctx context.Context, address *models.SavedAddress) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service is the address-book surface.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.SavedAddress, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*models.SavedAddress, error)
	Update(ctx context.Context, userID, id uuid.UUID, req UpdateRequest) (*models.SavedAddress, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService wires the address-book service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.SavedAddress, error) {
	found, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list addresses")
	}
	return found, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*models.SavedAddress, error) {
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	address := &models.SavedAddress{
		UserID:       userID,
		Name:         req.Name,
		Phone:        req.Phone,
		Line1:        req.Line1,
		Line2:        req.Line2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Relationship: req.Relationship,
		AddressType:  req.AddressType,
	}
	if err := s.repo.Create(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create address")
	}
	return address, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, req UpdateRequest) (*models.SavedAddress, error) {
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	address, err := s.repo.FindOwned(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load address")
	}

	address.Name = req.Name
	address.Phone = req.Phone
	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.State = req.State
	address.PostalCode = req.PostalCode
	address.Relationship = req.Relationship
	address.AddressType = req.AddressType

	if err := s.repo.Update(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update address")
	}
	return address, nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete address")
	}
	return nil
}

func normalize(req CreateRequest) (CreateRequest, error) {
	if req.Relationship == "" {
		req.Relationship = defaultRelationship
	}
	if req.AddressType == "" {
		req.AddressType = enums.AddressTypeHome
	}
	if !req.AddressType.IsValid() {
		return req, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown address type %q", req.AddressType))
	}
	return req, nil
}
