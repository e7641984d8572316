// Package profile serves the member profile and keeps the contact scalars
// cached for checkout prefill.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/internal/users"
	"github.com/wellport/wellport-backend/pkg/db/models"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/logger"
	"gorm.io/gorm"
)

const cacheTTL = 24 * time.Hour

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, dto users.UpdateProfileDTO) error
}

type cacheStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type cacheKeyer interface {
	ProfileKey(userKey string) string
}

// Profile is the member view the portal renders.
type Profile struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      *string   `json:"phone,omitempty"`
	EmployeeID *string   `json:"employee_id,omitempty"`
}

// Contact is the cached slice of the profile used to prefill checkout.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// UpdateRequest carries the editable fields. Nil means unchanged.
type UpdateRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Phone     *string `json:"phone,omitempty"`
}

// Service is the profile surface.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Update(ctx context.Context, userID uuid.UUID, req UpdateRequest) (*Profile, error)
	Contact(ctx context.Context, userID uuid.UUID) (Contact, error)
}

type service struct {
	users userRepository
	cache cacheStore
	keyer cacheKeyer
	logg  *logger.Logger
}

// NewService wires the profile service.
func NewService(repo userRepository, cache cacheStore, keyer cacheKeyer, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if cache == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if keyer == nil {
		return nil, fmt.Errorf("cache keyer is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{users: repo, cache: cache, keyer: keyer, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load profile")
	}
	return toProfile(user), nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, req UpdateRequest) (*Profile, error) {
	err := s.users.UpdateProfile(ctx, userID, users.UpdateProfileDTO{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}

	// Drop the stale contact cache; the next checkout rebuilds it.
	if err := s.cache.Del(ctx, s.keyer.ProfileKey(userID.String())); err != nil {
		s.logg.Warn(s.logg.WithUserID(ctx, userID.String()), "invalidating profile cache failed")
	}

	return s.Get(ctx, userID)
}

// Contact serves the cached contact scalars, falling back to the database and
// refilling the cache on a miss.
func (s *service) Contact(ctx context.Context, userID uuid.UUID) (Contact, error) {
	key := s.keyer.ProfileKey(userID.String())
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var contact Contact
		if err := json.Unmarshal([]byte(raw), &contact); err == nil {
			return contact, nil
		}
	}

	prof, err := s.Get(ctx, userID)
	if err != nil {
		return Contact{}, err
	}

	contact := Contact{Name: prof.FirstName + " " + prof.LastName, Email: prof.Email}
	if prof.Phone != nil {
		contact.Phone = *prof.Phone
	}

	if payload, err := json.Marshal(contact); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), cacheTTL); err != nil {
			s.logg.Warn(s.logg.WithUserID(ctx, userID.String()), "caching profile contact failed")
		}
	}
	return contact, nil
}

func toProfile(user *models.User) *Profile {
	return &Profile{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Phone:      user.Phone,
		EmployeeID: user.EmployeeID,
	}
}
