package profile

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/wellport/wellport-backend/internal/users"
	"github.com/wellport/wellport-backend/pkg/db/models"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/logger"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	byID    map[uuid.UUID]*models.User
	updates int
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, dto users.UpdateProfileDTO) error {
	s.updates++
	user := s.byID[id]
	if dto.FirstName != nil {
		user.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		user.LastName = *dto.LastName
	}
	if dto.Phone != nil {
		user.Phone = dto.Phone
	}
	return nil
}

type memoryCache struct {
	values map[string]string
	sets   int
}

func newMemoryCache() *memoryCache { return &memoryCache{values: map[string]string{}} }

func (m *memoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.sets++
	m.values[key] = value.(string)
	return nil
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, error) {
	val, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *memoryCache) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

type staticKeyer struct{}

func (staticKeyer) ProfileKey(userKey string) string { return "wp:profile:" + userKey }

func newTestService(t *testing.T) (Service, *stubUserRepo, *memoryCache, uuid.UUID) {
	t.Helper()
	phone := "555"
	userID := uuid.New()
	repo := &stubUserRepo{byID: map[uuid.UUID]*models.User{
		userID: {ID: userID, Email: "asha@example.com", FirstName: "Asha", LastName: "Rao", Phone: &phone},
	}}
	cache := newMemoryCache()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
	svc, err := NewService(repo, cache, staticKeyer{}, logg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc, repo, cache, userID
}

func TestGetProfile(t *testing.T) {
	t.Parallel()

	svc, _, _, userID := newTestService(t)
	prof, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prof.FirstName != "Asha" || prof.Email != "asha@example.com" {
		t.Fatalf("profile mismatch: %+v", prof)
	}
}

func TestGetMissingProfile(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)
	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestContactCachesOnMiss(t *testing.T) {
	t.Parallel()

	svc, _, cache, userID := newTestService(t)

	contact, err := svc.Contact(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contact.Name != "Asha Rao" || contact.Phone != "555" {
		t.Fatalf("contact mismatch: %+v", contact)
	}
	if cache.sets != 1 {
		t.Fatalf("first lookup should fill the cache, sets=%d", cache.sets)
	}

	if _, err := svc.Contact(context.Background(), userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("second lookup should hit the cache, sets=%d", cache.sets)
	}
}

func TestUpdateInvalidatesCache(t *testing.T) {
	t.Parallel()

	svc, repo, cache, userID := newTestService(t)
	if _, err := svc.Contact(context.Background(), userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := "Aisha"
	prof, err := svc.Update(context.Background(), userID, UpdateRequest{FirstName: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prof.FirstName != "Aisha" || repo.updates != 1 {
		t.Fatalf("update not applied: %+v", prof)
	}
	if _, ok := cache.values["wp:profile:"+userID.String()]; ok {
		t.Fatal("cache entry should be invalidated on update")
	}
}
