package dependants

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/pkg/db/models"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"gorm.io/gorm"
)

type memoryRepo struct {
	entries map[uuid.UUID]*models.Dependant
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{entries: map[uuid.UUID]*models.Dependant{}}
}

func (m *memoryRepo) Create(ctx context.Context, dependant *models.Dependant) error {
	dependant.ID = uuid.New()
	m.entries[dependant.ID] = dependant
	return nil
}

func (m *memoryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Dependant, error) {
	var found []models.Dependant
	for _, d := range m.entries {
		if d.UserID == userID {
			found = append(found, *d)
		}
	}
	return found, nil
}

func (m *memoryRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	dependant, ok := m.entries[id]
	if !ok || dependant.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(m.entries, id)
	return nil
}

func TestCreateNormalizesRelation(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(newMemoryRepo())
	dependant, err := svc.Create(context.Background(), uuid.New(), CreateRequest{
		FirstName: "Ravi", LastName: "Rao", Relation: "  Spouse ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dependant.Relation != "spouse" {
		t.Fatalf("relation should normalize, got %q", dependant.Relation)
	}
}

func TestCreateRejectsUnknownRelation(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(newMemoryRepo())
	_, err := svc.Create(context.Background(), uuid.New(), CreateRequest{
		FirstName: "Ravi", LastName: "Rao", Relation: "roommate",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsFutureBirthDate(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(newMemoryRepo())
	future := time.Now().Add(24 * time.Hour)
	_, err := svc.Create(context.Background(), uuid.New(), CreateRequest{
		FirstName: "Ravi", LastName: "Rao", Relation: "child", DateOfBirth: &future,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(newMemoryRepo())
	owner := uuid.New()
	dependant, _ := svc.Create(context.Background(), owner, CreateRequest{
		FirstName: "Ravi", LastName: "Rao", Relation: "child",
	})

	if err := svc.Delete(context.Background(), uuid.New(), dependant.ID); pkgerrors.As(err) == nil {
		t.Fatalf("foreign delete should fail, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, dependant.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}
