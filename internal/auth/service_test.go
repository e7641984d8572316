package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/internal/users"
	pkgAuth "github.com/wellport/wellport-backend/pkg/auth"
	"github.com/wellport/wellport-backend/pkg/config"
	"github.com/wellport/wellport-backend/pkg/db/models"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/security"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	byEmail map[string]*models.User
	created []*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: map[string]*models.User{}}
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	user.ID = uuid.New()
	s.byEmail[user.Email] = user
	s.created = append(s.created, user)
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

type stubSessions struct {
	revoked []string
}

func (s *stubSessions) Generate(ctx context.Context, accessID string) (string, error) {
	return "refresh-" + accessID, nil
}

func (s *stubSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "rotated-" + oldAccessID, "refresh-rotated", nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "wellport-test", ExpirationMinutes: 15}
}

func passwordConfig() config.PasswordConfig {
	return config.PasswordConfig{ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
}

func newTestService(t *testing.T) (Service, *stubUserRepo, *stubSessions) {
	t.Helper()
	repo := newStubUserRepo()
	sessions := &stubSessions{}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      jwtConfig(),
		PasswordConfig: passwordConfig(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc, repo, sessions
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, passwordConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user := &models.User{ID: uuid.New(), Email: email, PasswordHash: hash, FirstName: "Asha", LastName: "Rao", IsActive: true}
	repo.byEmail[email] = user
	return user
}

func TestRegisterIssuesTokens(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "Asha@Example.COM",
		Password:  "correct-horse",
		FirstName: "Asha",
		LastName:  "Rao",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}
	if len(repo.created) != 1 || repo.created[0].Email != "asha@example.com" {
		t.Fatalf("email should be normalized, got %+v", repo.created)
	}

	claims, err := pkgAuth.ParseAccessToken(jwtConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("minted token should parse: %v", err)
	}
	if claims.UserID != resp.UserID {
		t.Fatalf("claims user mismatch: %s vs %s", claims.UserID, resp.UserID)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	seedUser(t, repo, "asha@example.com", "pw-aaaaaaaa")

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "asha@example.com", Password: "pw-bbbbbbbb", FirstName: "A", LastName: "B",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginHappyPath(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	seedUser(t, repo, "asha@example.com", "correct-horse")

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected an access token")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	seedUser(t, repo, "asha@example.com", "correct-horse")

	_, err := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newTestService(t)
	user := seedUser(t, repo, "asha@example.com", "correct-horse")
	user.IsActive = false

	_, err := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "correct-horse"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	svc, _, sessions := newTestService(t)
	if err := svc.Logout(context.Background(), "access-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-1" {
		t.Fatalf("session should be revoked: %v", sessions.revoked)
	}
}
