package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/internal/auth"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
)

type stubAuthService struct {
	login    *auth.LoginResponse
	register *auth.LoginResponse
	pair     *auth.TokenPair
	err      error
}

func (s stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.LoginResponse, error) {
	return s.register, s.err
}

func (s stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.login, s.err
}

func (s stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.TokenPair, error) {
	return s.pair, s.err
}

func (s stubAuthService) Logout(ctx context.Context, accessID string) error {
	return s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	resp := &auth.LoginResponse{
		TokenPair: auth.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"},
		UserID:    uuid.New(),
		Email:     "member@example.com",
		FirstName: "Mia",
		LastName:  "Member",
	}
	handler := AuthLogin(stubAuthService{login: resp}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"member@example.com","password":"Secret#1"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
			Email       string `json:"email"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access-token" || envelope.Data.Email != resp.Email {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestAuthLoginInvalidPayload(t *testing.T) {
	handler := AuthLogin(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"not-an-email"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	handler := AuthLogin(stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"member@example.com","password":"wrong-pass"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthRegisterCreated(t *testing.T) {
	resp := &auth.LoginResponse{
		TokenPair: auth.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"},
		UserID:    uuid.New(),
		Email:     "new@example.com",
	}
	handler := AuthRegister(stubAuthService{register: resp}, nil)

	payload := `{"email":"new@example.com","password":"Secret#123","first_name":"New","last_name":"Member"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
}

func TestAuthRefreshRejectsMissingTokens(t *testing.T) {
	handler := AuthRefresh(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
