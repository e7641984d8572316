package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/api/middleware"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
)

// requestUserID reads the authenticated member id seeded by the auth
// middleware.
func requestUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user context")
	}
	return userID, nil
}
