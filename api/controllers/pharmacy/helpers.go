// Package pharmacy holds the HTTP handlers for the pharmacy benefit.
package pharmacy

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/api/middleware"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
)

// cartIdentity returns the bucket the caller's cart lives under. Unauthenticated
// requests share the guest bucket.
func cartIdentity(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

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
