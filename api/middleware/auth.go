package middleware

import (
	"net/http"
	"strings"

	"github.com/wellport/wellport-backend/api/responses"
	pkgauth "github.com/wellport/wellport-backend/pkg/auth"
	"github.com/wellport/wellport-backend/pkg/auth/session"
	"github.com/wellport/wellport-backend/pkg/config"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/logger"
)

// Auth validates the bearer token, confirms the session behind its jti is
// still live, and seeds the request context with the caller's identity.
func Auth(cfg config.JWTConfig, sessions session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, err := bearerToken(r)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid or expired token"))
				return
			}

			live, err := sessions.HasSession(ctx, claims.ID)
			if err != nil {
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session lookup failed"))
				return
			}
			if !live {
				responses.WriteError(ctx, logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "session has been revoked"))
				return
			}

			ctx = WithUserID(ctx, claims.UserID.String())
			ctx = WithEmail(ctx, claims.Email)
			ctx = logg.WithUserID(ctx, claims.UserID.String())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header is required")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header must be a bearer token")
	}
	return strings.TrimSpace(parts[1]), nil
}
