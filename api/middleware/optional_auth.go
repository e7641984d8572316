package middleware

import (
	"net/http"

	pkgauth "github.com/wellport/wellport-backend/pkg/auth"
	"github.com/wellport/wellport-backend/pkg/auth/session"
	"github.com/wellport/wellport-backend/pkg/config"
	"github.com/wellport/wellport-backend/pkg/logger"
)

// OptionalAuth seeds the caller's identity when a valid bearer token is
// presented but lets anonymous requests through. Guest carts depend on this:
// without a token the request proceeds under the shared guest bucket.
func OptionalAuth(cfg config.JWTConfig, sessions session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, err := bearerToken(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			live, err := sessions.HasSession(ctx, claims.ID)
			if err != nil || !live {
				next.ServeHTTP(w, r)
				return
			}

			ctx = WithUserID(ctx, claims.UserID.String())
			ctx = WithEmail(ctx, claims.Email)
			ctx = logg.WithUserID(ctx, claims.UserID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
