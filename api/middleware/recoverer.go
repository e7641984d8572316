package middleware

import (
	"fmt"
	"net/http"

	"github.com/wellport/wellport-backend/api/responses"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/logger"
)

// Recoverer converts handler panics into 500 responses instead of dropping
// the connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("panic: %v", rec))
					responses.WriteError(r.Context(), logg, w, err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
