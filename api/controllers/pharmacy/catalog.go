package pharmacy

import (
	"net/http"
	"strings"

	"github.com/wellport/wellport-backend/api/responses"
	"github.com/wellport/wellport-backend/api/validators"
	pharmacysvc "github.com/wellport/wellport-backend/internal/pharmacy"
	"github.com/wellport/wellport-backend/pkg/enums"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/logger"
)

// CatalogSearch fans the query out to every vendor and returns the merged
// result. Vendors that fail to answer are reported, not fatal.
func CatalogSearch(svc pharmacysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		query := validators.QueryString(r, "q")

		sort := enums.CatalogSort(validators.QueryString(r, "sort"))
		if !sort.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "sort must be price_asc or price_desc"))
			return
		}

		var vendors []enums.PharmacyVendor
		if raw := validators.QueryString(r, "vendors"); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				vendors = append(vendors, enums.PharmacyVendor(strings.TrimSpace(part)))
			}
		}

		result, err := svc.Search(r.Context(), validators.SanitizeString(query), sort, vendors)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
