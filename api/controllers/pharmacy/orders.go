package pharmacy

import (
	"net/http"

	"github.com/wellport/wellport-backend/api/responses"
	"github.com/wellport/wellport-backend/api/validators"
	pharmacysvc "github.com/wellport/wellport-backend/internal/pharmacy"
	"github.com/wellport/wellport-backend/internal/pharmacy/cart"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/logger"
)

type submitOrderRequest struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" validate:"required"`
}

// OrderSubmit places the order for the member's current cart. Carts holding
// lines that were never reconciled are refused.
func OrderSubmit(svc pharmacysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body submitOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := svc.SubmitOrder(r.Context(), userID, cartIdentity(r), cart.Address{
			Name:       validators.SanitizeString(body.Name),
			Phone:      validators.SanitizeString(body.Phone),
			Line1:      validators.SanitizeString(body.Line1),
			Line2:      validators.SanitizeString(body.Line2),
			City:       validators.SanitizeString(body.City),
			State:      validators.SanitizeString(body.State),
			PostalCode: validators.SanitizeString(body.PostalCode),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"order_id": orderID})
	}
}

func OrderHistory(svc pharmacysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.OrderHistory(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}
