package pharmacy

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/wellport/wellport-backend/api/responses"
	"github.com/wellport/wellport-backend/api/validators"
	pharmacysvc "github.com/wellport/wellport-backend/internal/pharmacy"
	"github.com/wellport/wellport-backend/internal/pharmacy/cart"
	"github.com/wellport/wellport-backend/internal/profile"
	"github.com/wellport/wellport-backend/pkg/enums"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/logger"
)

func CartView(svc pharmacysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.ViewCart(r.Context(), cartIdentity(r)))
	}
}

type addItemRequest struct {
	Vendor    string          `json:"vendor" validate:"required"`
	ProductID string          `json:"product_id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitMRP   decimal.Decimal `json:"unit_mrp"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func CartAdd(svc pharmacysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		var body addItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.AddToCart(r.Context(), cartIdentity(r), cart.Line{
			Vendor:    enums.PharmacyVendor(body.Vendor),
			ProductID: body.ProductID,
			Name:      validators.SanitizeString(body.Name),
			Quantity:  body.Quantity,
			UnitMRP:   body.UnitMRP,
			UnitPrice: body.UnitPrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lines)
	}
}

type lineRefRequest struct {
	Vendor    string `json:"vendor" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
}

func CartDecrement(svc pharmacysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		var body lineRefRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.DecrementItem(r.Context(), cartIdentity(r), enums.PharmacyVendor(body.Vendor), body.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lines)
	}
}

func CartRemove(svc pharmacysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		var body lineRefRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.RemoveItem(r.Context(), cartIdentity(r), enums.PharmacyVendor(body.Vendor), body.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lines)
	}
}

func CartClear(svc pharmacysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		if err := svc.ClearCart(r.Context(), cartIdentity(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// CartReconcile refreshes every line against its vendor. The member's contact
// details ride along because one vendor requires them on stock reservations.
func CartReconcile(svc pharmacysvc.Service, profiles profile.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		var contact cart.Contact
		if userID, err := requestUserID(r); err == nil && profiles != nil {
			if member, cerr := profiles.Contact(r.Context(), userID); cerr == nil {
				contact = cart.Contact{Name: member.Name, Phone: member.Phone, Email: member.Email}
			}
		}

		lines, err := svc.Reconcile(r.Context(), cartIdentity(r), contact)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lines)
	}
}

func CartBreakdown(svc pharmacysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		coupon := validators.QueryString(r, "coupon")
		bd, err := svc.Breakdown(r.Context(), cartIdentity(r), coupon)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bd)
	}
}
