package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/api/responses"
	"github.com/wellport/wellport-backend/api/validators"
	"github.com/wellport/wellport-backend/internal/gym"
	pkgerrors "github.com/wellport/wellport-backend/pkg/errors"
	"github.com/wellport/wellport-backend/pkg/logger"
)

func GymPlans(svc gym.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gym service unavailable"))
			return
		}

		plans, err := svc.ListPlans(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, plans)
	}
}

type gymPurchaseRequest struct {
	PlanID uuid.UUID `json:"plan_id" validate:"required"`
}

func GymPurchase(svc gym.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gym service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body gymPurchaseRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		membership, err := svc.Purchase(r.Context(), userID, body.PlanID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, membership)
	}
}

func GymMemberships(svc gym.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gym service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		memberships, err := svc.MyMemberships(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, memberships)
	}
}
