package controllers

import (
	"net/http"

	"github.com/thitipat-dev/petshop-backend/api/responses"
	"github.com/thitipat-dev/petshop-backend/api/validators"
	"github.com/thitipat-dev/petshop-backend/internal/pricing"
	"github.com/thitipat-dev/petshop-backend/internal/settings"
	pkgerrors "github.com/thitipat-dev/petshop-backend/pkg/errors"
	"github.com/thitipat-dev/petshop-backend/pkg/logger"
)

// SettingsGetDeposit returns the current deposit policy.
func SettingsGetDeposit(repo settings.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings repository unavailable"))
			return
		}

		current, err := repo.GetDepositSettings(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDepositSettingsResponse(current))
	}
}

// SettingsUpdateDeposit replaces the deposit policy.
func SettingsUpdateDeposit(repo settings.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings repository unavailable"))
			return
		}

		var payload depositSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated := pricing.DepositSettings{
			MinAmount:  payload.MinAmount,
			Percentage: payload.Percentage,
			Enabled:    payload.Enabled,
		}
		if err := repo.UpdateDepositSettings(r.Context(), updated); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newDepositSettingsResponse(updated))
	}
}

type depositSettingsRequest struct {
	MinAmount  float64 `json:"min_amount" validate:"min=0"`
	Percentage float64 `json:"percentage" validate:"min=0,max=1"`
	Enabled    bool    `json:"enabled"`
}

type depositSettingsResponse struct {
	MinAmount  float64 `json:"min_amount"`
	Percentage float64 `json:"percentage"`
	Enabled    bool    `json:"enabled"`
}

func newDepositSettingsResponse(s pricing.DepositSettings) depositSettingsResponse {
	return depositSettingsResponse{
		MinAmount:  s.MinAmount,
		Percentage: s.Percentage,
		Enabled:    s.Enabled,
	}
}
