package controllers

import (
	"net/http"

	"github.com/angelmondragon/coilbill-backend/api/middleware"
	"github.com/angelmondragon/coilbill-backend/api/responses"
	"github.com/angelmondragon/coilbill-backend/api/validators"
	"github.com/angelmondragon/coilbill-backend/internal/admins"
	"github.com/angelmondragon/coilbill-backend/internal/auth"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/angelmondragon/coilbill-backend/pkg/logger"
)

type meResponse struct {
	Admin *admins.AdminDTO `json:"admin"`
}

// AuthLogin exchanges a username and password for a bearer token.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}

// AuthMe returns the admin resolved by the Auth middleware.
func AuthMe(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin := middleware.AdminFromContext(r.Context())
		if admin == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unauthorized"))
			return
		}
		responses.WriteSuccess(w, meResponse{Admin: admin})
	}
}
