package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/coilbill-backend/api/responses"
	"github.com/angelmondragon/coilbill-backend/pkg/config"
	"github.com/angelmondragon/coilbill-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/angelmondragon/coilbill-backend/pkg/logger"
)

const readyTimeout = 3 * time.Second

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthLive reports that the process is serving requests.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setEnvHeader(w, cfg)
		responses.WriteSuccess(w, healthResponse{Status: "OK", Message: "Billing App API is running"})
	}
}

// HealthReady pings the store. The handle connects on first use, so this
// also surfaces a store that never came up on boot.
func HealthReady(cfg *config.Config, logg *logger.Logger, store db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setEnvHeader(w, cfg)
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "store not configured"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store unavailable"))
			return
		}
		responses.WriteSuccess(w, healthResponse{Status: "ready"})
	}
}

func setEnvHeader(w http.ResponseWriter, cfg *config.Config) {
	if cfg != nil {
		w.Header().Set("X-Coilbill-Env", cfg.App.Env)
	}
}
