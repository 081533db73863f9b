package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/coilbill-backend/api/responses"
	"github.com/angelmondragon/coilbill-backend/internal/admins"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/angelmondragon/coilbill-backend/pkg/logger"
)

// TokenVerifier resolves a bearer token to an admin.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*admins.AdminDTO, error)
}

// Auth validates a bearer token and seeds the request context with the admin.
func Auth(verifier TokenVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			admin, err := verifier.Verify(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithAdmin(r.Context(), admin)
			if logg != nil {
				ctx = logg.WithAdminID(ctx, admin.ID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header. A bare token
// without the scheme is accepted.
func BearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if len(raw) >= 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
