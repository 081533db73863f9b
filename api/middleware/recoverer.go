package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/coilbill-backend/api/responses"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/angelmondragon/coilbill-backend/pkg/logger"
)

// Recoverer turns a handler panic into a 500 envelope. The panic value is
// logged with the route but never echoed to the client.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				ctx := r.Context()
				if logg != nil {
					route := r.URL.Path
					if rctx := chi.RouteContext(ctx); rctx != nil && rctx.RoutePattern() != "" {
						route = rctx.RoutePattern()
					}
					ctx = logg.WithFields(ctx, map[string]any{
						"panic":  fmt.Sprint(rec),
						"method": r.Method,
						"route":  route,
					})
					logg.Error(ctx, "handler.panic", fmt.Errorf("panic: %v", rec))
				}

				appErr := pkgerrors.New(pkgerrors.CodeInternal, "internal error")
				if reqID := RequestIDFromContext(ctx); reqID != "" {
					appErr = appErr.WithDetails(map[string]any{"requestId": reqID})
				}
				responses.WriteError(ctx, nil, w, appErr)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
