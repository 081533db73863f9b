package middleware

import (
	"context"

	"github.com/angelmondragon/coilbill-backend/internal/admins"
)

type contextKey string

const (
	ctxAdminID contextKey = "admin_id"
	ctxAdmin   contextKey = "admin"
)

func AdminIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAdminID).(string); ok {
		return v
	}
	return ""
}

// AdminFromContext returns the admin resolved by Auth, or nil on public routes.
func AdminFromContext(ctx context.Context) *admins.AdminDTO {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxAdmin).(*admins.AdminDTO); ok {
		return v
	}
	return nil
}

// WithAdmin injects the authenticated admin into the context.
func WithAdmin(ctx context.Context, admin *admins.AdminDTO) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if admin == nil {
		return ctx
	}
	ctx = context.WithValue(ctx, ctxAdminID, admin.ID)
	return context.WithValue(ctx, ctxAdmin, admin)
}
