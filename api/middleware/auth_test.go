package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/coilbill-backend/internal/admins"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	admin *admins.AdminDTO
	token string
}

func (s stubVerifier) Verify(_ context.Context, token string) (*admins.AdminDTO, error) {
	if token != s.token {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
	}
	return s.admin, nil
}

func TestAuthSeedsAdminIntoContext(t *testing.T) {
	admin := &admins.AdminDTO{ID: "a-1", Username: "admin"}
	var seen *admins.AdminDTO
	handler := Auth(stubVerifier{admin: admin, token: "good"}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = AdminFromContext(r.Context())
		assert.Equal(t, "a-1", AdminIDFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/quotations", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "admin", seen.Username)
}

func TestAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	handler := Auth(stubVerifier{token: "good"}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	for name, header := range map[string]string{"missing": "", "empty bearer": "Bearer  ", "wrong": "Bearer nope"} {
		req := httptest.NewRequest(http.MethodDelete, "/api/quotations/x", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		assert.Contains(t, rec.Body.String(), `"UNAUTHORIZED"`, name)
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", BearerToken(req))

	req.Header.Set("Authorization", "bearer abc")
	assert.Equal(t, "abc", BearerToken(req))

	req.Header.Set("Authorization", "abc")
	assert.Equal(t, "abc", BearerToken(req))
}

func TestAdminFromContextWithoutAdmin(t *testing.T) {
	assert.Nil(t, AdminFromContext(context.Background()))
	assert.Equal(t, "", AdminIDFromContext(context.Background()))
	assert.Equal(t, context.Background(), WithAdmin(context.Background(), nil))
}
