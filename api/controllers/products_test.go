package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productsvc "github.com/angelmondragon/coilbill-backend/internal/products"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
)

type stubCatalog struct {
	productsvc.Service
	brandID     uuid.UUID
	create      productsvc.CreateProductInput
	update      productsvc.UpdateProductInput
	deactivated uuid.UUID
	err         error
}

func (s *stubCatalog) ListByBrand(_ context.Context, brandID uuid.UUID) ([]productsvc.ProductDTO, error) {
	s.brandID = brandID
	return []productsvc.ProductDTO{}, s.err
}

func (s *stubCatalog) Create(_ context.Context, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	s.create = input
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ProductDTO{ID: "p-1", Description: input.Description}, nil
}

func (s *stubCatalog) Update(_ context.Context, id uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	s.update = input
	if s.err != nil {
		return nil, s.err
	}
	return &productsvc.ProductDTO{ID: id.String()}, nil
}

func (s *stubCatalog) Deactivate(_ context.Context, id uuid.UUID) error {
	s.deactivated = id
	return s.err
}

func TestProductCreate(t *testing.T) {
	svc := &stubCatalog{}
	brandID := uuid.New()
	body := `{"description":"GI Coil 0.5mm","brand":"` + brandID.String() + `","listPrice":2230,"coilPrice":"1468.50"}`
	rec := httptest.NewRecorder()
	ProductCreate(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, brandID.String(), svc.create.Brand)
	require.NotNil(t, svc.create.CoilPrice)
	assert.Equal(t, "1468.5", svc.create.CoilPrice.String())
}

func TestProductCreateRejectsBadBrandID(t *testing.T) {
	body := `{"description":"GI Coil","brand":"apollo","listPrice":1,"coilPrice":1}`
	rec := httptest.NewRecorder()
	ProductCreate(&stubCatalog{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"brand"`)
}

func TestProductUpdateRejectsUnknownField(t *testing.T) {
	id := uuid.New()
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/products/"+id.String(), strings.NewReader(`{"sku":"x"}`)), "productId", id.String())
	rec := httptest.NewRecorder()
	ProductUpdate(&stubCatalog{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductListByBrand(t *testing.T) {
	brandID := uuid.New()
	svc := &stubCatalog{}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/brand/"+brandID.String(), nil), "brandId", brandID.String())
	rec := httptest.NewRecorder()
	ProductListByBrand(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, brandID, svc.brandID)
}

func TestProductDelete(t *testing.T) {
	id := uuid.New()
	svc := &stubCatalog{}
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/products/"+id.String(), nil), "productId", id.String())
	rec := httptest.NewRecorder()
	ProductDelete(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.deactivated)
	assert.Contains(t, rec.Body.String(), "Product deleted")

	missing := &stubCatalog{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	rec = httptest.NewRecorder()
	ProductDelete(missing, nil).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
