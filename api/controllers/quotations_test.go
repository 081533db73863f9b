package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/coilbill-backend/internal/quotations"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
)

type stubQuotationService struct {
	filter  quotations.ListFilter
	input   quotations.QuotationInput
	body    map[string]json.RawMessage
	paid    *bool
	deleted uuid.UUID
	err     error
}

func (s *stubQuotationService) Create(_ context.Context, input quotations.QuotationInput) (*quotations.QuotationDTO, error) {
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	return &quotations.QuotationDTO{ID: "q-1", Brand: input.Brand, CustomerName: input.CustomerName}, nil
}

func (s *stubQuotationService) Get(_ context.Context, id uuid.UUID) (*quotations.QuotationDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &quotations.QuotationDTO{ID: id.String()}, nil
}

func (s *stubQuotationService) List(_ context.Context, filter quotations.ListFilter) ([]quotations.QuotationDTO, error) {
	s.filter = filter
	return []quotations.QuotationDTO{}, s.err
}

func (s *stubQuotationService) Update(_ context.Context, id uuid.UUID, body map[string]json.RawMessage) (*quotations.QuotationDTO, error) {
	s.body = body
	if s.err != nil {
		return nil, s.err
	}
	return &quotations.QuotationDTO{ID: id.String()}, nil
}

func (s *stubQuotationService) SetPaid(_ context.Context, id uuid.UUID, paid bool) (*quotations.QuotationDTO, error) {
	s.paid = &paid
	if s.err != nil {
		return nil, s.err
	}
	return &quotations.QuotationDTO{ID: id.String(), Paid: paid}, nil
}

func (s *stubQuotationService) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = id
	return s.err
}

func (s *stubQuotationService) Export(_ context.Context, filter quotations.ListFilter) (*bytes.Buffer, error) {
	s.filter = filter
	if s.err != nil {
		return nil, s.err
	}
	return bytes.NewBufferString("PK-workbook"), nil
}

func TestQuotationListPaidFilter(t *testing.T) {
	svc := &stubQuotationService{}
	rec := httptest.NewRecorder()
	QuotationList(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quotations?paid=false", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.filter.Paid)
	assert.False(t, *svc.filter.Paid)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestQuotationListRejectsBadFilter(t *testing.T) {
	rec := httptest.NewRecorder()
	QuotationList(&stubQuotationService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quotations?paid=sometimes", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeValidation), errorCode(t, rec))
}

func TestQuotationCreateIgnoresUnknownKeys(t *testing.T) {
	svc := &stubQuotationService{}
	payload := `{"_id":"client-side","brand":"Apollo","customerName":"Ravi","products":[{"description":"Coil","qty":2,"listPrice":10,"coilPrice":8}]}`
	rec := httptest.NewRecorder()
	QuotationCreate(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/quotations", strings.NewReader(payload)))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Ravi", svc.input.CustomerName)
	require.Len(t, svc.input.Products, 1)
}

func TestQuotationCreateRequiresProducts(t *testing.T) {
	rec := httptest.NewRecorder()
	QuotationCreate(&stubQuotationService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/quotations", strings.NewReader(`{"brand":"Apollo","customerName":"Ravi","products":[]}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "products")
}

func TestQuotationUpdatePassesRawBody(t *testing.T) {
	id := uuid.New()
	svc := &stubQuotationService{}
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/quotations/"+id.String(), strings.NewReader(`{"customerName":"Sita","paid":true}`)), "quotationId", id.String())
	rec := httptest.NewRecorder()
	QuotationUpdate(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, svc.body, "customerName")
	assert.Contains(t, svc.body, "paid")
}

func TestQuotationUpdateRejectsNonObject(t *testing.T) {
	id := uuid.New()
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/quotations/"+id.String(), strings.NewReader(`[1,2]`)), "quotationId", id.String())
	rec := httptest.NewRecorder()
	QuotationUpdate(&stubQuotationService{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuotationSetPaid(t *testing.T) {
	id := uuid.New()
	svc := &stubQuotationService{}
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/quotations/"+id.String()+"/paid", strings.NewReader(`{"paid":true}`)), "quotationId", id.String())
	rec := httptest.NewRecorder()
	QuotationSetPaid(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.paid)
	assert.True(t, *svc.paid)
	assert.Contains(t, rec.Body.String(), `"paid":true`)
}

func TestQuotationSetPaidRequiresFlag(t *testing.T) {
	id := uuid.New()
	svc := &stubQuotationService{}
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/quotations/"+id.String()+"/paid", strings.NewReader(`{}`)), "quotationId", id.String())
	rec := httptest.NewRecorder()
	QuotationSetPaid(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.paid)
}

func TestQuotationDelete(t *testing.T) {
	id := uuid.New()
	svc := &stubQuotationService{}
	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/quotations/"+id.String(), nil), "quotationId", id.String())
	rec := httptest.NewRecorder()
	QuotationDelete(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.deleted)
	assert.Contains(t, rec.Body.String(), "Quotation deleted")
}

func TestQuotationGetMissing(t *testing.T) {
	id := uuid.New()
	svc := &stubQuotationService{err: pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")}
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/quotations/"+id.String(), nil), "quotationId", id.String())
	rec := httptest.NewRecorder()
	QuotationGet(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "quotation not found")
}

func TestQuotationExportSetsAttachmentHeaders(t *testing.T) {
	svc := &stubQuotationService{}
	rec := httptest.NewRecorder()
	QuotationExport(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quotations/export?paid=true", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="quotations-`)
	assert.Equal(t, "PK-workbook", rec.Body.String())
	require.NotNil(t, svc.filter.Paid)
	assert.True(t, *svc.filter.Paid)
}
