package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/angelmondragon/coilbill-backend/api/responses"
	"github.com/angelmondragon/coilbill-backend/api/validators"
	"github.com/angelmondragon/coilbill-backend/internal/quotations"
	"github.com/angelmondragon/coilbill-backend/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// QuotationList returns quotations newest first, optionally filtered by ?paid=.
func QuotationList(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseQuotationFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// QuotationExport streams the filtered list as an xlsx workbook.
func QuotationExport(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseQuotationFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		buf, err := svc.Export(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename := fmt.Sprintf("quotations-%s.xlsx", time.Now().UTC().Format("20060102"))
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil && logg != nil {
			logg.Error(r.Context(), "quotations.export_write_failed", err)
		}
	}
}

func QuotationGet(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "quotationId", "quotation")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		q, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, q)
	}
}

// QuotationCreate ignores unknown keys; the console posts its whole form state.
func QuotationCreate(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input quotations.QuotationInput
		if err := validators.DecodeJSONBodyLenient(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		q, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, q)
	}
}

// QuotationUpdate applies a partial camelCase document.
func QuotationUpdate(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "quotationId", "quotation")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body, err := validators.DecodeJSONObject(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		q, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, q)
	}
}

func QuotationSetPaid(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "quotationId", "quotation")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var input quotations.SetPaidInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		q, err := svc.SetPaid(r.Context(), id, *input.Paid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, q)
	}
}

func QuotationDelete(svc quotations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "quotationId", "quotation")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Quotation deleted")
	}
}

func parseQuotationFilter(r *http.Request) (quotations.ListFilter, error) {
	paid, err := validators.ParseQueryBool(r, "paid")
	if err != nil {
		return quotations.ListFilter{}, err
	}
	return quotations.ListFilter{Paid: paid}, nil
}
