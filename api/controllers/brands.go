package controllers

import (
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/angelmondragon/coilbill-backend/api/middleware"
	"github.com/angelmondragon/coilbill-backend/api/responses"
	"github.com/angelmondragon/coilbill-backend/api/validators"
	"github.com/angelmondragon/coilbill-backend/internal/brands"
	productsvc "github.com/angelmondragon/coilbill-backend/internal/products"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/angelmondragon/coilbill-backend/pkg/logger"
)

const (
	brandLogoField   = "logo"
	multipartMemory  = 1 << 20
	maxBrandFieldLen = 200
)

// BrandList returns every active brand sorted by name.
func BrandList(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

func BrandGet(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "brandId", "brand")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		brand, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brand)
	}
}

// BrandCreate accepts JSON or a multipart form with an optional logo file.
func BrandCreate(svc brands.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, logo, cleanup, err := parseBrandRequest(w, r, maxUploadBytes)
		defer cleanup()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Create(r.Context(), input, logo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, brand)
	}
}

func BrandUpdate(svc brands.Service, maxUploadBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "brandId", "brand")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, logo, cleanup, err := parseBrandRequest(w, r, maxUploadBytes)
		defer cleanup()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.Update(r.Context(), id, input, logo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brand)
	}
}

// BrandDelete soft-deletes a brand; its products and quotations are untouched.
func BrandDelete(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "brandId", "brand")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Deactivate(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Brand deleted")
	}
}

// BrandPriceList scales the brand's active products by the caller's multiplier.
func BrandPriceList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin := middleware.AdminFromContext(r.Context())
		if admin == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unauthorized"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "brandId", "brand")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.PriceList(r.Context(), id, admin.PriceMultiplier.Decimal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func parseBrandRequest(w http.ResponseWriter, r *http.Request, maxUploadBytes int64) (brands.BrandInput, *brands.LogoUpload, func(), error) {
	noop := func() {}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var input brands.BrandInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			return input, nil, noop, err
		}
		return input, nil, noop, nil
	}

	if maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+multipartMemory)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return brands.BrandInput{}, nil, noop, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	form := r.MultipartForm
	cleanup := func() { _ = form.RemoveAll() }

	input := brands.BrandInput{
		Name:     formValue(form, "name"),
		Tagline:  formValue(form, "tagline"),
		Category: formValue(form, "category"),
	}
	if raw := formValue(form, "isActive"); raw != nil {
		active, err := strconv.ParseBool(*raw)
		if err != nil {
			return input, nil, cleanup, pkgerrors.New(pkgerrors.CodeValidation, "invalid request").
				WithDetails(map[string]any{"fields": map[string]string{"isActive": "must be true or false"}})
		}
		input.IsActive = &active
	}
	if err := validators.Struct(&input); err != nil {
		return input, nil, cleanup, err
	}

	files := form.File[brandLogoField]
	if len(files) == 0 {
		return input, nil, cleanup, nil
	}
	header := files[0]
	file, err := header.Open()
	if err != nil {
		return input, nil, cleanup, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read logo upload")
	}
	closeAll := func() {
		_ = file.Close()
		cleanup()
	}
	return input, &brands.LogoUpload{Filename: header.Filename, Body: file}, closeAll, nil
}

func formValue(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := validators.SanitizeString(values[0], maxBrandFieldLen)
	return &v
}
