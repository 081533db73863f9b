package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/coilbill-backend/internal/pricing"
	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/angelmondragon/coilbill-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productRepository interface {
	ListActive(ctx context.Context, brandID *uuid.UUID) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	UpdateColumns(ctx context.Context, id uuid.UUID, cols map[string]any) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type brandLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
}

// Service exposes the product catalog.
type Service interface {
	List(ctx context.Context) ([]ProductDTO, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	PriceList(ctx context.Context, brandID uuid.UUID, multiplier decimal.Decimal) ([]PriceListItem, error)
}

type service struct {
	repo   productRepository
	brands brandLoader
}

// NewService constructs a product service instance.
func NewService(repo productRepository, brands brandLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if brands == nil {
		return nil, fmt.Errorf("brand repository required")
	}
	return &service{repo: repo, brands: brands}, nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	return s.list(ctx, nil)
}

func (s *service) ListByBrand(ctx context.Context, brandID uuid.UUID) ([]ProductDTO, error) {
	return s.list(ctx, &brandID)
}

func (s *service) list(ctx context.Context, brandID *uuid.UUID) ([]ProductDTO, error) {
	rows, err := s.repo.ListActive(ctx, brandID)
	if err != nil {
		return nil, wrapStoreErr(err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err, "load product")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	fieldErrs := map[string]string{}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		fieldErrs["description"] = "is required"
	}
	listPrice := checkPrice(input.ListPrice, "listPrice", fieldErrs)
	coilPrice := checkPrice(input.CoilPrice, "coilPrice", fieldErrs)
	brandID, err := uuid.Parse(strings.TrimSpace(input.Brand))
	if err != nil {
		fieldErrs["brand"] = "must be a brand id"
	}
	if len(fieldErrs) > 0 {
		return nil, validationError(fieldErrs)
	}

	if err := s.requireBrand(ctx, brandID); err != nil {
		return nil, err
	}

	row := &models.Product{
		Description: description,
		BrandID:     brandID,
		ListPrice:   listPrice,
		CoilPrice:   coilPrice,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, wrapStoreErr(err, "create product")
	}
	return s.Get(ctx, row.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	fieldErrs := map[string]string{}
	cols := map[string]any{}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			fieldErrs["description"] = "must not be empty"
		}
		cols["description"] = description
	}
	if input.ListPrice != nil {
		cols["list_price"] = checkPrice(input.ListPrice, "listPrice", fieldErrs)
	}
	if input.CoilPrice != nil {
		cols["coil_price"] = checkPrice(input.CoilPrice, "coilPrice", fieldErrs)
	}
	if input.IsActive != nil {
		cols["is_active"] = *input.IsActive
	}
	var brandID uuid.UUID
	if input.Brand != nil {
		parsed, err := uuid.Parse(strings.TrimSpace(*input.Brand))
		if err != nil {
			fieldErrs["brand"] = "must be a brand id"
		}
		brandID = parsed
		cols["brand_id"] = parsed
	}
	if len(fieldErrs) > 0 {
		return nil, validationError(fieldErrs)
	}

	if input.Brand != nil {
		if err := s.requireBrand(ctx, brandID); err != nil {
			return nil, err
		}
	}
	if len(cols) == 0 {
		return s.Get(ctx, id)
	}
	if err := s.repo.UpdateColumns(ctx, id, cols); err != nil {
		return nil, wrapStoreErr(err, "update product")
	}
	return s.Get(ctx, id)
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return wrapStoreErr(err, "deactivate product")
	}
	return nil
}

// PriceList returns the brand's active products as qty-1 line items with
// prices scaled by the admin's multiplier.
func (s *service) PriceList(ctx context.Context, brandID uuid.UUID, multiplier decimal.Decimal) ([]PriceListItem, error) {
	if _, err := s.brands.FindByID(ctx, brandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
		}
		return nil, wrapStoreErr(err, "load brand")
	}
	rows, err := s.repo.ListActive(ctx, &brandID)
	if err != nil {
		return nil, wrapStoreErr(err, "list products")
	}

	qty := decimal.NewFromInt(1)
	out := make([]PriceListItem, 0, len(rows))
	for _, row := range rows {
		listPrice, err := pricing.Scale(row.ListPrice, multiplier)
		if err != nil {
			return nil, err
		}
		coilPrice, err := pricing.Scale(row.CoilPrice, multiplier)
		if err != nil {
			return nil, err
		}
		out = append(out, PriceListItem{
			ProductID:   row.ID.String(),
			Description: row.Description,
			Qty:         types.NewMoney(qty),
			ListPrice:   types.NewMoney(listPrice),
			CoilPrice:   types.NewMoney(coilPrice),
			Total:       types.NewMoney(pricing.LineTotal(qty, coilPrice)),
		})
	}
	return out, nil
}

func (s *service) requireBrand(ctx context.Context, brandID uuid.UUID) error {
	if _, err := s.brands.FindByID(ctx, brandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationError(map[string]string{"brand": "brand does not exist"})
		}
		return wrapStoreErr(err, "load brand")
	}
	return nil
}

func checkPrice(v *types.Money, field string, fieldErrs map[string]string) decimal.Decimal {
	if v == nil {
		fieldErrs[field] = "is required"
		return decimal.Zero
	}
	if v.IsNegative() {
		fieldErrs[field] = "must not be negative"
		return decimal.Zero
	}
	return pricing.Round(v.Decimal)
}

func validationError(fields map[string]string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid product").
		WithDetails(map[string]any{"fields": fields})
}

func wrapStoreErr(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}
