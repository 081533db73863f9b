package product

import (
	"time"

	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	"github.com/angelmondragon/coilbill-backend/pkg/types"
)

// BrandRef is the brand summary embedded in product payloads.
type BrandRef struct {
	LegacyID string `json:"_id"`
	ID       string `json:"id"`
	Name     string `json:"name"`
}

// ProductDTO is the API shape of a catalog product.
type ProductDTO struct {
	LegacyID    string      `json:"_id"`
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Brand       *BrandRef   `json:"brand"`
	ListPrice   types.Money `json:"listPrice"`
	CoilPrice   types.Money `json:"coilPrice"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// CreateProductInput is the create payload.
type CreateProductInput struct {
	Description string       `json:"description" validate:"required,max=200"`
	Brand       string       `json:"brand" validate:"required,uuid"`
	ListPrice   *types.Money `json:"listPrice" validate:"required"`
	CoilPrice   *types.Money `json:"coilPrice" validate:"required"`
}

// UpdateProductInput carries optional changes; nil fields are untouched.
type UpdateProductInput struct {
	Description *string      `json:"description" validate:"omitempty,max=200"`
	Brand       *string      `json:"brand" validate:"omitempty,uuid"`
	ListPrice   *types.Money `json:"listPrice"`
	CoilPrice   *types.Money `json:"coilPrice"`
	IsActive    *bool        `json:"isActive"`
}

// PriceListItem is a line-item template: qty 1 at the caller's prices.
type PriceListItem struct {
	ProductID   string      `json:"productId"`
	Description string      `json:"description"`
	Qty         types.Money `json:"qty"`
	ListPrice   types.Money `json:"listPrice"`
	CoilPrice   types.Money `json:"coilPrice"`
	Total       types.Money `json:"total"`
}

func FromModel(p *models.Product) ProductDTO {
	id := p.ID.String()
	dto := ProductDTO{
		LegacyID:    id,
		ID:          id,
		Description: p.Description,
		ListPrice:   types.NewMoney(p.ListPrice),
		CoilPrice:   types.NewMoney(p.CoilPrice),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Brand != nil {
		brandID := p.Brand.ID.String()
		dto.Brand = &BrandRef{LegacyID: brandID, ID: brandID, Name: p.Brand.Name}
	} else {
		brandID := p.BrandID.String()
		dto.Brand = &BrandRef{LegacyID: brandID, ID: brandID}
	}
	return dto
}
