package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog line item template owned by a brand.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Description string          `gorm:"column:description;type:text;not null"`
	BrandID     uuid.UUID       `gorm:"column:brand_id;type:uuid;not null;index"`
	Brand       *Brand          `gorm:"foreignKey:BrandID"`
	ListPrice   decimal.Decimal `gorm:"column:list_price;type:numeric(12,2);not null;default:0"`
	CoilPrice   decimal.Decimal `gorm:"column:coil_price;type:numeric(12,2);not null;default:0"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
