package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Admin is an operator allowed to sign in and issue quotations.
type Admin struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Username        string          `gorm:"column:username;type:text;not null;uniqueIndex"`
	PasswordHash    string          `gorm:"column:password_hash;not null"`
	PriceMultiplier decimal.Decimal `gorm:"column:price_multiplier;type:numeric(6,3);not null;default:1"`
	DisplayName     string          `gorm:"column:display_name;not null;default:''"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Admin) TableName() string { return "admins" }

func (a *Admin) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.PriceMultiplier.IsZero() {
		a.PriceMultiplier = decimal.NewFromInt(1)
	}
	return nil
}
