package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultBrandTagline  = "powering lives"
	DefaultBrandCategory = "HR-FR"
)

// Brand is catalog reference data. Rows are deactivated, never deleted.
type Brand struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;type:text;not null;uniqueIndex"`
	Logo      *string   `gorm:"column:logo"`
	Tagline   string    `gorm:"column:tagline;not null;default:'powering lives'"`
	Category  string    `gorm:"column:category;not null;default:'HR-FR'"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Brand) TableName() string { return "brands" }

func (b *Brand) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
