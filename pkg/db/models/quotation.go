package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quotation is a saved invoice snapshot. Column names are flattened lowercase
// (customername, contactinfo, createdat) to match the legacy table.
type Quotation struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Brand        string          `gorm:"column:brand;type:text;not null"`
	CustomerName string          `gorm:"column:customername;type:text;not null"`
	Date         time.Time       `gorm:"column:date;not null"`
	Products     datatypes.JSON  `gorm:"column:products;type:jsonb;not null"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal;type:numeric(14,2);not null;default:0"`
	GST          decimal.Decimal `gorm:"column:gst;type:numeric(14,2);not null;default:0"`
	Total        decimal.Decimal `gorm:"column:total;type:numeric(14,2);not null;default:0"`
	Paid         bool            `gorm:"column:paid;not null;default:false"`
	Terms        datatypes.JSON  `gorm:"column:terms;type:jsonb"`
	ContactInfo  datatypes.JSON  `gorm:"column:contactinfo;type:jsonb"`
	CreatedAt    time.Time       `gorm:"column:createdat;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updatedat;autoUpdateTime"`
}

func (Quotation) TableName() string { return "quotations" }

func (q *Quotation) BeforeCreate(*gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.Date.IsZero() {
		q.Date = time.Now().UTC()
	}
	return nil
}
