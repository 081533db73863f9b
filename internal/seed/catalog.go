// Package seed loads the demo wire-and-cable catalog.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/coilbill-backend/internal/brands"
	productsvc "github.com/angelmondragon/coilbill-backend/internal/products"
	"github.com/angelmondragon/coilbill-backend/pkg/db"
	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
)

type brandSeed struct {
	Name     string
	Tagline  string
	Category string
}

type productSeed struct {
	Description string
	ListPrice   int64
	CoilPrice   int64
}

var brandSeeds = []brandSeed{
	{Name: "Havells", Tagline: "powering lives", Category: "HR-FR"},
	{Name: "Finolex", Tagline: "trusted for generations", Category: "FR-LSZH"},
	{Name: "GM", Tagline: "quality wires", Category: "HR-FR"},
	{Name: "Polycab", Tagline: "trusted by millions", Category: "HR-FR"},
	{Name: "Goldmedal", Tagline: "excellence in wiring", Category: "HR-FR"},
	{Name: "Apar", Tagline: "reliable solutions", Category: "HR-FR"},
	{Name: "V-Guard", Tagline: "protecting what matters", Category: "HR-FR"},
}

// Every brand gets the same coil sizes.
var productSeeds = []productSeed{
	{Description: "1.0 Sqmm 90 Mtrs", ListPrice: 2010, CoilPrice: 1328},
	{Description: "1.5 Sqmm 90 Mtrs", ListPrice: 3020, CoilPrice: 1996},
	{Description: "2.5 Sqmm 90 Mtrs", ListPrice: 4695, CoilPrice: 3102},
	{Description: "4.0 Sqmm 90 Mtrs", ListPrice: 6875, CoilPrice: 4543},
	{Description: "6.0 Sqmm 90 Mtrs", ListPrice: 10250, CoilPrice: 6780},
	{Description: "10.0 Sqmm 90 Mtrs", ListPrice: 16800, CoilPrice: 11100},
}

// Result reports what Catalog inserted.
type Result struct {
	Brands   int
	Products int
}

// Catalog replaces every brand and product with the demo catalog in one
// transaction. Quotations are left alone; they carry the brand by name.
func Catalog(ctx context.Context, client *db.Client) (*Result, error) {
	res := &Result{}
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("clear products: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Brand{}).Error; err != nil {
			return fmt.Errorf("clear brands: %w", err)
		}

		scoped := db.Wrap(tx)
		brandRepo := brands.NewRepository(scoped)
		productRepo := productsvc.NewRepository(scoped)

		for _, b := range brandSeeds {
			brand := &models.Brand{Name: b.Name, Tagline: b.Tagline, Category: b.Category, IsActive: true}
			if err := brandRepo.Create(ctx, brand); err != nil {
				return fmt.Errorf("insert brand %s: %w", b.Name, err)
			}
			res.Brands++

			for _, p := range productSeeds {
				product := &models.Product{
					Description: p.Description,
					BrandID:     brand.ID,
					ListPrice:   decimal.NewFromInt(p.ListPrice),
					CoilPrice:   decimal.NewFromInt(p.CoilPrice),
					IsActive:    true,
				}
				if err := productRepo.Create(ctx, product); err != nil {
					return fmt.Errorf("insert product %s for %s: %w", p.Description, b.Name, err)
				}
				res.Products++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
