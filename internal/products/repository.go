package product

import (
	"context"

	"github.com/angelmondragon/coilbill-backend/internal/repo"
	"github.com/angelmondragon/coilbill-backend/pkg/db"
	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists catalog products.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository that resolves its connection per call.
func NewRepository(src db.Source) *Repository {
	return &Repository{Base: repo.NewBase(src)}
}

func withBrand(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Brand", func(q *gorm.DB) *gorm.DB {
		return q.Select("id", "name")
	})
}

// ListActive returns active products ordered by description. A non-nil brandID narrows by brand.
func (r *Repository) ListActive(ctx context.Context, brandID *uuid.UUID) ([]models.Product, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := withBrand(conn.Model(&models.Product{})).Where("is_active = ?", true)
	if brandID != nil {
		query = query.Where("brand_id = ?", *brandID)
	}
	var rows []models.Product
	if err := query.Order("description ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a product with its brand, active or not.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	var p models.Product
	if err := withBrand(conn).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, p *models.Product) error {
	conn, err := r.DB(ctx)
	if err != nil {
		return err
	}
	return conn.Omit("Brand").Create(p).Error
}

// UpdateColumns returns gorm.ErrRecordNotFound when no row matched.
func (r *Repository) UpdateColumns(ctx context.Context, id uuid.UUID, cols map[string]any) error {
	conn, err := r.DB(ctx)
	if err != nil {
		return err
	}
	res := conn.Model(&models.Product{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Deactivate soft-deletes a product.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.UpdateColumns(ctx, id, map[string]any{"is_active": false})
}
