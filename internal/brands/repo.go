package brands

import (
	"context"

	"github.com/angelmondragon/coilbill-backend/internal/repo"
	"github.com/angelmondragon/coilbill-backend/pkg/db"
	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists brands.
type Repository struct {
	repo.Base
}

func NewRepository(src db.Source) *Repository {
	return &Repository{Base: repo.NewBase(src)}
}

// List returns brands ordered by name, optionally only active ones.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]models.Brand, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := conn.Model(&models.Brand{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rows []models.Brand
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	var b models.Brand
	if err := conn.First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByName matches exactly; the unique index is case-sensitive.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Brand, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	var b models.Brand
	if err := conn.First(&b, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) Create(ctx context.Context, b *models.Brand) error {
	conn, err := r.DB(ctx)
	if err != nil {
		return err
	}
	return conn.Create(b).Error
}

// UpdateColumns returns gorm.ErrRecordNotFound when no row matched.
func (r *Repository) UpdateColumns(ctx context.Context, id uuid.UUID, cols map[string]any) error {
	conn, err := r.DB(ctx)
	if err != nil {
		return err
	}
	res := conn.Model(&models.Brand{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Deactivate soft-deletes a brand.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.UpdateColumns(ctx, id, map[string]any{"is_active": false})
}
