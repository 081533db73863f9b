package quotations

import (
	"context"

	"github.com/angelmondragon/coilbill-backend/internal/repo"
	"github.com/angelmondragon/coilbill-backend/pkg/db"
	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists quotations.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository that resolves its connection per call.
func NewRepository(src db.Source) *Repository {
	return &Repository{Base: repo.NewBase(src)}
}

func (r *Repository) Create(ctx context.Context, q *models.Quotation) error {
	conn, err := r.DB(ctx)
	if err != nil {
		return err
	}
	return conn.Create(q).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	var q models.Quotation
	if err := conn.First(&q, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns quotations newest first. A non-nil paid narrows the result in SQL.
func (r *Repository) List(ctx context.Context, paid *bool) ([]models.Quotation, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := conn.Model(&models.Quotation{})
	if paid != nil {
		query = query.Where("paid = ?", *paid)
	}
	var rows []models.Quotation
	if err := query.Order("createdat DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateColumns applies a column map. Returns gorm.ErrRecordNotFound when no row matched.
func (r *Repository) UpdateColumns(ctx context.Context, id uuid.UUID, cols map[string]any) error {
	conn, err := r.DB(ctx)
	if err != nil {
		return err
	}
	res := conn.Model(&models.Quotation{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPaid only touches paid (and updatedat).
func (r *Repository) SetPaid(ctx context.Context, id uuid.UUID, paid bool) error {
	conn, err := r.DB(ctx)
	if err != nil {
		return err
	}
	res := conn.Model(&models.Quotation{}).Where("id = ?", id).Update("paid", paid)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard-deletes a quotation.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	conn, err := r.DB(ctx)
	if err != nil {
		return err
	}
	res := conn.Where("id = ?", id).Delete(&models.Quotation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
