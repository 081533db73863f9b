package admins

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/coilbill-backend/internal/repo"
	"github.com/angelmondragon/coilbill-backend/pkg/db"
	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes admin persistence operations.
type Repository struct {
	repo.Base
}

func NewRepository(src db.Source) *Repository {
	return &Repository{Base: repo.NewBase(src)}
}

// FindByUsername matches case-insensitively on the trimmed name.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	var admin models.Admin
	if err := conn.Where("LOWER(username) = ?", normalizeUsername(username)).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, err
	}
	var admin models.Admin
	if err := conn.First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// UpdatePasswordHash overwrites the stored hash.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	conn, err := r.DB(ctx)
	if err != nil {
		return err
	}
	return conn.Model(&models.Admin{}).Where("id = ?", id).Update("password_hash", hash).Error
}

// Upsert creates the admin or resets the password of an existing one.
// Display name and multiplier of an existing row are left alone.
func (r *Repository) Upsert(ctx context.Context, username, passwordHash string) (*models.Admin, bool, error) {
	conn, err := r.DB(ctx)
	if err != nil {
		return nil, false, err
	}

	var (
		admin   models.Admin
		created bool
	)
	err = conn.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("LOWER(username) = ?", normalizeUsername(username)).First(&admin).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			admin = models.Admin{
				Username:     strings.TrimSpace(username),
				PasswordHash: passwordHash,
				DisplayName:  strings.TrimSpace(username),
			}
			created = true
			return tx.Create(&admin).Error
		case err != nil:
			return err
		}
		admin.PasswordHash = passwordHash
		return tx.Model(&admin).Update("password_hash", passwordHash).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &admin, created, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
