package brands

import (
	"io"
	"time"

	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
)

// BrandDTO is the API shape of a brand.
type BrandDTO struct {
	LegacyID  string    `json:"_id"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Logo      *string   `json:"logo"`
	Tagline   string    `json:"tagline"`
	Category  string    `json:"category"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BrandInput is the create/update payload. Nil fields are left untouched on update.
type BrandInput struct {
	Name     *string `json:"name" validate:"omitempty,max=120"`
	Tagline  *string `json:"tagline" validate:"omitempty,max=200"`
	Category *string `json:"category" validate:"omitempty,max=60"`
	Logo     *string `json:"logo"`
	IsActive *bool   `json:"isActive"`
}

// LogoUpload carries a multipart logo file alongside a BrandInput.
type LogoUpload struct {
	Filename string
	Body     io.Reader
}

func FromModel(b *models.Brand) BrandDTO {
	id := b.ID.String()
	return BrandDTO{
		LegacyID:  id,
		ID:        id,
		Name:      b.Name,
		Logo:      b.Logo,
		Tagline:   b.Tagline,
		Category:  b.Category,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
