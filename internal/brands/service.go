package brands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/angelmondragon/coilbill-backend/pkg/db"
	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type brandRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Brand, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	FindByName(ctx context.Context, name string) (*models.Brand, error)
	Create(ctx context.Context, b *models.Brand) error
	UpdateColumns(ctx context.Context, id uuid.UUID, cols map[string]any) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// LogoStore is the subset of media.LogoStore the service needs.
type LogoStore interface {
	Save(ctx context.Context, filename string, body io.Reader) (string, error)
	Remove(publicPath string)
}

// Service manages the brand catalog.
type Service interface {
	List(ctx context.Context) ([]BrandDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*BrandDTO, error)
	Create(ctx context.Context, input BrandInput, logo *LogoUpload) (*BrandDTO, error)
	Update(ctx context.Context, id uuid.UUID, input BrandInput, logo *LogoUpload) (*BrandDTO, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  brandRepository
	logos LogoStore
}

// NewService wires the brand service. logos may be nil when uploads are disabled.
func NewService(repo brandRepository, logos LogoStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("brand repository required")
	}
	return &service{repo: repo, logos: logos}, nil
}

// List returns active brands sorted by name.
func (s *service) List(ctx context.Context) ([]BrandDTO, error) {
	rows, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, wrapStoreErr(err, "list brands")
	}
	out := make([]BrandDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

// Get returns a brand even when it has been deactivated.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*BrandDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err, "load brand")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, input BrandInput, logo *LogoUpload) (*BrandDTO, error) {
	name := ""
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand name is required").
			WithDetails(map[string]any{"fields": map[string]string{"name": "is required"}})
	}
	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	row := &models.Brand{
		Name:     name,
		Tagline:  valueOr(input.Tagline, models.DefaultBrandTagline),
		Category: valueOr(input.Category, models.DefaultBrandCategory),
		IsActive: true,
		Logo:     trimmedPtr(input.Logo),
	}

	saved, err := s.saveLogo(ctx, logo)
	if err != nil {
		return nil, err
	}
	if saved != "" {
		row.Logo = &saved
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.discardLogo(saved)
		return nil, wrapStoreErr(err, "create brand")
	}
	dto := FromModel(row)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input BrandInput, logo *LogoUpload) (*BrandDTO, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err, "load brand")
	}

	cols := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand name must not be empty").
				WithDetails(map[string]any{"fields": map[string]string{"name": "must not be empty"}})
		}
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
		cols["name"] = name
	}
	if input.Tagline != nil {
		cols["tagline"] = strings.TrimSpace(*input.Tagline)
	}
	if input.Category != nil {
		cols["category"] = strings.TrimSpace(*input.Category)
	}
	if input.IsActive != nil {
		cols["is_active"] = *input.IsActive
	}
	if input.Logo != nil {
		cols["logo"] = trimmedPtr(input.Logo)
	}

	saved, err := s.saveLogo(ctx, logo)
	if err != nil {
		return nil, err
	}
	if saved != "" {
		cols["logo"] = saved
	}

	if len(cols) > 0 {
		if err := s.repo.UpdateColumns(ctx, id, cols); err != nil {
			s.discardLogo(saved)
			return nil, wrapStoreErr(err, "update brand")
		}
		if saved != "" && current.Logo != nil && *current.Logo != saved {
			s.discardLogo(*current.Logo)
		}
	}
	return s.Get(ctx, id)
}

// Deactivate hides a brand from listings. Products keep referencing it.
func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return wrapStoreErr(err, "deactivate brand")
	}
	return nil
}

func (s *service) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return wrapStoreErr(err, "check brand name")
	}
	if existing.ID == self {
		return nil
	}
	return duplicateNameErr(name)
}

func (s *service) saveLogo(ctx context.Context, logo *LogoUpload) (string, error) {
	if logo == nil || logo.Body == nil {
		return "", nil
	}
	if s.logos == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "logo uploads are disabled")
	}
	return s.logos.Save(ctx, logo.Filename, logo.Body)
}

func (s *service) discardLogo(publicPath string) {
	if s.logos != nil && publicPath != "" {
		s.logos.Remove(publicPath)
	}
}

func duplicateNameErr(name string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "brand name already exists").
		WithDetails(map[string]any{"fields": map[string]string{"name": fmt.Sprintf("%q is taken", name)}})
}

func wrapStoreErr(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "brand not found")
	}
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeValidation, "brand name already exists")
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}

func valueOr(v *string, fallback string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fallback
	}
	return strings.TrimSpace(*v)
}

func trimmedPtr(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}
