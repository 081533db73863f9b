package quotations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angelmondragon/coilbill-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/coilbill-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type quotationRepository interface {
	Create(ctx context.Context, q *models.Quotation) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Quotation, error)
	List(ctx context.Context, paid *bool) ([]models.Quotation, error)
	UpdateColumns(ctx context.Context, id uuid.UUID, cols map[string]any) error
	SetPaid(ctx context.Context, id uuid.UUID, paid bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes quotation persistence.
type Service interface {
	Create(ctx context.Context, input QuotationInput) (*QuotationDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*QuotationDTO, error)
	List(ctx context.Context, filter ListFilter) ([]QuotationDTO, error)
	Update(ctx context.Context, id uuid.UUID, body map[string]json.RawMessage) (*QuotationDTO, error)
	SetPaid(ctx context.Context, id uuid.UUID, paid bool) (*QuotationDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context, filter ListFilter) (*bytes.Buffer, error)
}

type service struct {
	repo     quotationRepository
	defaults Defaults
}

// NewService builds the quotation service.
func NewService(repo quotationRepository, defaults Defaults) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotation repository required")
	}
	return &service{repo: repo, defaults: defaults}, nil
}

func (s *service) Create(ctx context.Context, input QuotationInput) (*QuotationDTO, error) {
	row, err := ToStorage(input, s.defaults)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, wrapStoreErr(err, "create quotation")
	}
	return FromStorage(row, s.defaults)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*QuotationDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err, "load quotation")
	}
	return FromStorage(row, s.defaults)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]QuotationDTO, error) {
	rows, err := s.repo.List(ctx, filter.Paid)
	if err != nil {
		return nil, wrapStoreErr(err, "list quotations")
	}
	out := make([]QuotationDTO, 0, len(rows))
	for i := range rows {
		dto, err := FromStorage(&rows[i], s.defaults)
		if err != nil {
			return nil, err
		}
		out = append(out, *dto)
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, body map[string]json.RawMessage) (*QuotationDTO, error) {
	cols, err := UpdateColumns(body, s.defaults)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return s.Get(ctx, id)
	}
	if err := s.repo.UpdateColumns(ctx, id, cols); err != nil {
		return nil, wrapStoreErr(err, "update quotation")
	}
	return s.Get(ctx, id)
}

func (s *service) SetPaid(ctx context.Context, id uuid.UUID, paid bool) (*QuotationDTO, error) {
	if err := s.repo.SetPaid(ctx, id, paid); err != nil {
		return nil, wrapStoreErr(err, "update quotation paid status")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapStoreErr(err, "delete quotation")
	}
	return nil
}

func (s *service) Export(ctx context.Context, filter ListFilter) (*bytes.Buffer, error) {
	rows, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return BuildWorkbook(rows)
}

func wrapStoreErr(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}
