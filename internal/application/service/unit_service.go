package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tuanvm/stockwise-api/internal/domain/entity"
	"github.com/tuanvm/stockwise-api/internal/domain/repository"
	"github.com/tuanvm/stockwise-api/pkg/apperror"
	"github.com/tuanvm/stockwise-api/pkg/pagination"
)

// UnitService handles measurement unit operations
type UnitService struct {
	unitRepo    repository.UnitRepository
	productRepo repository.ProductRepository
}

// NewUnitService creates a new unit service
func NewUnitService(unitRepo repository.UnitRepository, productRepo repository.ProductRepository) *UnitService {
	return &UnitService{
		unitRepo:    unitRepo,
		productRepo: productRepo,
	}
}

// CreateUnit creates a new unit
func (s *UnitService) CreateUnit(ctx context.Context, name string) (*entity.Unit, error) {
	unit := &entity.Unit{Name: name}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// GetUnit returns a unit by ID
func (s *UnitService) GetUnit(ctx context.Context, id uuid.UUID) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}
	return unit, nil
}

// UpdateUnit renames a unit and pushes the new name to the denormalized
// copies on product rows.
func (s *UnitService) UpdateUnit(ctx context.Context, id uuid.UUID, name string) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}

	renamed := name != "" && name != unit.Name
	if name != "" {
		unit.Name = name
	}

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}

	if renamed {
		if err := s.productRepo.RefreshUnitName(ctx, unit.ID, unit.Name); err != nil {
			return nil, err
		}
	}

	return unit, nil
}

// DeleteUnit removes a unit
func (s *UnitService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if unit == nil {
		return apperror.NewNotFoundError("Unit")
	}
	return s.unitRepo.Delete(ctx, id)
}

// ListUnits returns a paginated list of units
func (s *UnitService) ListUnits(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Unit], error) {
	units, total, err := s.unitRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(units, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
