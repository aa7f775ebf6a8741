package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gestion-pro/internal/application/dto"
	"github.com/jhoicas/gestion-pro/internal/domain"
	"github.com/jhoicas/gestion-pro/internal/domain/entity"
	"github.com/jhoicas/gestion-pro/internal/domain/repository"
)

// BusinessTypeUseCase aplica reglas de negocio para tipos de negocio (casos de uso).
type BusinessTypeUseCase struct {
	repo repository.BusinessTypeRepository
}

// NewBusinessTypeUseCase construye el caso de uso con el puerto de persistencia.
func NewBusinessTypeUseCase(repo repository.BusinessTypeRepository) *BusinessTypeUseCase {
	return &BusinessTypeUseCase{repo: repo}
}

// Create crea un tipo de negocio. Devuelve domain.ErrDuplicate si el code ya existe.
func (uc *BusinessTypeUseCase) Create(ctx context.Context, in dto.CreateBusinessTypeRequest) (*dto.BusinessTypeResponse, error) {
	existing, _ := uc.repo.GetByCode(ctx, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	bt := &entity.BusinessType{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, bt); err != nil {
		return nil, err
	}
	return toBusinessTypeResponse(bt), nil
}

// GetByID obtiene un tipo de negocio por ID.
func (uc *BusinessTypeUseCase) GetByID(ctx context.Context, id string) (*dto.BusinessTypeResponse, error) {
	bt, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bt == nil {
		return nil, nil
	}
	return toBusinessTypeResponse(bt), nil
}

// List lista tipos de negocio con paginación.
func (uc *BusinessTypeUseCase) List(ctx context.Context, limit, offset int) (*dto.BusinessTypeListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BusinessTypeResponse, 0, len(list))
	for _, bt := range list {
		items = append(items, *toBusinessTypeResponse(bt))
	}
	return &dto.BusinessTypeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toBusinessTypeResponse(bt *entity.BusinessType) *dto.BusinessTypeResponse {
	if bt == nil {
		return nil
	}
	return &dto.BusinessTypeResponse{
		ID:              bt.ID,
		Code:            bt.Code,
		Name:            bt.Name,
		ActiveVersionID: bt.ActiveVersionID,
		Status:          bt.Status,
		CreatedAt:       bt.CreatedAt,
		UpdatedAt:       bt.UpdatedAt,
	}
}
