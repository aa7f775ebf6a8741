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

// TenantUseCase aplica reglas de negocio para tenants (casos de uso).
type TenantUseCase struct {
	repo   repository.TenantRepository
	btRepo repository.BusinessTypeRepository
}

// NewTenantUseCase construye el caso de uso con los puertos de persistencia.
func NewTenantUseCase(repo repository.TenantRepository, btRepo repository.BusinessTypeRepository) *TenantUseCase {
	return &TenantUseCase{repo: repo, btRepo: btRepo}
}

// Create crea un tenant bajo un tipo de negocio existente.
// El tenant nace sin pin: sigue la versión activa de su tipo.
func (uc *TenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	bt, err := uc.btRepo.GetByID(ctx, in.BusinessTypeID)
	if err != nil {
		return nil, err
	}
	if bt == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	t := &entity.Tenant{
		ID:             uuid.New().String(),
		BusinessTypeID: in.BusinessTypeID,
		Name:           in.Name,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

// GetByID obtiene un tenant por ID.
func (uc *TenantUseCase) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return toTenantResponse(t), nil
}

// List lista tenants con paginación.
func (uc *TenantUseCase) List(ctx context.Context, limit, offset int) (*dto.TenantListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TenantResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTenantResponse(t))
	}
	return &dto.TenantListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	if t == nil {
		return nil
	}
	return &dto.TenantResponse{
		ID:              t.ID,
		BusinessTypeID:  t.BusinessTypeID,
		Name:            t.Name,
		Status:          t.Status,
		PinnedVersionID: t.PinnedVersionID,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
