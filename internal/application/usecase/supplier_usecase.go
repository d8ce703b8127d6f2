package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/dto"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	runner repository.TenantRunner
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(runner repository.TenantRunner) *SupplierUseCase {
	return &SupplierUseCase{runner: runner}
}

// Create crea un nuevo proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, restaurantID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now()
	supplier := &entity.Supplier{
		ID:               uuid.New().String(),
		RestaurantID:     restaurantID,
		Name:             in.Name,
		Phone:            in.Phone,
		PosterSupplierID: in.PosterSupplierID,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		return r.Suppliers.Create(supplier)
	})
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, restaurantID, id string) (*dto.SupplierResponse, error) {
	var supplier *entity.Supplier
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		s, err := r.Suppliers.GetByID(id)
		if err != nil {
			return err
		}
		supplier = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, restaurantID string, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	var list []*entity.Supplier
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		l, err := r.Suppliers.List(page.Limit, page.Offset)
		if err != nil {
			return err
		}
		list = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza un proveedor (campos omitidos conservan su valor).
func (uc *SupplierUseCase) Update(ctx context.Context, restaurantID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	var supplier *entity.Supplier
	err := uc.runner.WithRestaurantTx(ctx, restaurantID, func(r *repository.Tenant) error {
		s, err := r.Suppliers.GetByID(id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			s.Name = *in.Name
		}
		if in.Phone != nil {
			s.Phone = *in.Phone
		}
		s.UpdatedAt = time.Now()
		if err := r.Suppliers.Update(s); err != nil {
			return err
		}
		supplier = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Deactivate marca el proveedor como inactivo.
func (uc *SupplierUseCase) Deactivate(ctx context.Context, restaurantID, id string) error {
	return uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		return r.Suppliers.Deactivate(id)
	})
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:               s.ID,
		Name:             s.Name,
		Phone:            s.Phone,
		PosterSupplierID: s.PosterSupplierID,
		IsActive:         s.IsActive,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
