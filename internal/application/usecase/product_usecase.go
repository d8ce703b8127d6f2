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

// ProductUseCase casos de uso CRUD para productos del catálogo.
type ProductUseCase struct {
	runner repository.TenantRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(runner repository.TenantRunner) *ProductUseCase {
	return &ProductUseCase{runner: runner}
}

// Create crea un producto. La sección debe existir en el restaurante.
func (uc *ProductUseCase) Create(ctx context.Context, restaurantID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now()
	product := &entity.Product{
		ID:                 uuid.New().String(),
		RestaurantID:       restaurantID,
		SectionID:          in.SectionID,
		Name:               in.Name,
		Unit:               in.Unit,
		Category:           in.Category,
		PosterIngredientID: in.PosterIngredientID,
		SupplierID:         in.SupplierID,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		section, err := r.Sections.GetByID(in.SectionID)
		if err != nil {
			return err
		}
		if section == nil {
			return domain.ErrNotFound
		}
		return r.Products.Create(product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, restaurantID, id string) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		p, err := r.Products.GetByID(id)
		if err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos, opcionalmente filtrados por sección.
func (uc *ProductUseCase) List(ctx context.Context, restaurantID, sectionID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	var list []*entity.Product
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		var (
			l   []*entity.Product
			err error
		)
		if sectionID != "" {
			l, err = r.Products.ListBySection(sectionID, page.Limit, page.Offset)
		} else {
			l, err = r.Products.List(page.Limit, page.Offset)
		}
		if err != nil {
			return err
		}
		list = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza un producto (campos omitidos conservan su valor).
func (uc *ProductUseCase) Update(ctx context.Context, restaurantID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.runner.WithRestaurantTx(ctx, restaurantID, func(r *repository.Tenant) error {
		p, err := r.Products.GetByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Unit != nil {
			p.Unit = *in.Unit
		}
		if in.Category != nil {
			p.Category = *in.Category
		}
		if in.SupplierID != nil {
			p.SupplierID = in.SupplierID
		}
		p.UpdatedAt = time.Now()
		if err := r.Products.Update(p); err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate marca el producto como inactivo.
func (uc *ProductUseCase) Deactivate(ctx context.Context, restaurantID, id string) error {
	return uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		return r.Products.Deactivate(id)
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                 p.ID,
		SectionID:          p.SectionID,
		Name:               p.Name,
		Unit:               p.Unit,
		Category:           p.Category,
		PosterIngredientID: p.PosterIngredientID,
		SupplierID:         p.SupplierID,
		IsActive:           p.IsActive,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
