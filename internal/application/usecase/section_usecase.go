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

// SectionUseCase casos de uso CRUD para secciones. Todas las operaciones corren
// dentro del contexto de tenant del restaurante indicado.
type SectionUseCase struct {
	runner repository.TenantRunner
}

// NewSectionUseCase construye el caso de uso.
func NewSectionUseCase(runner repository.TenantRunner) *SectionUseCase {
	return &SectionUseCase{runner: runner}
}

// Create crea una nueva sección.
func (uc *SectionUseCase) Create(ctx context.Context, restaurantID string, in dto.CreateSectionRequest) (*dto.SectionResponse, error) {
	now := time.Now()
	section := &entity.Section{
		ID:              uuid.New().String(),
		RestaurantID:    restaurantID,
		Name:            in.Name,
		Emoji:           in.Emoji,
		PosterStorageID: in.PosterStorageID,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		return r.Sections.Create(section)
	})
	if err != nil {
		return nil, err
	}
	return toSectionResponse(section), nil
}

// GetByID obtiene una sección por ID.
func (uc *SectionUseCase) GetByID(ctx context.Context, restaurantID, id string) (*dto.SectionResponse, error) {
	var section *entity.Section
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		s, err := r.Sections.GetByID(id)
		if err != nil {
			return err
		}
		section = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, domain.ErrNotFound
	}
	return toSectionResponse(section), nil
}

// List lista secciones con paginación.
func (uc *SectionUseCase) List(ctx context.Context, restaurantID string, page dto.PageRequest) (*dto.SectionListResponse, error) {
	page.DefaultPage()
	var list []*entity.Section
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		l, err := r.Sections.List(page.Limit, page.Offset)
		if err != nil {
			return err
		}
		list = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SectionResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSectionResponse(s))
	}
	return &dto.SectionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza una sección con semántica COALESCE: campos omitidos
// conservan su valor.
func (uc *SectionUseCase) Update(ctx context.Context, restaurantID, id string, in dto.UpdateSectionRequest) (*dto.SectionResponse, error) {
	var section *entity.Section
	err := uc.runner.WithRestaurantTx(ctx, restaurantID, func(r *repository.Tenant) error {
		s, err := r.Sections.GetByID(id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			s.Name = *in.Name
		}
		if in.Emoji != nil {
			s.Emoji = *in.Emoji
		}
		if in.PosterStorageID != nil {
			s.PosterStorageID = in.PosterStorageID
		}
		s.UpdatedAt = time.Now()
		if err := r.Sections.Update(s); err != nil {
			return err
		}
		section = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSectionResponse(section), nil
}

// Deactivate marca la sección como inactiva (borrado suave).
func (uc *SectionUseCase) Deactivate(ctx context.Context, restaurantID, id string) error {
	return uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		return r.Sections.Deactivate(id)
	})
}

func toSectionResponse(s *entity.Section) *dto.SectionResponse {
	if s == nil {
		return nil
	}
	return &dto.SectionResponse{
		ID:              s.ID,
		Name:            s.Name,
		Emoji:           s.Emoji,
		PosterStorageID: s.PosterStorageID,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
