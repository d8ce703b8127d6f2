package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/dto"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/infrastructure/poster"
)

// RestaurantUseCase casos de uso del tenant: vinculación de cuentas Poster y
// administración del restaurante actual.
type RestaurantUseCase struct {
	runner repository.TenantRunner
	pos    poster.API
}

// NewRestaurantUseCase construye el caso de uso.
func NewRestaurantUseCase(runner repository.TenantRunner, pos poster.API) *RestaurantUseCase {
	return &RestaurantUseCase{runner: runner, pos: pos}
}

// Link vincula una cuenta Poster como tenant. Valida las credenciales con una
// lectura real contra el POS antes de persistir; si la cuenta ya estaba
// vinculada, actualiza nombre y token (revinculación). Corre sin contexto de
// tenant: es la operación que crea tenants.
func (uc *RestaurantUseCase) Link(ctx context.Context, in dto.LinkRestaurantRequest) (*dto.RestaurantResponse, error) {
	creds := poster.Credentials{Account: in.PosterAccount, Token: in.PosterToken}
	if _, err := uc.pos.Storages(ctx, creds); err != nil {
		return nil, fmt.Errorf("%w: credenciales Poster rechazadas: %v", domain.ErrInvalidInput, err)
	}

	var rest *entity.Restaurant
	err := uc.runner.WithoutRestaurant(ctx, func(g *repository.Global) error {
		existing, err := g.Restaurants.GetByPosterAccount(in.PosterAccount)
		if err != nil {
			return err
		}
		now := time.Now()
		if existing != nil {
			existing.Name = in.Name
			existing.PosterToken = in.PosterToken
			existing.IsActive = true
			existing.UpdatedAt = now
			rest = existing
			return g.Restaurants.Update(existing)
		}
		rest = &entity.Restaurant{
			ID:            uuid.New().String(),
			Name:          in.Name,
			PosterAccount: in.PosterAccount,
			PosterToken:   in.PosterToken,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return g.Restaurants.Create(rest)
	})
	if err != nil {
		return nil, err
	}
	return toRestaurantResponse(rest), nil
}

// Get devuelve el restaurante del contexto actual.
func (uc *RestaurantUseCase) Get(ctx context.Context, restaurantID string) (*dto.RestaurantResponse, error) {
	var rest *entity.Restaurant
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		x, err := r.Restaurant.Get()
		if err != nil {
			return err
		}
		rest = x
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rest == nil {
		return nil, domain.ErrNotFound
	}
	return toRestaurantResponse(rest), nil
}

// Update cambio parcial del restaurante actual (nombre, almacenes por defecto).
func (uc *RestaurantUseCase) Update(ctx context.Context, restaurantID string, in dto.UpdateRestaurantRequest) (*dto.RestaurantResponse, error) {
	var rest *entity.Restaurant
	err := uc.runner.WithRestaurantTx(ctx, restaurantID, func(r *repository.Tenant) error {
		x, err := r.Restaurant.Get()
		if err != nil {
			return err
		}
		if x == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			x.Name = *in.Name
		}
		if in.KitchenStorageID != nil {
			x.KitchenStorageID = in.KitchenStorageID
		}
		if in.BarStorageID != nil {
			x.BarStorageID = in.BarStorageID
		}
		x.UpdatedAt = time.Now()
		if err := r.Restaurant.Update(x); err != nil {
			return err
		}
		rest = x
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toRestaurantResponse(rest), nil
}

// Deactivate desactiva el restaurante actual. Sin borrado físico: los datos
// quedan, los logins de sus usuarios se rechazan.
func (uc *RestaurantUseCase) Deactivate(ctx context.Context, restaurantID string) error {
	return uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		return r.Restaurant.Deactivate()
	})
}

func toRestaurantResponse(r *entity.Restaurant) *dto.RestaurantResponse {
	if r == nil {
		return nil
	}
	return &dto.RestaurantResponse{
		ID:               r.ID,
		Name:             r.Name,
		PosterAccount:    r.PosterAccount,
		KitchenStorageID: r.KitchenStorageID,
		BarStorageID:     r.BarStorageID,
		IsActive:         r.IsActive,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
