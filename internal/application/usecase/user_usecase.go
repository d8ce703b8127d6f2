package usecase

import (
	"context"
	"time"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/auth"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/dto"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
)

// UserUseCase casos de uso de administración de usuarios y de sus capacidades
// por sección. El registro (alta con password) vive en auth.AuthUseCase.
type UserUseCase struct {
	runner repository.TenantRunner
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(runner repository.TenantRunner) *UserUseCase {
	return &UserUseCase{runner: runner}
}

// List lista usuarios del restaurante con paginación.
func (uc *UserUseCase) List(ctx context.Context, restaurantID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	var list []*entity.User
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		l, err := r.Users.List(page.Limit, page.Offset)
		if err != nil {
			return err
		}
		list = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// AssignSection concede capacidades a un usuario sobre una sección. Es un
// upsert: repetir la concesión actualiza los flags existentes.
func (uc *UserUseCase) AssignSection(ctx context.Context, restaurantID, userID string, in dto.AssignSectionRequest) (*dto.AssignmentResponse, error) {
	var out *dto.AssignmentResponse
	err := uc.runner.WithRestaurantTx(ctx, restaurantID, func(r *repository.Tenant) error {
		user, err := r.Users.GetByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		section, err := r.Sections.GetByID(in.SectionID)
		if err != nil {
			return err
		}
		if section == nil {
			return domain.ErrNotFound
		}
		a := &entity.SectionAssignment{
			UserID:        userID,
			SectionID:     in.SectionID,
			CanSendOrders: in.CanSendOrders,
			CanReceive:    in.CanReceive,
			CreatedAt:     time.Now(),
		}
		if err := r.Assignments.Upsert(a); err != nil {
			return err
		}
		out = &dto.AssignmentResponse{
			UserID:        a.UserID,
			SectionID:     a.SectionID,
			SectionName:   section.Name,
			CanSendOrders: a.CanSendOrders,
			CanReceive:    a.CanReceive,
			CreatedAt:     a.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListAssignments lista las asignaciones de un usuario.
func (uc *UserUseCase) ListAssignments(ctx context.Context, restaurantID, userID string) ([]dto.AssignmentResponse, error) {
	var list []entity.SectionAssignment
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		l, err := r.Assignments.ListByUser(userID)
		if err != nil {
			return err
		}
		list = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.AssignmentResponse{
			UserID:        a.UserID,
			SectionID:     a.SectionID,
			SectionName:   a.SectionName,
			CanSendOrders: a.CanSendOrders,
			CanReceive:    a.CanReceive,
			CreatedAt:     a.CreatedAt,
		})
	}
	return items, nil
}

// RevokeSection retira las capacidades de un usuario sobre una sección.
func (uc *UserUseCase) RevokeSection(ctx context.Context, restaurantID, userID, sectionID string) error {
	return uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		return r.Assignments.Delete(userID, sectionID)
	})
}
