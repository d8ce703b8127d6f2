package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/dto"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
	"github.com/zhanikpanik/restaurant-checklist-sub002/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y registro de usuarios.
// El login es la única operación que corre sin contexto de tenant: el email se
// resuelve globalmente y el restaurante del usuario sale del resultado.
type AuthUseCase struct {
	runner repository.TenantRunner
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(runner repository.TenantRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{runner: runner, jwtCfg: jwtCfg}
}

// Login verifica email/password, comprueba que el restaurante del usuario siga
// activo, genera JWT (user_id, restaurant_id, role) y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var user *entity.User
	err := uc.runner.WithoutRestaurant(ctx, func(g *repository.Global) error {
		u, err := g.Users.FindByEmail(in.Email)
		if err != nil {
			return err
		}
		// Email desconocido y password incorrecto responden igual: un 404
		// aquí delataría qué emails están registrados.
		if u == nil {
			return domain.ErrUnauthorized
		}
		rest, err := g.Restaurants.GetByID(u.RestaurantID)
		if err != nil {
			return err
		}
		if rest == nil || !rest.IsActive {
			return domain.ErrRestaurantInactive
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.RestaurantID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// RegisterUser crea un usuario dentro del restaurante del admin autenticado:
// hashea el password con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si
// el email ya existe en el sistema (el email es único globalmente).
func (uc *AuthUseCase) RegisterUser(ctx context.Context, restaurantID string, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		return r.Users.Create(user)
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ToUserResponse mapea la entidad a su DTO de salida (sin password hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		RestaurantID: u.RestaurantID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
