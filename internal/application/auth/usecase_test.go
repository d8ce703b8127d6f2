package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/auth"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/dto"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
	pkgjwt "github.com/zhanikpanik/restaurant-checklist-sub002/pkg/jwt"
)

type fakeUsers struct {
	repository.UserRepository
	byEmail map[string]*entity.User
}

func (f *fakeUsers) FindByEmail(email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

type fakeDirectory struct {
	repository.RestaurantDirectory
	byID map[string]*entity.Restaurant
}

func (f *fakeDirectory) GetByID(id string) (*entity.Restaurant, error) {
	return f.byID[id], nil
}

type fakeRunner struct {
	global *repository.Global
}

func (f *fakeRunner) WithRestaurant(_ context.Context, _ string, fn func(*repository.Tenant) error) error {
	panic("no usado en estos tests")
}

func (f *fakeRunner) WithRestaurantTx(_ context.Context, _ string, fn func(*repository.Tenant) error) error {
	panic("no usado en estos tests")
}

func (f *fakeRunner) WithoutRestaurant(_ context.Context, fn func(*repository.Global) error) error {
	return fn(f.global)
}

const (
	testRestID = "00000000-0000-0000-0000-00000000000a"
	testSecret = "secret-de-tests"
)

func newAuthFixture(t *testing.T, password string) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUsers{byEmail: map[string]*entity.User{
		"ana@example.com": {
			ID:           "u1",
			RestaurantID: testRestID,
			Email:        "ana@example.com",
			PasswordHash: string(hash),
			Name:         "Ana",
			Role:         entity.RoleManager,
			IsActive:     true,
		},
	}}
	dir := &fakeDirectory{byID: map[string]*entity.Restaurant{
		testRestID: {ID: testRestID, Name: "La Terraza", IsActive: true},
	}}
	runner := &fakeRunner{global: &repository.Global{Users: users, Restaurants: dir}}
	return auth.NewAuthUseCase(runner, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "tests"})
}

func TestLogin_Exitoso(t *testing.T) {
	uc := newAuthFixture(t, "correcta123")

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "correcta123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", resp.User.Email)

	userID, restaurantID, role, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, testRestID, restaurantID)
	assert.Equal(t, entity.RoleManager, role)
}

// Email desconocido y password incorrecto deben ser indistinguibles para el
// cliente: ambos responden no autorizado, sin revelar qué emails existen.
func TestLogin_EmailDesconocidoNoRevelaRegistro(t *testing.T) {
	uc := newAuthFixture(t, "correcta123")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "loquesea"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.NotErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_PasswordIncorrectoMismaRespuesta(t *testing.T) {
	uc := newAuthFixture(t, "correcta123")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
