package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sipp-api/internal/application/auth"
	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/sipp-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), store.Sessions(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "sipp-test"})
	return uc, store
}

// seedUser inserta un usuario con la contraseña indicada, como hace sipp-admin seed-admin.
func seedUser(t *testing.T, store *memory.Store, email, password, role, status string) *entity.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := &entity.User{ID: "u-" + role, FullName: "Usuario " + role, Email: email, Role: role, Status: status, PasswordHash: hash}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func TestLogin_CredencialesVacias(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "  ", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_UsuarioSembrado(t *testing.T) {
	uc, store := newAuth(t)
	u := seedUser(t, store, "admin@sipp.local", "admin1234", entity.RoleAdmin, entity.UserStatusActive)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "Admin@SIPP.local", Password: "admin1234"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, out.User.ID)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	active, err := uc.IsSessionActive(context.Background(), claims.SessionID, u.ID)
	require.NoError(t, err)
	assert.True(t, active, "el login abre una sesión")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, store := newAuth(t)
	seedUser(t, store, "ana@uni.es", "correcta123", entity.RoleUser, entity.UserStatusActive)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@uni.es", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@uni.es", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, store := newAuth(t)
	seedUser(t, store, "baja@uni.es", "password1", entity.RoleUser, entity.UserStatusInactive)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "baja@uni.es", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegisterUser(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	out, err := uc.RegisterUser(ctx, dto.RegisterRequest{FullName: "Luis Pérez", Email: " Luis@Uni.es ", Password: "segura123", Area: "Química"})
	require.NoError(t, err)
	assert.Equal(t, "luis@uni.es", out.Email)
	assert.Equal(t, entity.RoleUser, out.Role, "el auto-registro nunca otorga privilegios")

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{FullName: "Otro", Email: "luis@uni.es", Password: "segura123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "luis@uni.es", Password: "segura123"})
	assert.NoError(t, err)
}

func TestLogout_InvalidaSesion(t *testing.T) {
	uc, store := newAuth(t)
	u := seedUser(t, store, "c@uni.es", "password1", entity.RoleComercial, entity.UserStatusActive)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "c@uni.es", Password: "password1"})
	require.NoError(t, err)
	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, claims.SessionID))
	active, err := uc.IsSessionActive(ctx, claims.SessionID, u.ID)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestEnsureAdmin_CreaUnaSolaVez(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	first, created, err := uc.EnsureAdmin(ctx, " Root@SIPP.local ", "admin1234", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, entity.RoleAdmin, first.Role)
	assert.Equal(t, "root@sipp.local", first.Email)

	again, created, err := uc.EnsureAdmin(ctx, "root@sipp.local", "otra-clave-123", "Otro")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "root@sipp.local", Password: "admin1234"})
	assert.NoError(t, err)
}

func TestEnsureAdmin_PasswordCorta(t *testing.T) {
	uc, _ := newAuth(t)
	_, _, err := uc.EnsureAdmin(context.Background(), "root@sipp.local", "corta", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
