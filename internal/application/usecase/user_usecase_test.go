package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sipp-api/internal/application/auth"
	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/application/usecase"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/infrastructure/memory"
)

var admin = dto.Actor{UserID: "admin-1", Role: entity.RoleAdmin}

func TestUserUseCase_DeleteCierraSesiones(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	authUC := auth.NewAuthUseCase(store.Users(), store.Sessions(), auth.JWTConfig{Secret: "s3cret", ExpMinutes: 30, Issuer: "sipp"})
	users := usecase.NewUserUseCase(store.Users(), store.Sessions())

	created, err := users.Create(ctx, dto.CreateUserRequest{FullName: "Marta", Email: "marta@uni.es", Password: "password1", Role: entity.RoleUser})
	require.NoError(t, err)

	// dos sesiones abiertas del mismo usuario
	for i := 0; i < 2; i++ {
		_, err := authUC.Login(ctx, dto.LoginRequest{Email: "marta@uni.es", Password: "password1"})
		require.NoError(t, err)
	}
	require.NoError(t, store.Sessions().Create(ctx, &entity.Session{ID: "otra", UserID: "otro-usuario", ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, users.Delete(ctx, admin, created.ID))

	n, err := store.Sessions().DeleteByUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "no quedan sesiones del usuario eliminado")

	other, err := store.Sessions().GetByID(ctx, "otra")
	require.NoError(t, err)
	assert.NotNil(t, other, "las sesiones de otros usuarios no se tocan")

	_, err = users.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUseCase_DeleteASiMismo(t *testing.T) {
	store := memory.NewStore()
	users := usecase.NewUserUseCase(store.Users(), store.Sessions())

	err := users.Delete(context.Background(), admin, admin.UserID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserUseCase_UpdateProfilePassword(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	users := usecase.NewUserUseCase(store.Users(), store.Sessions())

	u, err := users.Create(ctx, dto.CreateUserRequest{FullName: "Pedro", Email: "pedro@uni.es", Password: "password1", Role: entity.RoleComercial})
	require.NoError(t, err)

	area := "Compras"
	_, err = users.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{Area: &area, CurrentPassword: "mala", NewPassword: "nueva-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	out, err := users.UpdateProfile(ctx, u.ID, dto.UpdateProfileRequest{Area: &area, CurrentPassword: "password1", NewPassword: "nueva-clave"})
	require.NoError(t, err)
	assert.Equal(t, "Compras", out.Area)

	stored, err := store.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "nueva-clave"))
}

func TestUserUseCase_DesactivarCierraSesiones(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	users := usecase.NewUserUseCase(store.Users(), store.Sessions())

	u, err := users.Create(ctx, dto.CreateUserRequest{FullName: "Iván", Email: "ivan@uni.es", Password: "password1", Role: entity.RoleUser})
	require.NoError(t, err)
	require.NoError(t, store.Sessions().Create(ctx, &entity.Session{ID: "s1", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}))

	inactive := entity.UserStatusInactive
	out, err := users.Update(ctx, u.ID, dto.AdminUpdateUserRequest{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, out.Status)

	sess, err := store.Sessions().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestUserUseCase_CambioDeRolCierraSesiones(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	users := usecase.NewUserUseCase(store.Users(), store.Sessions())

	u, err := users.Create(ctx, dto.CreateUserRequest{FullName: "Lola", Email: "lola@uni.es", Password: "password1", Role: entity.RoleAdmin})
	require.NoError(t, err)
	require.NoError(t, store.Sessions().Create(ctx, &entity.Session{ID: "s1", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}))

	// editar sin cambiar el rol conserva la sesión
	name := "Lola Ruiz"
	_, err = users.Update(ctx, u.ID, dto.AdminUpdateUserRequest{FullName: &name})
	require.NoError(t, err)
	sess, err := store.Sessions().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, sess)

	role := entity.RoleUser
	out, err := users.Update(ctx, u.ID, dto.AdminUpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Role)

	sess, err = store.Sessions().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestUserUseCase_CreateEmailDuplicado(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	users := usecase.NewUserUseCase(store.Users(), store.Sessions())

	_, err := users.Create(ctx, dto.CreateUserRequest{FullName: "A", Email: "a@uni.es", Password: "password1", Role: entity.RoleUser})
	require.NoError(t, err)
	_, err = users.Create(ctx, dto.CreateUserRequest{FullName: "B", Email: "A@uni.es", Password: "password1", Role: entity.RoleUser})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}
