package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sipp-api/internal/application/auth"
	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios: perfil propio y administración.
type UserUseCase struct {
	repo     repository.UserRepository
	sessions repository.SessionRepository
	now      func() time.Time
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, sessions repository.SessionRepository) *UserUseCase {
	return &UserUseCase{repo: repo, sessions: sessions, now: time.Now}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// UpdateProfile edita el perfil del propio usuario. El cambio de contraseña exige la actual.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FullName != nil {
		user.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.AreaType != nil {
		user.AreaType = *in.AreaType
	}
	if in.Area != nil {
		user.Area = *in.Area
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if in.NewPassword != "" {
		if !auth.CheckPassword(user.PasswordHash, in.CurrentPassword) {
			return nil, fmt.Errorf("contraseña actual incorrecta: %w", domain.ErrUnauthorized)
		}
		hash, err := auth.HashPassword(in.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// List lista usuarios paginados (solo admin).
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	users, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Create alta de usuario con cualquier rol (solo admin).
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("rol %q: %w", in.Role, domain.ErrInvalidInput)
	}
	email := auth.NormalizeEmail(in.Email)
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		AreaType:     in.AreaType,
		Area:         in.Area,
		Role:         in.Role,
		PasswordHash: hash,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Update edición administrativa. Desactivar un usuario cierra sus sesiones.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FullName != nil {
		user.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.AreaType != nil {
		user.AreaType = *in.AreaType
	}
	if in.Area != nil {
		user.Area = *in.Area
	}
	prevRole := user.Role
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, fmt.Errorf("rol %q: %w", *in.Role, domain.ErrInvalidInput)
		}
		user.Role = *in.Role
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	// El rol viaja en el token: un cambio de rol obliga a iniciar sesión de nuevo.
	if user.Status == entity.UserStatusInactive || user.Role != prevRole {
		if _, err := uc.sessions.DeleteByUser(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("cerrar sesiones: %w", err)
		}
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina el usuario y todas sus sesiones. Un admin no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	if actor.UserID == id {
		return fmt.Errorf("no puede eliminar su propio usuario: %w", domain.ErrConflict)
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if _, err := uc.sessions.DeleteByUser(ctx, id); err != nil {
		return fmt.Errorf("cerrar sesiones: %w", err)
	}
	return uc.repo.Delete(ctx, id)
}
