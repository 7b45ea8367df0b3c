package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sipp-api/internal/application/dto"
	"github.com/jhoicas/sipp-api/internal/domain"
	"github.com/jhoicas/sipp-api/internal/domain/entity"
	"github.com/jhoicas/sipp-api/internal/domain/repository"
	"github.com/jhoicas/sipp-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y validación de sesión.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtCfg      JWTConfig
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessionRepo: sessionRepo, jwtCfg: jwtCfg, now: time.Now}
}

// HashPassword genera el hash bcrypt de una contraseña en texto plano.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compara una contraseña con su hash bcrypt.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NormalizeEmail recorta espacios y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser auto-registro con rol user. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := NormalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := HashPassword(in.Password)
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
		Role:         entity.RoleUser,
		PasswordHash: hash,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// EnsureAdmin crea un administrador activo si el email no existe. Si ya existe no lo modifica
// y devuelve created=false.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password, fullName string) (user *dto.UserResponse, created bool, err error) {
	email = NormalizeEmail(email)
	if email == "" || len(password) < 8 {
		return nil, false, fmt.Errorf("email y password (mínimo 8 caracteres) son requeridos: %w", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return ToUserResponse(existing), false, nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(fullName) == "" {
		fullName = "Administrador"
	}
	now := uc.now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		FullName:     strings.TrimSpace(fullName),
		Email:        email,
		Role:         entity.RoleAdmin,
		PasswordHash: hash,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		return nil, false, err
	}
	return ToUserResponse(admin), true, nil
}

// Login verifica email/password, abre una sesión y devuelve el JWT que la referencia.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if !CheckPassword(user.PasswordHash, in.Password) {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}

	now := uc.now()
	session := &entity.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("crear sesión: %w", err)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, session.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		_ = uc.sessionRepo.Delete(ctx, session.ID)
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      *ToUserResponse(user),
	}, nil
}

// Logout cierra la sesión; el token deja de ser aceptado aunque no haya expirado.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrInvalidInput
	}
	return uc.sessionRepo.Delete(ctx, sessionID)
}

// IsSessionActive informa si la sesión existe, pertenece al usuario y no expiró.
func (uc *AuthUseCase) IsSessionActive(ctx context.Context, sessionID, userID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	s, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if s == nil || s.UserID != userID || s.Expired(uc.now()) {
		return false, nil
	}
	return true, nil
}

// ToUserResponse convierte la entidad en su representación pública (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		AreaType:  u.AreaType,
		Area:      u.Area,
		Role:      u.Role,
		Avatar:    u.Avatar,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
