package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"alupro-backend/internal/config"
	"alupro-backend/internal/domains/user/model"
	"alupro-backend/internal/domains/user/repository"
	"alupro-backend/internal/shared"
	"alupro-backend/pkg/cache"
	"alupro-backend/pkg/jwt"
	"alupro-backend/pkg/logger"
)

const (
	MaxFailedAttempts = 5
	AttemptWindow     = 15 * time.Minute

	failedLoginPrefix = "auth:failed:"
	defaultHashCost   = 12
)

// TokenIssuer is implemented by *jwt.Manager
type TokenIssuer interface {
	GenerateAccessToken(userID, email, role string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	ValidateRefreshToken(token string) (*jwt.Claims, error)
	AccessExpiry() time.Duration
}

type UserService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*model.AuthResponse, error)
	Me(ctx context.Context, id uuid.UUID) (*model.User, error)

	List(ctx context.Context, filter model.ListFilter) ([]*model.User, int, error)
	UpdateRole(ctx context.Context, actorID uuid.UUID, actorRole string, targetID uuid.UUID, role string) (*model.User, error)
	EnsureSuperAdmin(ctx context.Context, cfg config.AdminBootstrapConfig) error
}

type userService struct {
	repo     repository.UserRepository
	tokens   TokenIssuer
	cache    cache.Cache
	hashCost int
}

func NewUserService(repo repository.UserRepository, tokens TokenIssuer, c cache.Cache) UserService {
	return &userService{repo: repo, tokens: tokens, cache: c, hashCost: defaultHashCost}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register creates a customer account and signs it in
func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           uuid.New(),
		Email:        model.NormalizeEmail(req.Email),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         shared.RoleUser,
		IsActive:     true,
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		u.Phone = &phone
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("User registered", map[string]interface{}{"user_id": u.ID})
	return s.issue(u)
}

// Login checks the password; repeated failures lock the email for AttemptWindow
func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	email := model.NormalizeEmail(req.Email)
	attemptKey := failedLoginPrefix + email

	// 1. Locked out?
	var attempts int64
	if found, err := s.cache.Get(ctx, attemptKey, &attempts); err == nil && found && attempts >= MaxFailedAttempts {
		return nil, model.ErrTooManyAttempts
	}

	// 2. Lookup, same error for unknown email and wrong password
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.recordFailure(ctx, attemptKey)
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	// 3. Verify
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailure(ctx, attemptKey)
		return nil, model.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, model.ErrUserInactive
	}

	// 4. Reset counter, stamp login
	if err := s.cache.Delete(ctx, attemptKey); err != nil {
		logger.Warn("Failed login counter not cleared", map[string]interface{}{"error": err.Error()})
	}
	if err := s.repo.UpdateLastLogin(ctx, u.ID); err != nil {
		logger.Warn("Last login not updated", map[string]interface{}{"user_id": u.ID, "error": err.Error()})
	}

	return s.issue(u)
}

func (s *userService) recordFailure(ctx context.Context, key string) {
	n, err := s.cache.Increment(ctx, key)
	if err != nil {
		logger.Warn("Failed login not counted", map[string]interface{}{"error": err.Error()})
		return
	}
	if n == 1 {
		_ = s.cache.Expire(ctx, key, AttemptWindow)
	}
	if n == MaxFailedAttempts {
		logger.Warn("Login locked after repeated failures", map[string]interface{}{"key": key})
	}
}

// Refresh trades a refresh token for a new pair, re-reading the role from the database
func (s *userService) Refresh(ctx context.Context, refreshToken string) (*model.AuthResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, model.ErrInvalidToken.Wrap(err)
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.ErrInvalidToken.Wrap(err)
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidToken
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, model.ErrUserInactive
	}

	return s.issue(u)
}

func (s *userService) Me(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) issue(u *model.User) (*model.AuthResponse, error) {
	access, err := s.tokens.GenerateAccessToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.tokens.AccessExpiry().Seconds()),
		User:         u,
	}, nil
}

// ========================================
// ADMIN
// ========================================

func (s *userService) List(ctx context.Context, filter model.ListFilter) ([]*model.User, int, error) {
	return s.repo.List(ctx, filter)
}

// UpdateRole enforces that nobody edits their own role and that only a
// super admin grants or revokes super admin
func (s *userService) UpdateRole(ctx context.Context, actorID uuid.UUID, actorRole string, targetID uuid.UUID, role string) (*model.User, error) {
	if !shared.IsValidRole(role) {
		return nil, model.ErrInvalidRole
	}
	if actorID == targetID {
		return nil, model.ErrRoleChangeDenied
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if actorRole != shared.RoleSuperAdmin &&
		(role == shared.RoleSuperAdmin || target.Role == shared.RoleSuperAdmin) {
		return nil, model.ErrRoleChangeDenied
	}
	if target.Role == role {
		return target, nil
	}

	updated, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}

	logger.Info("User role changed", map[string]interface{}{
		"user_id": targetID,
		"from":    target.Role,
		"to":      role,
		"by":      actorID,
	})
	return updated, nil
}

// EnsureSuperAdmin creates or promotes the configured bootstrap account
func (s *userService) EnsureSuperAdmin(ctx context.Context, cfg config.AdminBootstrapConfig) error {
	if cfg.SuperAdminEmail == "" {
		return nil
	}
	email := model.NormalizeEmail(cfg.SuperAdminEmail)

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == shared.RoleSuperAdmin {
			return nil
		}
		if _, err := s.repo.UpdateRole(ctx, existing.ID, shared.RoleSuperAdmin); err != nil {
			return err
		}
		logger.Info("Bootstrap account promoted to super admin", map[string]interface{}{"email": email})
		return nil
	case !errors.Is(err, model.ErrUserNotFound):
		return err
	}

	if cfg.SuperAdminPassword == "" {
		logger.Warn("Super admin email set without password, bootstrap skipped", nil)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdminPassword), s.hashCost)
	if err != nil {
		return err
	}
	name := cfg.SuperAdminName
	if name == "" {
		name = "Super Admin"
	}

	u := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     name,
		Role:         shared.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return err
	}

	logger.Info("Bootstrap super admin created", map[string]interface{}{"email": email})
	return nil
}
