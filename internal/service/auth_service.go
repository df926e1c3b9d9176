package service

import (
	"context"
	"fmt"
	"time"

	"cna-archives/internal/config"
	"cna-archives/internal/dto"
	"cna-archives/internal/models"
	"cna-archives/internal/repository"
	"cna-archives/internal/session"
	"cna-archives/internal/utils"
)

// TokenRevoker 记录已注销的Token
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthService 认证服务
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *utils.JWTManager
	revoker    TokenRevoker
	cfg        *config.Config
	now        func() time.Time
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo *repository.UserRepository, jwtManager *utils.JWTManager, revoker TokenRevoker, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		revoker:    revoker,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Authenticate 校验用户名和密码
// 用户不存在与密码错误返回同一个错误
func (s *AuthService) Authenticate(username, password string) (session.Identity, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if repository.IsNotFound(err) {
			return session.Identity{}, ErrInvalidCredentials
		}
		return session.Identity{}, fmt.Errorf("查询用户失败: %w", err)
	}

	if err := utils.CheckPassword(password, user.PasswordHash); err != nil {
		return session.Identity{}, ErrInvalidCredentials
	}

	return session.FromUser(user), nil
}

// Login 用户登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	identity, err := s.Authenticate(req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, claims, err := s.jwtManager.GenerateToken(identity.ID, identity.Username, identity.Role)
	if err != nil {
		return nil, fmt.Errorf("生成Token失败: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		User: dto.UserInfo{
			ID:       identity.ID,
			Username: identity.Username,
			Role:     identity.Role,
		},
	}, nil
}

// Logout 注销Token直至其自然过期
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if err := s.revoker.Revoke(ctx, tokenID, ttl); err != nil {
		return fmt.Errorf("注销失败: %w", err)
	}
	return nil
}

// GetMe 获取当前用户信息，登录后被删除的用户返回 ErrNotFound
func (s *AuthService) GetMe(identity session.Identity) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(identity.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return toUserInfo(user), nil
}

// ChangeOwnPassword 修改本人密码
func (s *AuthService) ChangeOwnPassword(identity session.Identity, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(identity.ID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("查询用户失败: %w", err)
	}

	if err := utils.CheckPassword(req.CurrentPassword, user.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := newPasswordHash(req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return fmt.Errorf("更新密码失败: %w", err)
	}
	return nil
}

// InitAdmin 初始化管理员账户，已存在时不做任何修改
func (s *AuthService) InitAdmin() (bool, error) {
	exists, err := s.userRepo.ExistsByUsername(s.cfg.Admin.Username)
	if err != nil {
		return false, fmt.Errorf("检查管理员失败: %w", err)
	}
	if exists {
		return false, nil
	}

	// 配置中可直接给出bcrypt哈希
	passwordHash := s.cfg.Admin.Password
	if !utils.IsBcryptHash(passwordHash) {
		passwordHash, err = utils.HashPassword(s.cfg.Admin.Password)
		if err != nil {
			return false, fmt.Errorf("密码哈希失败: %w", err)
		}
	}

	user := &models.User{
		Username:     s.cfg.Admin.Username,
		PasswordHash: passwordHash,
		Role:         models.RoleAdministrateur,
	}
	if err := s.userRepo.Create(user); err != nil {
		return false, fmt.Errorf("创建管理员失败: %w", err)
	}
	return true, nil
}

// newPasswordHash 校验两次输入一致且长度足够后生成哈希
func newPasswordHash(password, confirm string) (string, error) {
	if password != confirm {
		return "", ErrPasswordMismatch
	}
	if len([]rune(password)) < utils.MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("密码哈希失败: %w", err)
	}
	return hash, nil
}

func toUserInfo(u *models.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
