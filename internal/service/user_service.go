package service

import (
	"errors"
	"fmt"
	"strings"

	"cna-archives/internal/dto"
	"cna-archives/internal/models"
	"cna-archives/internal/repository"
	"cna-archives/internal/session"
	"cna-archives/internal/utils"
)

// UserService 用户管理（管理员）
type UserService struct {
	userRepo    *repository.UserRepository
	dossierRepo *repository.DossierRepository
}

// NewUserService 创建用户管理服务
func NewUserService(userRepo *repository.UserRepository, dossierRepo *repository.DossierRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		dossierRepo: dossierRepo,
	}
}

// List 按用户名列出全部用户
func (s *UserService) List() ([]dto.UserInfo, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return toUserInfos(users), nil
}

// ListArchivistes 列出档案员，用于筛选
func (s *UserService) ListArchivistes() ([]dto.UserInfo, error) {
	users, err := s.userRepo.ListByRole(models.RoleArchiviste)
	if err != nil {
		return nil, fmt.Errorf("查询档案员失败: %w", err)
	}
	return toUserInfos(users), nil
}

// Create 新建用户，初始密码不做长度限制
func (s *UserService) Create(req *dto.CreateUserRequest) (*dto.UserInfo, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrNameRequired
	}
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}
	if !models.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	exists, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("检查用户名失败: %w", err)
	}
	if exists {
		return nil, ErrDuplicateName
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: hash, Role: req.Role}
	if err := s.userRepo.Create(user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	return toUserInfo(user), nil
}

// Delete 删除用户
// 不能删除自己和初始管理员账户，名下仍有录入记录的用户也不能删除
func (s *UserService) Delete(operator session.Identity, id uint) error {
	if id == operator.ID {
		return fmt.Errorf("%w: impossible de supprimer votre propre compte", ErrForbidden)
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("查询用户失败: %w", err)
	}
	if user.Username == s.userRepo.ProtectedUsername() {
		return fmt.Errorf("%w: le compte %s est protégé", ErrForbidden, user.Username)
	}

	owns, err := s.dossierRepo.ExistsForArchiviste(id)
	if err != nil {
		return fmt.Errorf("检查用户录入记录失败: %w", err)
	}
	if owns {
		return ErrUserHasDossiers
	}

	if err := s.userRepo.Delete(id); err != nil {
		switch {
		case errors.Is(err, repository.ErrProtectedAccount):
			return fmt.Errorf("%w: le compte %s est protégé", ErrForbidden, user.Username)
		case repository.IsNotFound(err):
			return ErrNotFound
		}
		return fmt.Errorf("删除用户失败: %w", err)
	}
	return nil
}

// ResetPassword 管理员修改他人密码
func (s *UserService) ResetPassword(id uint, req *dto.ResetPasswordRequest) error {
	hash, err := newPasswordHash(req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(id, hash); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("更新密码失败: %w", err)
	}
	return nil
}

func toUserInfos(users []models.User) []dto.UserInfo {
	out := make([]dto.UserInfo, len(users))
	for i := range users {
		out[i] = *toUserInfo(&users[i])
	}
	return out
}
