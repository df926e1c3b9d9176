package repository

import (
	"cna-archives/internal/models"

	"gorm.io/gorm"
)

// DefaultProtectedUsername 未配置时受保护的管理员账户
const DefaultProtectedUsername = "admin"

// UserRepository 用户数据访问层
type UserRepository struct {
	db        *gorm.DB
	protected string
}

// NewUserRepository 创建用户Repository，protected 为不可删除的初始管理员用户名
func NewUserRepository(db *gorm.DB, protected string) *UserRepository {
	if protected == "" {
		protected = DefaultProtectedUsername
	}
	return &UserRepository{db: db, protected: protected}
}

// ProtectedUsername 不可删除的管理员用户名
func (r *UserRepository) ProtectedUsername() string {
	return r.protected
}

// Create 创建用户
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID 根据ID获取用户
func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名获取用户（精确匹配）
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername 检查用户名是否存在
func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// List 获取所有用户，按用户名排序
func (r *UserRepository) List() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("username ASC").Find(&users).Error
	return users, err
}

// ListByRole 获取指定角色的用户
func (r *UserRepository) ListByRole(role string) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ?", role).Order("username ASC").Find(&users).Error
	return users, err
}

// Count 用户总数
func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// UpdatePassword 更新密码哈希
func (r *UserRepository) UpdatePassword(id uint, passwordHash string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除用户，初始管理员账户在此层即被拒绝
func (r *UserRepository) Delete(id uint) error {
	result := r.db.Where("id = ? AND username <> ?", id, r.protected).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// 区分不存在与受保护
	var count int64
	if err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrProtectedAccount
	}
	return gorm.ErrRecordNotFound
}
