package models

import (
	"time"
)

// 角色取值
const (
	RoleArchiviste     = "archiviste"
	RoleAdministrateur = "administrateur"
)

// ValidRole 判断角色是否属于固定的两种角色
func ValidRole(role string) bool {
	return role == RoleArchiviste || role == RoleAdministrateur
}

// User 用户模型
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:archiviste;index" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdministrateur
}
