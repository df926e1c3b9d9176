// Package session 定义一次认证会话内的用户身份
package session

import (
	"cna-archives/internal/models"
)

// Identity 会话身份，登录时由数据库生成并签入Token，每个请求从Token中还原
type Identity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// FromUser 由用户记录构造身份
func FromUser(u *models.User) Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}

// IsAdmin 是否为管理员
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdministrateur
}
