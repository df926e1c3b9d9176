package dto

import "time"

// CreateReferenceRequest 新建全宗或档案类型
type CreateReferenceRequest struct {
	Nom         string `json:"nom" binding:"required,max=100"`
	Description string `json:"description"`
}

// ReferenceInfo 全宗或档案类型
type ReferenceInfo struct {
	ID          uint      `json:"id"`
	Nom         string    `json:"nom"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateUserRequest 管理员新建用户
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,role"`
}

// ResetPasswordRequest 管理员重置他人密码
type ResetPasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// SetObjectifRequest 设置每日目标
type SetObjectifRequest struct {
	ObjectifQuotidien int `json:"objectif_quotidien" binding:"required"`
}

// ObjectifInfo 每日目标
type ObjectifInfo struct {
	ObjectifQuotidien int       `json:"objectif_quotidien"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

// OverviewResponse 系统概况
type OverviewResponse struct {
	TotalDossiers     int64 `json:"total_dossiers"`
	TotalUtilisateurs int64 `json:"total_utilisateurs"`
	TotalFonds        int   `json:"total_fonds"`
	TotalObjets       int   `json:"total_objets"`
	ObjectifQuotidien int   `json:"objectif_quotidien"`
}
