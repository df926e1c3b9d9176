package middleware

import (
	"context"
	"strings"
	"time"

	"cna-archives/internal/session"
	"cna-archives/internal/utils"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ctxUserID       = "user_id"
	ctxUsername     = "username"
	ctxRole         = "role"
	ctxTokenID      = "token_id"
	ctxTokenExpires = "token_expires"
)

// RevocationChecker 查询Token是否已注销
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware JWT认证中间件
func AuthMiddleware(jwtManager *utils.JWTManager, revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authentification requise")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Unauthorized(c, "Format d'authentification invalide")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			utils.Unauthorized(c, "Session invalide ou expirée")
			c.Abort()
			return
		}

		revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			utils.InternalError(c, "Service de session indisponible")
			c.Abort()
			return
		}
		if revoked {
			utils.Unauthorized(c, "Session terminée, veuillez vous reconnecter")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ctxTokenExpires, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetIdentity 从上下文还原会话身份
func GetIdentity(c *gin.Context) (session.Identity, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return session.Identity{}, false
	}
	return session.Identity{
		ID:       id,
		Username: c.GetString(ctxUsername),
		Role:     c.GetString(ctxRole),
	}, true
}

// GetToken 当前Token的ID和过期时间
func GetToken(c *gin.Context) (string, time.Time) {
	return c.GetString(ctxTokenID), c.GetTime(ctxTokenExpires)
}

// IsAdmin 从上下文判断是否为管理员
func IsAdmin(c *gin.Context) bool {
	identity, ok := GetIdentity(c)
	return ok && identity.IsAdmin()
}
