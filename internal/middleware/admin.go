package middleware

import (
	"cna-archives/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware 管理员权限中间件
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			utils.Forbidden(c, "Accès réservé aux administrateurs")
			c.Abort()
			return
		}
		c.Next()
	}
}
