package middlewares

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/session"
	"github.com/gin-gonic/gin"
)

const claimsKey = "session_claims"

// SessionFromBearer разбирает "Authorization: Bearer <token>", если заголовок есть.
// Без заголовка запрос идёт дальше анонимно, битый токен - 401
func SessionFromBearer(tokens session.Maker, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}

		claims, err := tokens.ParseToken(strings.TrimSpace(token))
		if err != nil {
			log.Warn("invalid session token", "error", err, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireSession пропускает только запросы с валидным токеном
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Claims(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// RequireAdmin проверка булевой роли is_admin из токена
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			return
		}
		if !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
			return
		}
		c.Next()
	}
}

// Claims достаёт сессию, положенную SessionFromBearer
func Claims(c *gin.Context) (*session.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*session.Claims)
	return claims, ok && claims != nil
}
