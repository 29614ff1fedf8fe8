package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/auto-service-backend/internal/auth"
	"github.com/nekogravitycat/auto-service-backend/internal/user"
)

// RequireRole ensures the authenticated user holds one of the given roles.
// The role is re-read from the store rather than trusted from the token, so
// a demoted user loses access as soon as the change lands.
// It MUST be used after auth.AuthRequired middleware.
func RequireRole(userService user.Service, roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
			})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "user not found",
			})
			return
		}

		for _, role := range roles {
			if u.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "forbidden: insufficient role",
		})
	}
}

// RequireStaff allows employees and admins.
func RequireStaff(userService user.Service) gin.HandlerFunc {
	return RequireRole(userService, user.RoleEmployee, user.RoleAdmin)
}

// RequireAdmin allows admins only.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return RequireRole(userService, user.RoleAdmin)
}
