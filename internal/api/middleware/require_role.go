package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/joblynk/internal/models"
	"github.com/yoockh/joblynk/internal/services"
	"github.com/yoockh/joblynk/internal/utils"
)

// RequireRole loads the caller and checks its stored role. The loaded user
// is kept under "user" for handlers.
func RequireRole(users services.UserService, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, _ := c.Get("user_id")
		userID, _ := v.(string)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    utils.CodeUnauthorized,
				"message": "Unauthorized: User ID not found.",
			})
			return
		}

		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if utils.IsCode(err, utils.CodeNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"code":    utils.CodeNotFound,
					"message": "Unauthorized: User not found.",
				})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    utils.CodeInternal,
				"message": "Internal server error during role check.",
			})
			return
		}

		if !u.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    utils.CodeForbidden,
				"message": "Forbidden: Insufficient role.",
			})
			return
		}

		c.Set("user", u)
		c.Next()
	}
}

func RequireSeeker(users services.UserService) gin.HandlerFunc {
	return RequireRole(users, models.RoleSeeker)
}

func RequireRecruiter(users services.UserService) gin.HandlerFunc {
	return RequireRole(users, models.RoleRecruiter)
}
